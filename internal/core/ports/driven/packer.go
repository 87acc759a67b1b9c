package driven

import "context"

// Packer is the external archive codec. The archive's byte layout is
// opaque: the core only ever sees the fragment directory the packer
// produces and consumes. Tests substitute a mock implementation.
type Packer interface {
	// Unpack decomposes an archive into a directory of fragment
	// files under destDir.
	Unpack(ctx context.Context, archivePath, destDir string) error

	// Pack rebuilds an archive from the original archive plus a
	// directory of patched fragment files, writing the result to
	// outPath.
	Pack(ctx context.Context, archivePath, fragmentsDir, outPath string) error
}
