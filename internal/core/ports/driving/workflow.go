package driving

import "context"

// Workflow exposes the archive-level operations built on top of the
// packer, the fragment store, and the merge engine.
type Workflow interface {
	// Unpack decomposes an archive into a fragment directory.
	Unpack(ctx context.Context, archivePath, destDir string) error

	// Pack rebuilds an archive: unpack the original, merge the patch
	// directory over it, and hand the merged fragments back to the
	// packer.
	Pack(ctx context.Context, archivePath, patchDir, outPath string) error

	// MergeDirs merges patchDir over originalDir into outDir.
	MergeDirs(ctx context.Context, originalDir, patchDir, outDir string) error

	// Clean removes translated fragment files that are invalid JSON
	// or still contain untranslated Han text, so the next translate
	// run resubmits them. Returns the removed filenames.
	Clean(ctx context.Context, dir string) ([]string, error)
}
