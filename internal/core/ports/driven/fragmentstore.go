package driven

import (
	"context"

	"github.com/wwm-locale/localetool/internal/core/domain"
)

// FragmentStore persists fragment sets as directories of JSON files.
// Filenames are preserved verbatim; record order within a file is the
// archive order and must survive a load/save round trip.
type FragmentStore interface {
	// Load reads every fragment file in dir, ordered by filename.
	// Malformed files are an error: a source directory must be fully
	// well-formed before merging or translating.
	Load(ctx context.Context, dir string) (*domain.FragmentSet, error)

	// LoadFile reads a single fragment file by name. Returns
	// domain.ErrNotFound if the file does not exist.
	LoadFile(ctx context.Context, dir, name string) (*domain.FragmentFile, error)

	// Save writes every file in the set under dir, creating dir if
	// needed.
	Save(ctx context.Context, dir string, set *domain.FragmentSet) error

	// SaveFile writes one fragment file under dir. The write is
	// atomic: readers never observe a partially written file.
	SaveFile(ctx context.Context, dir string, file *domain.FragmentFile) error
}
