package driving

import (
	"context"

	"github.com/wwm-locale/localetool/internal/core/domain"
)

// Merger reconciles a patch set against an original fragment set.
//
// The merge is all-or-nothing: validation errors (structural mismatch,
// unknown record id) abort the whole operation before any output
// exists. On success the merged set has exactly the original's file
// shape and record order, with patched text overlaid by record id.
type Merger interface {
	Merge(ctx context.Context, original, patch *domain.FragmentSet) (*domain.FragmentSet, error)
}
