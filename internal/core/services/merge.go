package services

import (
	"context"
	"fmt"

	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driving"
	"github.com/wwm-locale/localetool/internal/logger"
)

// Ensure MergeService implements the interface.
var _ driving.Merger = (*MergeService)(nil)

// MergeService reconciles a patch set against an original fragment
// set. Identity is the record id; output order is always the
// original's, never the patch's.
type MergeService struct{}

// NewMergeService creates a new merge service.
func NewMergeService() *MergeService {
	return &MergeService{}
}

// Merge overlays patch text onto the original set by record id.
//
// Validation runs to completion before any merged file is built, so a
// single bad patch file aborts the whole merge with nothing produced:
//   - file shape differences fail with a StructuralMismatchError
//   - a patch id absent from the original fails with a MissingIDError
func (s *MergeService) Merge(ctx context.Context, original, patch *domain.FragmentSet) (*domain.FragmentSet, error) {
	if original == nil || patch == nil {
		return nil, fmt.Errorf("%w: nil fragment set", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	indexes, err := validateShape(original, patch)
	if err != nil {
		return nil, err
	}

	merged := &domain.FragmentSet{Files: make([]domain.FragmentFile, 0, len(original.Files))}
	patched := 0
	for i := range original.Files {
		orig := &original.Files[i]
		out := orig.Clone()

		pf, ok := patch.File(orig.Name)
		if ok {
			idx := indexes[orig.Name]
			for _, rec := range pf.Records {
				out.Records[idx[rec.ID]].Text = rec.Text
				patched++
			}
		}
		merged.Files = append(merged.Files, out)
	}

	logger.Debug("merged %d files, %d records patched", len(merged.Files), patched)
	return merged, nil
}

// validateShape checks the patch against the original and returns the
// per-file id index of the original for the overlay pass.
func validateShape(original, patch *domain.FragmentSet) (map[string]map[int64]int, error) {
	var unmatched []string
	for i := range patch.Files {
		if _, ok := original.File(patch.Files[i].Name); !ok {
			unmatched = append(unmatched, patch.Files[i].Name)
		}
	}
	if len(unmatched) > 0 || len(original.Files) != len(patch.Files) {
		return nil, &domain.StructuralMismatchError{
			OriginalFiles: len(original.Files),
			PatchFiles:    len(patch.Files),
			Unmatched:     unmatched,
		}
	}

	indexes := make(map[string]map[int64]int, len(original.Files))
	for i := range original.Files {
		orig := &original.Files[i]
		idx, err := orig.Index()
		if err != nil {
			return nil, err
		}
		indexes[orig.Name] = idx

		pf, ok := patch.File(orig.Name)
		if !ok {
			continue
		}
		if _, err := pf.Index(); err != nil {
			return nil, err
		}
		for _, rec := range pf.Records {
			if _, ok := idx[rec.ID]; !ok {
				return nil, &domain.MissingIDError{File: orig.Name, ID: rec.ID}
			}
		}
	}
	return indexes, nil
}
