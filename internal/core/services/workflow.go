package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driven"
	"github.com/wwm-locale/localetool/internal/core/ports/driving"
	"github.com/wwm-locale/localetool/internal/logger"
)

// Ensure WorkflowService implements the interface.
var _ driving.Workflow = (*WorkflowService)(nil)

// WorkflowService glues the packer, the fragment store, and the merge
// engine into the archive-level operations the CLI exposes.
type WorkflowService struct {
	packer    driven.Packer
	fragments driven.FragmentStore
	merger    driving.Merger
}

// NewWorkflowService creates a workflow service.
func NewWorkflowService(packer driven.Packer, fragments driven.FragmentStore, merger driving.Merger) *WorkflowService {
	return &WorkflowService{
		packer:    packer,
		fragments: fragments,
		merger:    merger,
	}
}

// Unpack decomposes an archive into a fragment directory.
func (s *WorkflowService) Unpack(ctx context.Context, archivePath, destDir string) error {
	if s.packer == nil {
		return fmt.Errorf("%w: no packer configured", domain.ErrConfiguration)
	}
	logger.Info("unpacking %s into %s", archivePath, destDir)
	if err := s.packer.Unpack(ctx, archivePath, destDir); err != nil {
		return fmt.Errorf("unpack archive: %w", err)
	}
	return nil
}

// MergeDirs merges patchDir over originalDir into outDir. Validation
// happens entirely in memory, so a failed merge leaves outDir
// untouched.
func (s *WorkflowService) MergeDirs(ctx context.Context, originalDir, patchDir, outDir string) error {
	original, err := s.fragments.Load(ctx, originalDir)
	if err != nil {
		return fmt.Errorf("load original fragments: %w", err)
	}
	patch, err := s.fragments.Load(ctx, patchDir)
	if err != nil {
		return fmt.Errorf("load patch fragments: %w", err)
	}

	merged, err := s.merger.Merge(ctx, original, patch)
	if err != nil {
		return fmt.Errorf("merge: %w", err)
	}

	if err := s.fragments.Save(ctx, outDir, merged); err != nil {
		return fmt.Errorf("write merged fragments: %w", err)
	}
	return nil
}

// Pack rebuilds an archive: the original is unpacked into a scratch
// directory, the patch set is merged over it, and the merged fragments
// go back through the packer.
func (s *WorkflowService) Pack(ctx context.Context, archivePath, patchDir, outPath string) error {
	if s.packer == nil {
		return fmt.Errorf("%w: no packer configured", domain.ErrConfiguration)
	}

	workDir, err := os.MkdirTemp("", "localetool-pack-")
	if err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	unpackDir := filepath.Join(workDir, "original")
	mergedDir := filepath.Join(workDir, "merged")

	if err := s.Unpack(ctx, archivePath, unpackDir); err != nil {
		return err
	}
	if err := s.MergeDirs(ctx, unpackDir, patchDir, mergedDir); err != nil {
		return err
	}

	logger.Info("packing merged fragments into %s", outPath)
	if err := s.packer.Pack(ctx, archivePath, mergedDir, outPath); err != nil {
		return fmt.Errorf("pack archive: %w", err)
	}
	return nil
}

// Clean removes translated fragment files that are invalid JSON or
// still contain Han characters - both signs of a failed translation
// write - so the next translate run resubmits them.
func (s *WorkflowService) Clean(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		reason, bad := inspectTranslated(path)
		if !bad {
			continue
		}

		logger.Info("removing %s: %s", entry.Name(), reason)
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		removed = append(removed, entry.Name())
	}
	return removed, nil
}

// inspectTranslated decides whether a translated fragment file should
// be discarded.
func inspectTranslated(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("unreadable (%v)", err), true
	}

	var records []domain.TextRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return "invalid JSON", true
	}

	for _, rec := range records {
		if containsHan(rec.Text) {
			return fmt.Sprintf("record %d still contains untranslated text", rec.ID), true
		}
	}
	return "", false
}

// containsHan reports whether s contains any Han (CJK ideograph) rune.
func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
