// Package fragments persists fragment sets as directories of JSON
// files, one file per archive subunit. Filenames (zero-padded sequence
// numbers such as "00001.json") are preserved verbatim, and writes are
// atomic so a crashed run never leaves a half-written file behind.
package fragments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.FragmentStore = (*Store)(nil)

// Store is the filesystem-backed fragment store.
type Store struct{}

// NewStore creates a new fragment store.
func NewStore() *Store {
	return &Store{}
}

// Load reads every fragment file in dir, ordered by filename.
func (s *Store) Load(ctx context.Context, dir string) (*domain.FragmentSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read fragment directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	set := &domain.FragmentSet{Files: make([]domain.FragmentFile, 0, len(names))}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file, err := readFragment(dir, name)
		if err != nil {
			return nil, err
		}
		set.Files = append(set.Files, *file)
	}
	return set, nil
}

// LoadFile reads a single fragment file by name.
func (s *Store) LoadFile(_ context.Context, dir, name string) (*domain.FragmentFile, error) {
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("fragment %s: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("stat fragment %s: %w", name, err)
	}
	return readFragment(dir, name)
}

// Save writes every file in the set under dir.
func (s *Store) Save(ctx context.Context, dir string, set *domain.FragmentSet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for i := range set.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.SaveFile(ctx, dir, &set.Files[i]); err != nil {
			return err
		}
	}
	return nil
}

// SaveFile writes one fragment file atomically: the content goes to a
// temp file in the same directory first, then replaces the target via
// rename.
func (s *Store) SaveFile(_ context.Context, dir string, file *domain.FragmentFile) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := encodeRecords(file.Records)
	if err != nil {
		return fmt.Errorf("encode fragment %s: %w", file.Name, err)
	}

	tmp, err := os.CreateTemp(dir, "."+file.Name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write fragment %s: %w", file.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close fragment %s: %w", file.Name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, file.Name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace fragment %s: %w", file.Name, err)
	}
	return nil
}

// readFragment parses one fragment file and validates id uniqueness.
func readFragment(dir, name string) (*domain.FragmentFile, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("read fragment %s: %w", name, err)
	}

	var records []domain.TextRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: fragment %s: %v", domain.ErrInvalidInput, name, err)
	}

	file := &domain.FragmentFile{Name: name, Records: records}
	if _, err := file.Index(); err != nil {
		return nil, err
	}
	return file, nil
}

// encodeRecords renders records deterministically: two-space indented
// JSON, CJK text unescaped, trailing newline. Determinism is what
// makes a resumed run's rewrite byte-identical.
func encodeRecords(records []domain.TextRecord) ([]byte, error) {
	if records == nil {
		records = []domain.TextRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
