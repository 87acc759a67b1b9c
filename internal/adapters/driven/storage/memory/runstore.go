// Package memory provides an in-memory run store, used by tests and
// by runs that opt out of persistence.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.RunReport
}

// NewRunStore creates an empty in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.RunReport),
	}
}

// SaveRun stores a copy of the report.
func (s *RunStore) SaveRun(_ context.Context, report *domain.RunReport) error {
	if report == nil {
		return fmt.Errorf("%w: nil report", domain.ErrInvalidInput)
	}
	if report.ID == "" {
		return fmt.Errorf("%w: report ID is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *report
	stored.Outcomes = append([]domain.RecordOutcome(nil), report.Outcomes...)
	s.runs[report.ID] = stored
	return nil
}

// GetRun retrieves a report with outcomes by run ID.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, id)
	}

	report := stored
	report.Outcomes = append([]domain.RecordOutcome(nil), stored.Outcomes...)
	return &report, nil
}

// ListRuns returns all reports without outcomes, most recent first.
func (s *RunStore) ListRuns(_ context.Context) ([]domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]domain.RunReport, 0, len(s.runs))
	for _, stored := range s.runs {
		stored.Outcomes = nil
		reports = append(reports, stored)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StartedAt.After(reports[j].StartedAt)
	})
	return reports, nil
}

// Close is a no-op.
func (s *RunStore) Close() error {
	return nil
}
