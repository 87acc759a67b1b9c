package driven

import (
	"context"

	"github.com/wwm-locale/localetool/internal/core/domain"
)

// RunStore is the run ledger: it persists translation run reports so
// past runs can be listed and their per-record outcomes inspected.
type RunStore interface {
	// SaveRun persists a report including its outcomes.
	SaveRun(ctx context.Context, report *domain.RunReport) error

	// GetRun retrieves a report with outcomes by run ID.
	// Returns domain.ErrNotFound if no such run exists.
	GetRun(ctx context.Context, id string) (*domain.RunReport, error)

	// ListRuns returns all reports without outcomes, most recent
	// first.
	ListRuns(ctx context.Context) ([]domain.RunReport, error)

	// Close releases resources.
	Close() error
}
