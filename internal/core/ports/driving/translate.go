package driving

import (
	"context"

	"github.com/wwm-locale/localetool/internal/core/domain"
)

// TranslateStatus is a point-in-time view of a running translation.
type TranslateStatus struct {
	// Total is the number of records submitted as jobs.
	Total int

	// Done counts resolved jobs (succeeded or failed).
	Done int

	// Failed counts permanently failed jobs so far.
	Failed int

	// Skipped counts records satisfied by a prior run's output.
	Skipped int
}

// Orchestrator drives a fragment set through the translation backend
// with a bounded worker pool.
//
// Repeated invocation over the same directories resumes: records whose
// prior output already differs from the source text are skipped, and a
// fully translated input is a no-op issuing zero calls.
type Orchestrator interface {
	// Translate reads fragment files from sourceDir and writes
	// translated files to outDir. A file is written only once every
	// one of its jobs has resolved; failed records keep their source
	// text. The returned report always covers the whole run, even
	// when records permanently fail.
	Translate(ctx context.Context, sourceDir, outDir string) (*domain.RunReport, error)

	// Status returns progress counters for the run in flight.
	Status() TranslateStatus
}
