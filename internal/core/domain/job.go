package domain

// JobStatus tracks a translation job through its lifecycle.
type JobStatus string

// Job states.
const (
	// JobPending means the job has not been dispatched yet.
	JobPending JobStatus = "pending"

	// JobInFlight means a worker is executing the job.
	JobInFlight JobStatus = "in-flight"

	// JobSucceeded means the backend returned a translation.
	JobSucceeded JobStatus = "succeeded"

	// JobFailed means the job exhausted its attempts or was cut off
	// by cancellation.
	JobFailed JobStatus = "failed"
)

// TranslationJob is one unit of translation work, corresponding to
// exactly one text record. Jobs are created when a fragment set is
// submitted to the orchestrator and destroyed once their result is
// folded into the output.
type TranslationJob struct {
	// File is the originating fragment filename.
	File string

	// Position is the record's index within the file. Results are
	// placed by position, never by completion order.
	Position int

	// RecordID is the record's id within the file.
	RecordID int64

	// SourceText is the text handed to the translation backend.
	SourceText string

	// Translated holds the result once the job succeeds.
	Translated string

	// Attempts counts translation calls made for this job.
	Attempts int

	// Status is the job's current lifecycle state.
	Status JobStatus

	// Err holds the last call error for failed jobs.
	Err error
}
