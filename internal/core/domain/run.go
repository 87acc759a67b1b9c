package domain

import "time"

// RecordOutcome is the per-record result of a translation run.
type RecordOutcome struct {
	// File is the fragment filename the record belongs to.
	File string

	// RecordID is the record's id within the file.
	RecordID int64

	// Status is the final job status (succeeded or failed).
	Status JobStatus

	// Attempts is the number of translation calls made.
	Attempts int

	// Err is the failure reason, empty for succeeded records.
	Err string
}

// RunReport summarises one translation run: per-record outcomes plus
// aggregate counts. A run always produces a complete report, even when
// some records permanently fail.
type RunReport struct {
	// ID is a unique run identifier.
	ID string

	// Model is the translation model used.
	Model string

	// TargetLanguage is the language records were translated into.
	TargetLanguage string

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time
	FinishedAt time.Time

	// Total is the number of records in the source fragment set.
	Total int

	// Succeeded and Failed count records resolved in this run.
	Succeeded int
	Failed    int

	// Skipped counts records already translated by a prior run and
	// not resubmitted.
	Skipped int

	// Outcomes lists one entry per record resolved in this run, in
	// fragment-set order.
	Outcomes []RecordOutcome
}
