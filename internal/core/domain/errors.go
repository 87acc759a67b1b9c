package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration indicates the tool is misconfigured. Fatal at
	// startup, before any translation job is dispatched.
	ErrConfiguration = errors.New("configuration error")

	// Merge errors. Both abort the entire merge with no partial output.

	// ErrStructuralMismatch indicates the patch set's file shape does
	// not line up with the original fragment set.
	ErrStructuralMismatch = errors.New("structural mismatch")

	// ErrMissingID indicates a patch record's id is absent from the
	// corresponding original fragment file.
	ErrMissingID = errors.New("missing record id")

	// Translation errors. The first three are retryable per backoff
	// policy; anything else fails the job permanently.

	// ErrNetwork indicates a transport failure reaching the
	// translation backend.
	ErrNetwork = errors.New("network error")

	// ErrTimeout indicates a translation call exceeded its deadline.
	ErrTimeout = errors.New("timeout")

	// ErrRateLimited indicates the translation backend signalled a
	// rate limit (HTTP 429).
	ErrRateLimited = errors.New("rate limited")

	// ErrTranslationFailed indicates a job exhausted its attempts.
	// Recorded in the run report; the batch continues.
	ErrTranslationFailed = errors.New("translation failed")
)

// Retryable reports whether a translation call error warrants another
// attempt under the backoff policy.
func Retryable(err error) bool {
	return errors.Is(err, ErrNetwork) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrRateLimited)
}

// StructuralMismatchError reports a shape difference between an
// original fragment set and a patch set.
type StructuralMismatchError struct {
	// OriginalFiles and PatchFiles are the respective file counts.
	OriginalFiles int
	PatchFiles    int

	// Unmatched lists patch filenames with no original counterpart.
	Unmatched []string
}

func (e *StructuralMismatchError) Error() string {
	if len(e.Unmatched) > 0 {
		return fmt.Sprintf("structural mismatch: patch files %v have no original counterpart", e.Unmatched)
	}
	return fmt.Sprintf("structural mismatch: original has %d fragment files, patch has %d",
		e.OriginalFiles, e.PatchFiles)
}

// Is makes the error match ErrStructuralMismatch under errors.Is.
func (e *StructuralMismatchError) Is(target error) bool {
	return target == ErrStructuralMismatch
}

// MissingIDError names the exact patch file and record id that do not
// exist in the original fragment set.
type MissingIDError struct {
	File string
	ID   int64
}

func (e *MissingIDError) Error() string {
	return fmt.Sprintf("fragment %s: patch record id %d not present in original", e.File, e.ID)
}

// Is makes the error match ErrMissingID under errors.Is.
func (e *MissingIDError) Is(target error) bool {
	return target == ErrMissingID
}
