package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", fmt.Errorf("call: %w", ErrNetwork), true},
		{"timeout", fmt.Errorf("call: %w", ErrTimeout), true},
		{"rate limited", fmt.Errorf("call: %w", ErrRateLimited), true},
		{"translation failed", ErrTranslationFailed, false},
		{"plain error", errors.New("bad request"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Retryable(tt.err))
		})
	}
}

func TestStructuralMismatchError(t *testing.T) {
	err := &StructuralMismatchError{OriginalFiles: 3, PatchFiles: 2}
	assert.True(t, errors.Is(err, ErrStructuralMismatch))
	assert.Contains(t, err.Error(), "3")
	assert.Contains(t, err.Error(), "2")

	withNames := &StructuralMismatchError{Unmatched: []string{"00099.json"}}
	assert.Contains(t, withNames.Error(), "00099.json")

	// Survives wrapping
	wrapped := fmt.Errorf("merge: %w", err)
	assert.True(t, errors.Is(wrapped, ErrStructuralMismatch))
	var target *StructuralMismatchError
	assert.True(t, errors.As(wrapped, &target))
}

func TestMissingIDError(t *testing.T) {
	err := &MissingIDError{File: "00001.json", ID: 42}
	assert.True(t, errors.Is(err, ErrMissingID))
	assert.Contains(t, err.Error(), "00001.json")
	assert.Contains(t, err.Error(), "42")

	wrapped := fmt.Errorf("merge: %w", err)
	var target *MissingIDError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, int64(42), target.ID)
}
