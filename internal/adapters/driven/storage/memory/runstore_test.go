package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwm-locale/localetool/internal/core/domain"
)

func TestRunStore_SaveGetList(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	first := &domain.RunReport{
		ID:        "a",
		StartedAt: base,
		Outcomes: []domain.RecordOutcome{
			{File: "00001.json", RecordID: 1, Status: domain.JobSucceeded, Attempts: 1},
		},
	}
	second := &domain.RunReport{ID: "b", StartedAt: base.Add(time.Minute)}

	require.NoError(t, store.SaveRun(ctx, first))
	require.NoError(t, store.SaveRun(ctx, second))

	got, err := store.GetRun(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, first.Outcomes, got.Outcomes)

	// Stored report is a copy, mutating the original must not leak in
	first.Outcomes[0].Attempts = 99
	got, err = store.GetRun(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Outcomes[0].Attempts)

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "b", runs[0].ID)
	assert.Empty(t, runs[0].Outcomes)

	_, err = store.GetRun(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
