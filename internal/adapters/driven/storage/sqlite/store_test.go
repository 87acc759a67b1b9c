package sqlite

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwm-locale/localetool/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "localetool-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testReport(id string, startedAt time.Time) *domain.RunReport {
	return &domain.RunReport{
		ID:             id,
		Model:          "google/gemini-2.0-flash-001",
		TargetLanguage: "Vietnamese",
		StartedAt:      startedAt,
		FinishedAt:     startedAt.Add(90 * time.Second),
		Total:          3,
		Succeeded:      2,
		Failed:         1,
		Skipped:        0,
		Outcomes: []domain.RecordOutcome{
			{File: "00001.json", RecordID: 10, Status: domain.JobSucceeded, Attempts: 1},
			{File: "00001.json", RecordID: 11, Status: domain.JobSucceeded, Attempts: 2},
			{File: "00002.json", RecordID: 7, Status: domain.JobFailed, Attempts: 3, Err: "translation failed after 3 attempts"},
		},
	}
}

func TestStore_SaveAndGetRun(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	report := testReport("run-1", started)

	require.NoError(t, store.SaveRun(ctx, report))

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)

	assert.Equal(t, report.ID, got.ID)
	assert.Equal(t, report.Model, got.Model)
	assert.Equal(t, report.TargetLanguage, got.TargetLanguage)
	assert.True(t, report.StartedAt.Equal(got.StartedAt))
	assert.True(t, report.FinishedAt.Equal(got.FinishedAt))
	assert.Equal(t, report.Total, got.Total)
	assert.Equal(t, report.Succeeded, got.Succeeded)
	assert.Equal(t, report.Failed, got.Failed)
	assert.Equal(t, report.Outcomes, got.Outcomes)
}

func TestStore_GetRunNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetRun(context.Background(), "no-such-run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStore_SaveRunValidation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	err := store.SaveRun(ctx, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	err = store.SaveRun(ctx, &domain.RunReport{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestStore_ListRunsMostRecentFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveRun(ctx, testReport("run-old", base)))
	require.NoError(t, store.SaveRun(ctx, testReport("run-new", base.Add(time.Hour))))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-new", runs[0].ID)
	assert.Equal(t, "run-old", runs[1].ID)

	// Listing omits outcomes
	assert.Empty(t, runs[0].Outcomes)
	assert.Empty(t, runs[1].Outcomes)
}

func TestStore_MigrationsAreIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "localetool-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same database must not rerun applied migrations
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
