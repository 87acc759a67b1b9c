package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RunStore = (*Store)(nil)

// SaveRun persists a run report and its per-record outcomes in a
// single transaction.
func (s *Store) SaveRun(ctx context.Context, report *domain.RunReport) error {
	if report == nil {
		return fmt.Errorf("%w: nil report", domain.ErrInvalidInput)
	}
	if report.ID == "" {
		return fmt.Errorf("%w: report ID is required", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, model, target_language, started_at, finished_at, total, succeeded, failed, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.ID,
		report.Model,
		report.TargetLanguage,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.FinishedAt.UTC().Format(time.RFC3339Nano),
		report.Total,
		report.Succeeded,
		report.Failed,
		report.Skipped,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", report.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_records (run_id, position, file, record_id, status, attempts, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, o := range report.Outcomes {
		if _, err := stmt.ExecContext(ctx, report.ID, i, o.File, o.RecordID, string(o.Status), o.Attempts, o.Err); err != nil {
			return fmt.Errorf("insert record outcome %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", report.ID, err)
	}
	return nil
}

// GetRun retrieves a run report with its outcomes.
func (s *Store) GetRun(ctx context.Context, id string) (*domain.RunReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, model, target_language, started_at, finished_at, total, succeeded, failed, skipped
		FROM runs WHERE id = ?
	`, id)

	report, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: run %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("query run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT file, record_id, status, attempts, error
		FROM run_records WHERE run_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query run records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o domain.RecordOutcome
		var status string
		if err := rows.Scan(&o.File, &o.RecordID, &status, &o.Attempts, &o.Err); err != nil {
			return nil, fmt.Errorf("scan record outcome: %w", err)
		}
		o.Status = domain.JobStatus(status)
		report.Outcomes = append(report.Outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run records: %w", err)
	}

	return report, nil
}

// ListRuns returns all run reports without outcomes, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]domain.RunReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, target_language, started_at, finished_at, total, succeeded, failed, skipped
		FROM runs ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var reports []domain.RunReport
	for rows.Next() {
		report, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return reports, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*domain.RunReport, error) {
	var report domain.RunReport
	var startedAt, finishedAt string

	err := sc.Scan(
		&report.ID,
		&report.Model,
		&report.TargetLanguage,
		&startedAt,
		&finishedAt,
		&report.Total,
		&report.Succeeded,
		&report.Failed,
		&report.Skipped,
	)
	if err != nil {
		return nil, err
	}

	if report.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if report.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}

	return &report, nil
}
