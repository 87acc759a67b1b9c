package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driven"
	"github.com/wwm-locale/localetool/internal/core/ports/driving"
	"github.com/wwm-locale/localetool/internal/logger"
)

// Ensure TranslateOrchestrator implements the interface.
var _ driving.Orchestrator = (*TranslateOrchestrator)(nil)

// TranslateOrchestrator fans per-record translation jobs out across a
// fixed-size worker pool and folds the results back into output
// fragment files.
//
// The key mechanism is the per-file results slot array: each job owns
// exactly one slot, indexed by the record's input position, so output
// order never depends on completion order. A per-file counter gates
// the single write of each output file; a file is written only once
// every one of its jobs has resolved.
type TranslateOrchestrator struct {
	fragments  driven.FragmentStore
	translator driven.Translator
	runs       driven.RunStore
	settings   domain.OrchestratorSettings
	limiter    *rate.Limiter

	mu     sync.Mutex
	status driving.TranslateStatus
}

// NewTranslateOrchestrator creates an orchestrator. The run store is
// optional - when nil, reports are returned but not persisted.
func NewTranslateOrchestrator(
	fragments driven.FragmentStore,
	translator driven.Translator,
	runs driven.RunStore,
	settings domain.OrchestratorSettings,
) *TranslateOrchestrator {
	var limiter *rate.Limiter
	if settings.RequestsPerSecond > 0 {
		burst := settings.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), burst)
	}

	return &TranslateOrchestrator{
		fragments:  fragments,
		translator: translator,
		runs:       runs,
		settings:   settings,
		limiter:    limiter,
	}
}

// fileState tracks one fragment file through a run.
type fileState struct {
	name string

	// out is the results slot array: prefilled with source text (the
	// failed-record sentinel) or prior translations, overwritten in
	// place by the worker owning each slot.
	out []domain.TextRecord

	// remaining jobs gate the write; decremented by the collector.
	remaining int

	// skipWrite is set when a job was cut off by cancellation, so
	// the file is left untouched rather than half-resolved.
	skipWrite bool
}

// jobResult is what a worker reports back to the collector.
type jobResult struct {
	fileIdx   int
	outcome   domain.RecordOutcome
	cancelled bool
}

// Translate runs the whole pipeline: load, resume-filter, fan out,
// collect, write, report.
func (o *TranslateOrchestrator) Translate(ctx context.Context, sourceDir, outDir string) (*domain.RunReport, error) {
	source, err := o.fragments.Load(ctx, sourceDir)
	if err != nil {
		return nil, fmt.Errorf("load source fragments: %w", err)
	}

	report := &domain.RunReport{
		ID:             uuid.NewString(),
		Model:          o.translator.ModelName(),
		TargetLanguage: o.settings.TargetLanguage,
		StartedAt:      time.Now(),
		Total:          source.TotalRecords(),
	}

	states, jobs, skipped := o.plan(ctx, source, outDir)
	report.Skipped = skipped

	o.setStatus(driving.TranslateStatus{Total: len(jobs), Skipped: skipped})
	logger.Info("translating %d records (%d skipped) across %d files with %d workers",
		len(jobs), skipped, len(states), o.settings.Workers)

	o.run(ctx, states, jobs)

	// Jobs never dispatched (cancellation stopped the producer) are
	// reported as failed; their files stay unwritten.
	for i := range jobs {
		if jobs[i].Status == domain.JobPending {
			jobs[i].Status = domain.JobFailed
			jobs[i].Err = context.Cause(ctx)
			if jobs[i].Err == nil {
				jobs[i].Err = errors.New("run cancelled before dispatch")
			}
		}
	}

	// Write every fully resolved file, in input order.
	var writeErr error
	for i := range states {
		st := &states[i]
		if st.remaining > 0 || st.skipWrite {
			logger.Debug("skipping write of %s: unresolved jobs at cancellation", st.name)
			continue
		}
		file := domain.FragmentFile{Name: st.name, Records: st.out}
		if err := o.fragments.SaveFile(ctx, outDir, &file); err != nil && writeErr == nil {
			writeErr = fmt.Errorf("write fragment %s: %w", st.name, err)
		}
	}

	report.FinishedAt = time.Now()
	for i := range jobs {
		j := &jobs[i]
		outcome := domain.RecordOutcome{
			File:     j.File,
			RecordID: j.RecordID,
			Status:   j.Status,
			Attempts: j.Attempts,
		}
		if j.Err != nil {
			outcome.Err = j.Err.Error()
		}
		report.Outcomes = append(report.Outcomes, outcome)
		switch j.Status {
		case domain.JobSucceeded:
			report.Succeeded++
		default:
			report.Failed++
		}
	}

	if o.runs != nil {
		if err := o.runs.SaveRun(ctx, report); err != nil {
			logger.Warn("persist run report: %v", err)
		}
	}

	if writeErr != nil {
		return report, writeErr
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// Status returns progress counters for the run in flight.
func (o *TranslateOrchestrator) Status() driving.TranslateStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// plan builds per-file state and the job list, consulting any prior
// output under outDir. A prior record counts as succeeded when its
// text is non-empty and differs from the source text; failed records
// kept their source text, so they are resubmitted.
func (o *TranslateOrchestrator) plan(ctx context.Context, source *domain.FragmentSet, outDir string) ([]fileState, []domain.TranslationJob, int) {
	states := make([]fileState, 0, len(source.Files))
	var jobs []domain.TranslationJob
	skipped := 0

	for _, sf := range source.Files {
		st := fileState{
			name: sf.Name,
			out:  make([]domain.TextRecord, len(sf.Records)),
		}
		copy(st.out, sf.Records)

		prior := o.priorTranslations(ctx, outDir, &sf)

		for pos, rec := range sf.Records {
			if text, ok := prior[rec.ID]; ok {
				st.out[pos].Text = text
				skipped++
				continue
			}
			st.remaining++
			jobs = append(jobs, domain.TranslationJob{
				File:       sf.Name,
				Position:   pos,
				RecordID:   rec.ID,
				SourceText: rec.Text,
				Status:     domain.JobPending,
			})
		}
		states = append(states, st)
	}
	return states, jobs, skipped
}

// priorTranslations returns id -> translated text for records already
// translated by an earlier run. A missing or malformed output file
// simply yields nothing to skip.
func (o *TranslateOrchestrator) priorTranslations(ctx context.Context, outDir string, sf *domain.FragmentFile) map[int64]string {
	if outDir == "" {
		return nil
	}
	prev, err := o.fragments.LoadFile(ctx, outDir, sf.Name)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Debug("ignoring prior output %s: %v", sf.Name, err)
		}
		return nil
	}

	srcByID := make(map[int64]string, len(sf.Records))
	for _, rec := range sf.Records {
		srcByID[rec.ID] = rec.Text
	}

	done := make(map[int64]string)
	for _, rec := range prev.Records {
		src, ok := srcByID[rec.ID]
		if !ok {
			continue
		}
		if rec.Text != "" && rec.Text != src {
			done[rec.ID] = rec.Text
		}
	}
	return done
}

// run dispatches jobs to the worker pool and collects results until
// every dispatched job has resolved.
func (o *TranslateOrchestrator) run(ctx context.Context, states []fileState, jobs []domain.TranslationJob) {
	if len(jobs) == 0 {
		return
	}

	fileIdx := make(map[string]int, len(states))
	for i := range states {
		fileIdx[states[i].name] = i
	}

	jobCh := make(chan *domain.TranslationJob)
	resCh := make(chan jobResult)

	// Producer: stops dispatching the moment ctx is cancelled.
	go func() {
		defer close(jobCh)
		for i := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobCh <- &jobs[i]:
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(o.settings.Workers)
	for w := 0; w < o.settings.Workers; w++ {
		go func() {
			defer wg.Done()
			for job := range jobCh {
				fi := fileIdx[job.File]
				cancelled := o.runJob(ctx, job, &states[fi])
				outcome := domain.RecordOutcome{
					File:     job.File,
					RecordID: job.RecordID,
					Status:   job.Status,
					Attempts: job.Attempts,
				}
				if job.Err != nil {
					outcome.Err = job.Err.Error()
				}
				resCh <- jobResult{fileIdx: fi, outcome: outcome, cancelled: cancelled}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resCh)
	}()

	// Collector: the only goroutine touching the per-file counters.
	// The slot a result refers to was written by the worker before it
	// sent on resCh, so reading st.out after remaining hits zero is
	// race-free.
	skipped := o.Status().Skipped
	done, failed := 0, 0
	for res := range resCh {
		st := &states[res.fileIdx]
		st.remaining--
		if res.cancelled {
			st.skipWrite = true
		}

		done++
		if res.outcome.Status == domain.JobFailed {
			failed++
		}
		o.setStatus(driving.TranslateStatus{
			Total:   len(jobs),
			Done:    done,
			Failed:  failed,
			Skipped: skipped,
		})
		if st.remaining == 0 && !st.skipWrite {
			logger.Debug("fragment %s fully resolved", st.name)
		}
	}
}

// runJob executes one job: rate gate, call, classify, retry with
// backoff. Returns true when the job was cut off by cancellation
// before it could run to a natural verdict.
//
// The translation call itself runs on a context detached from the run
// context: an external stop signal halts new attempts but lets the
// in-flight call finish naturally, so no job is left in an undefined
// state.
func (o *TranslateOrchestrator) runJob(ctx context.Context, job *domain.TranslationJob, st *fileState) bool {
	job.Status = domain.JobInFlight

	var lastErr error
	for attempt := 1; attempt <= o.settings.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			job.Status = domain.JobFailed
			job.Err = err
			return true
		}

		if o.limiter != nil {
			if err := o.limiter.Wait(ctx); err != nil {
				job.Status = domain.JobFailed
				job.Err = err
				return true
			}
		}

		callCtx := context.WithoutCancel(ctx)
		cancel := context.CancelFunc(func() {})
		if o.settings.CallTimeout > 0 {
			callCtx, cancel = context.WithTimeout(callCtx, o.settings.CallTimeout)
		}

		job.Attempts = attempt
		translated, err := o.translator.Translate(callCtx, job.SourceText)
		cancel()
		if err == nil {
			job.Status = domain.JobSucceeded
			job.Translated = translated
			st.out[job.Position].Text = translated
			return false
		}

		lastErr = err
		logger.Debug("job %s#%d attempt %d/%d failed: %v",
			job.File, job.RecordID, attempt, o.settings.MaxAttempts, err)

		if attempt == o.settings.MaxAttempts || !domain.Retryable(err) {
			break
		}
		if err := sleepCtx(ctx, o.settings.Backoff.Delay(attempt)); err != nil {
			job.Status = domain.JobFailed
			job.Err = lastErr
			return true
		}
	}

	// Exhausted: the slot keeps the source text sentinel.
	job.Status = domain.JobFailed
	job.Err = fmt.Errorf("%w after %d attempts: %w", domain.ErrTranslationFailed, job.Attempts, lastErr)
	return false
}

// setStatus replaces the published progress counters.
func (o *TranslateOrchestrator) setStatus(s driving.TranslateStatus) {
	o.mu.Lock()
	o.status = s
	o.mu.Unlock()
}

// sleepCtx waits d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
