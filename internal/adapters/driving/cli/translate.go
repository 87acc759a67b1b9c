package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wwm-locale/localetool/internal/adapters/driven/storage/sqlite"
	"github.com/wwm-locale/localetool/internal/adapters/driven/translator"
	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driven"
	"github.com/wwm-locale/localetool/internal/core/services"
	"github.com/wwm-locale/localetool/internal/logger"
)

var (
	translateWorkers     int
	translateMaxAttempts int
	translateLang        string
	translateRPS         float64
	translateNoLedger    bool
)

var translateCmd = &cobra.Command{
	Use:   "translate <source-dir> <out-dir>",
	Short: "Machine-translate fragment files",
	Long: `Translates every record in the source fragment directory and writes
translated fragment files to the output directory.

Records are translated concurrently by a fixed worker pool with rate
limiting and per-record retries. A fragment file is written only once
all of its records have resolved; records that permanently fail keep
their source text so a later run picks them up again.

Rerunning over the same directories resumes: records already translated
in the output directory are not resubmitted, and a fully translated
input issues no calls at all.

Interrupting with Ctrl-C stops dispatching new records; calls already
in flight finish, and files with unresolved records are left unwritten.`,
	Args: cobra.ExactArgs(2),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().IntVar(&translateWorkers, "workers", 0, "Worker pool size (default from config)")
	translateCmd.Flags().IntVar(&translateMaxAttempts, "max-attempts", 0, "Max translation attempts per record (default from config)")
	translateCmd.Flags().StringVar(&translateLang, "lang", "", "Target language (default from config)")
	translateCmd.Flags().Float64Var(&translateRPS, "rps", 0, "Max requests per second, 0 keeps the configured limit")
	translateCmd.Flags().BoolVar(&translateNoLedger, "no-ledger", false, "Skip persisting the run report")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	sourceDir, outDir := args[0], args[1]

	// Flag overrides on top of config and environment
	s := settings
	if translateWorkers > 0 {
		s.Orchestrator.Workers = translateWorkers
	}
	if translateMaxAttempts > 0 {
		s.Orchestrator.MaxAttempts = translateMaxAttempts
	}
	if translateLang != "" {
		s.Orchestrator.TargetLanguage = translateLang
	}
	if cmd.Flags().Changed("rps") {
		s.Orchestrator.RequestsPerSecond = translateRPS
	}

	if err := s.Validate(); err != nil {
		return err
	}

	// Fail before any job is dispatched if the backend is unreachable
	tr, err := translator.CreateAndValidateTranslator(
		cmd.Context(), s.Translator, s.Orchestrator.TargetLanguage, promptStore)
	if err != nil {
		return err
	}
	defer tr.Close()

	var runs driven.RunStore
	if !translateNoLedger {
		store, err := sqlite.NewStore("")
		if err != nil {
			logger.Warn("Run ledger unavailable, continuing without it: %v", err)
		} else {
			runs = store
			defer store.Close()
		}
	}

	orch := services.NewTranslateOrchestrator(fragmentStore, tr, runs, s.Orchestrator)

	// Ctrl-C stops dispatch; in-flight calls finish on their own
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Translating %s to %s with %d workers (model %s)...\n",
		sourceDir, s.Orchestrator.TargetLanguage, s.Orchestrator.Workers, tr.ModelName())

	report, runErr := orch.Translate(ctx, sourceDir, outDir)
	if report != nil {
		printReport(cmd, report)
	}
	if runErr != nil {
		return fmt.Errorf("translate: %w", runErr)
	}
	return nil
}

func printReport(cmd *cobra.Command, report *domain.RunReport) {
	cmd.Printf("\nRun %s finished in %s\n", report.ID, report.FinishedAt.Sub(report.StartedAt).Round(time.Second))
	cmd.Printf("  total:     %d\n", report.Total)
	cmd.Printf("  succeeded: %d\n", report.Succeeded)
	cmd.Printf("  failed:    %d\n", report.Failed)
	cmd.Printf("  skipped:   %d (already translated)\n", report.Skipped)

	if report.Failed == 0 {
		return
	}
	cmd.Println("\nFailed records:")
	for _, o := range report.Outcomes {
		if o.Status != domain.JobFailed {
			continue
		}
		cmd.Printf("  %s id=%d after %d attempt(s): %s\n", o.File, o.RecordID, o.Attempts, o.Err)
	}
	cmd.Println("\nRerun the same command to retry failed records.")
}
