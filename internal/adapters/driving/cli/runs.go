package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wwm-locale/localetool/internal/adapters/driven/storage/sqlite"
	"github.com/wwm-locale/localetool/internal/core/domain"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past translation runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run's per-record outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open run ledger: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	cmd.Printf("%-38s %-20s %-12s %7s %7s %7s %7s\n",
		"ID", "STARTED", "LANGUAGE", "TOTAL", "OK", "FAIL", "SKIP")
	for _, r := range runs {
		cmd.Printf("%-38s %-20s %-12s %7d %7d %7d %7d\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.TargetLanguage,
			r.Total, r.Succeeded, r.Failed, r.Skipped)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("open run ledger: %w", err)
	}
	defer store.Close()

	report, err := store.GetRun(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	cmd.Printf("Run %s\n", report.ID)
	cmd.Printf("  model:     %s\n", report.Model)
	cmd.Printf("  language:  %s\n", report.TargetLanguage)
	cmd.Printf("  started:   %s\n", report.StartedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("  duration:  %s\n", report.FinishedAt.Sub(report.StartedAt))
	cmd.Printf("  total:     %d  succeeded: %d  failed: %d  skipped: %d\n",
		report.Total, report.Succeeded, report.Failed, report.Skipped)

	if len(report.Outcomes) == 0 {
		return nil
	}
	cmd.Println("\nOutcomes:")
	for _, o := range report.Outcomes {
		line := fmt.Sprintf("  %-10s %s id=%d attempts=%d", o.Status, o.File, o.RecordID, o.Attempts)
		if o.Status == domain.JobFailed && o.Err != "" {
			line += "  " + o.Err
		}
		cmd.Println(line)
	}
	return nil
}
