package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <dir>",
	Short: "Remove broken or untranslated output files",
	Long: `Scans a translated fragment directory and removes files that are not
valid JSON or that still contain Han characters, meaning the backend
left records untranslated. The next translate run resubmits the
removed files.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	removed, err := workflowService.Clean(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("clean failed: %w", err)
	}

	if len(removed) == 0 {
		cmd.Println("Nothing to clean.")
		return nil
	}

	for _, name := range removed {
		cmd.Printf("removed %s\n", name)
	}
	cmd.Printf("Removed %d file(s).\n", len(removed))
	return nil
}
