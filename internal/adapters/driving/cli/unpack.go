package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var unpackCmd = &cobra.Command{
	Use:   "unpack <archive> <dest-dir>",
	Short: "Unpack a locale archive into fragment files",
	Long: `Decomposes a locale archive into per-fragment JSON files under the
destination directory. Each fragment file holds an ordered list of
{id, text} records.`,
	Args: cobra.ExactArgs(2),
	RunE: runUnpack,
}

func init() {
	rootCmd.AddCommand(unpackCmd)
}

func runUnpack(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	archive, destDir := args[0], args[1]
	cmd.Printf("Unpacking %s into %s...\n", archive, destDir)

	if err := workflowService.Unpack(cmd.Context(), archive, destDir); err != nil {
		return fmt.Errorf("unpack failed: %w", err)
	}

	cmd.Println("Done.")
	return nil
}
