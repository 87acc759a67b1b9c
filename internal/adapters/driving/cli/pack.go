package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var packCmd = &cobra.Command{
	Use:   "pack <archive> <patch-dir> <out-archive>",
	Short: "Build a patched locale archive",
	Long: `Rebuilds a locale archive with translations applied: unpacks the
original archive, merges the patch directory over it by record id, and
packs the merged fragments into the output archive.`,
	Args: cobra.ExactArgs(3),
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	archive, patchDir, outPath := args[0], args[1], args[2]
	cmd.Printf("Packing %s with patch %s...\n", archive, patchDir)

	if err := workflowService.Pack(cmd.Context(), archive, patchDir, outPath); err != nil {
		return fmt.Errorf("pack failed: %w", err)
	}

	cmd.Printf("Wrote %s.\n", outPath)
	return nil
}
