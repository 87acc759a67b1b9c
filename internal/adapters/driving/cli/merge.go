package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wwm-locale/localetool/internal/core/domain"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <original-dir> <patch-dir> <out-dir>",
	Short: "Merge a translated patch over the original fragments",
	Long: `Overlays patch records onto the original fragment files by record id.
Output keeps the original's file set, record order, and record count;
only the text of patched records changes.

The merge is all-or-nothing: a patch file that doesn't exist in the
original, or a patch record whose id is missing from its file, aborts
the merge and nothing is written.`,
	Args: cobra.ExactArgs(3),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	originalDir, patchDir, outDir := args[0], args[1], args[2]

	err := workflowService.MergeDirs(cmd.Context(), originalDir, patchDir, outDir)
	if err != nil {
		var mismatch *domain.StructuralMismatchError
		if errors.As(err, &mismatch) {
			cmd.PrintErrf("Structural mismatch: original has %d files, patch has %d.\n",
				mismatch.OriginalFiles, mismatch.PatchFiles)
			for _, name := range mismatch.Unmatched {
				cmd.PrintErrf("  no original file for patch %s\n", name)
			}
		}
		var missing *domain.MissingIDError
		if errors.As(err, &missing) {
			cmd.PrintErrf("Patch record id %d has no counterpart in %s.\n",
				missing.ID, missing.File)
		}
		return fmt.Errorf("merge failed: %w", err)
	}

	cmd.Printf("Merged %s over %s into %s.\n", patchDir, originalDir, outDir)
	return nil
}
