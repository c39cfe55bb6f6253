package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/decisions-extractor/internal/export"
)

// NewExportCommand creates the export command.
func NewExportCommand(root *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all stored decisions to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.Config.ValidateForExport(); err != nil {
				return configError(err)
			}
			ctx := cmd.Context()
			store, decisions, err := root.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			xlsxBytes, err := export.NewService(decisions, root.Logger).ExportDecisionsXLSX(ctx)
			if err != nil {
				return WrapExitError(ExitFailure, "export decisions", err)
			}
			if err := os.WriteFile(out, xlsxBytes, 0o644); err != nil {
				return WrapExitError(ExitFailure, "write output file", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "decisions.xlsx", "output XLSX file path")
	return cmd
}
