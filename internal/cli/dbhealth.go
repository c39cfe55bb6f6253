package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewDBHealthCommand creates the dbhealth command.
func NewDBHealthCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dbhealth",
		Short: "Ping the decision store and report the row count",
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

			if err := store.HealthCheck(ctx, time.Second); err != nil {
				return WrapExitError(ExitFailure, "DB health: FAIL", err)
			}
			n, err := decisions.Count(ctx)
			if err != nil {
				return WrapExitError(ExitFailure, "count decisions", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "DB health: OK")
			_, _ = fmt.Fprintf(out, "decisions count: %d\n", n)
			return nil
		},
	}
}
