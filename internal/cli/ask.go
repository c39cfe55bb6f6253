package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/joseph-ayodele/decisions-extractor/internal/server"
)

// NewAskCommand creates the ask command, a terminal stand-in for the chat front end.
func NewAskCommand(root *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one chat message to a running server and print the reply",
		Long: `Send a chat message the way the front end would.

Example:
  decisions ask /start
  decisions ask 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := addr
			if target == "" {
				target = root.Config.Server.GRPCAddr
			}
			if strings.HasPrefix(target, ":") {
				target = "localhost" + target
			}

			conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
			if err != nil {
				return WrapExitError(ExitFailure, "dial", err)
			}
			defer func() { _ = conn.Close() }()

			reply, err := server.NewClient(conn, root.Config.Server.BotToken).Reply(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitFailure, "reply", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "server address (default GRPC_ADDR)")
	return cmd
}
