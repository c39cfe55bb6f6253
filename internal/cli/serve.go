package cli

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/decisions-extractor/internal/query"
	"github.com/joseph-ayodele/decisions-extractor/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve stored decisions to the chat front end over gRPC",
		Long: `Start the DecisionQuery gRPC service on GRPC_ADDR.

Calls must carry "authorization: Bearer <BOT_TOKEN>". Health and reflection
are registered for grpcurl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), root)
		},
	}
}

func runServe(parent context.Context, root *RootOptions) error {
	cfg, logger := root.Config, root.Logger
	if err := cfg.ValidateForServe(); err != nil {
		return configError(err)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, decisions, err := root.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	// Healthcheck DB on startup
	if err := store.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
		return WrapExitError(ExitFailure, "DB health failed", err)
	}

	q := query.NewService(query.Config{
		SampleSize:  cfg.Query.SampleSize,
		SampleRange: cfg.Query.SampleRange,
	}, decisions, nil, logger)
	grpcServer := server.NewGRPCServer(server.NewDecisionsService(q, logger), cfg.Server.BotToken, logger)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		return WrapExitError(ExitFailure, "listen", err)
	}
	logger.Info("gRPC serving", "addr", lis.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- grpcServer.Serve(lis) }()

	select {
	case <-ctx.Done():
		logger.Info("shutting down gRPC server")
		grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		if err != nil {
			return WrapExitError(ExitFailure, "grpc serve", err)
		}
		return nil
	}
}
