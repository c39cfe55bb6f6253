package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/decisions-extractor/internal/common"
	"github.com/joseph-ayodele/decisions-extractor/internal/repository"
)

// RootOptions holds global flags and the state loaded before any subcommand runs.
type RootOptions struct {
	ConfigPath string
	LogLevel   string

	Config *common.Config
	Logger *slog.Logger
}

// NewRootCommand creates the root command for the decisions CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "decisions",
		Short: "Extract and query court decision fields",
		Long: `decisions ingests court decision PDFs, extracts the decision date, debt
amount and fine amount with a language model, stores them, and serves them
to a chat front end over gRPC.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file (env: DECISIONS_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides LOG_LEVEL")

	cmd.AddCommand(NewIngestCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewAskCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewDBHealthCommand(opts))

	return cmd
}

func (o *RootOptions) load(cmd *cobra.Command) error {
	path := o.ConfigPath
	if path == "" {
		path = os.Getenv("DECISIONS_CONFIG")
	}
	cfg, err := common.LoadConfig(path)
	if err != nil {
		return WrapExitError(ExitConfigError, "load configuration", err)
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	o.Config = cfg
	o.Logger = common.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	slog.SetDefault(o.Logger)
	return nil
}

// openStore opens the configured decision store.
func (o *RootOptions) openStore(ctx context.Context) (*repository.DB, repository.DecisionRepository, error) {
	db := o.Config.Database
	store, err := repository.Open(ctx, repository.Config{
		DSN:              db.DSN,
		MaxConns:         db.MaxConns,
		MinConns:         db.MinConns,
		MaxConnLifetime:  db.MaxConnLifetime,
		MaxConnIdleTime:  db.MaxConnIdleTime,
		DialTimeout:      db.DialTimeout,
		StatementTimeout: db.StatementTimeout,
	}, o.Logger)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "open decision store", err)
	}
	return store, repository.NewDecisionRepository(store.Driver, o.Logger), nil
}

// configError maps a validation failure to the configuration exit code.
func configError(err error) error {
	if err == nil {
		return nil
	}
	code := ExitFailure
	if common.IsConfigError(err) {
		code = ExitConfigError
	}
	return WrapExitError(code, "invalid configuration", err)
}
