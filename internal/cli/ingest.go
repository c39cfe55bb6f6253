package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/decisions-extractor/internal/extract"
	"github.com/joseph-ayodele/decisions-extractor/internal/llm"
	"github.com/joseph-ayodele/decisions-extractor/internal/llm/openai"
	"github.com/joseph-ayodele/decisions-extractor/internal/pipeline"
)

// NewIngestCommand creates the ingest command.
func NewIngestCommand(root *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "ingest --dir <folder>",
		Short: "Extract and store fields from every PDF in a folder",
		Long: `Process each *.pdf file directly inside the folder, one at a time.

Files without a readable text layer are skipped. Files whose model reply is
missing or unusable are stored with empty fields. The run stops only when the
store itself fails.

Example:
  decisions ingest --dir ./court-pdfs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, root, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "folder containing PDF files (required)")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func runIngest(cmd *cobra.Command, root *RootOptions, dir string) error {
	cfg, logger := root.Config, root.Logger
	if err := cfg.ValidateForIngest(); err != nil {
		return configError(err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	store, decisions, err := root.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	client := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		JSONMode:    cfg.LLM.JSONMode,
	}, logger)
	logger.Info("OpenAI client initialized", "model", client.Model(), "retries", cfg.LLM.Retries)

	completer := llm.WithRetry(client, cfg.LLM.Retries+1, cfg.LLM.RetryDelay, logger)
	extractor := extract.NewPDFExtractor(extract.Config{MaxPages: cfg.PDF.MaxPages}, logger)
	batch := pipeline.NewBatch(logger, extractor, completer, decisions)

	summary, runErr := batch.Run(ctx, dir)
	printSummary(cmd, summary)
	if runErr != nil {
		return WrapExitError(ExitFailure, "ingest aborted", runErr)
	}
	return nil
}

func printSummary(cmd *cobra.Command, s pipeline.RunSummary) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Run %s over %s\n", s.RunID, s.Dir)
	for _, f := range s.Files {
		line := fmt.Sprintf("- %s: %s", f.Path, f.Outcome)
		if f.DecisionID > 0 {
			line += fmt.Sprintf(" (id %d)", f.DecisionID)
		}
		_, _ = fmt.Fprintln(out, line)
	}
	_, _ = fmt.Fprintf(out, "Stored: %d, stored with nulls: %d, skipped: %d\n", s.Stored, s.StoredWithNulls, s.Skipped)
	_, _ = fmt.Fprintf(out, "Records written: %d\n", s.Records())
}
