package citegraph

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soundprediction/citegraph/pkg/config"
	"github.com/soundprediction/citegraph/pkg/logger"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Embed documents that are missing embeddings",
	Long: `Fetch documents without embeddings from the graph, compute embeddings
in batches and write them back. Also ensures the vector index exists.

The command processes at most --limit documents per run, so it is safe to
schedule repeatedly (for example from cron) until the backlog drains.`,
	RunE: runBackfill,
}

var backfillLimit int

func init() {
	rootCmd.AddCommand(backfillCmd)

	backfillCmd.Flags().IntVar(&backfillLimit, "limit", 1000, "Maximum number of documents to process in this run")
}

func runBackfill(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.URI == "" {
		return fmt.Errorf("database URI is required")
	}
	if cfg.Embedding.APIKey == "" {
		return fmt.Errorf("embedding API key is required (set OPENAI_API_KEY)")
	}

	log := logger.NewDefaultLogger(logger.ParseLevel(cfg.Log.Level))

	graph, err := buildClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize citegraph: %w", err)
	}

	ctx := context.Background()
	defer graph.Close(ctx)

	processed, err := graph.BackfillEmbeddings(ctx, backfillLimit)
	if err != nil {
		return fmt.Errorf("backfill failed: %w", err)
	}

	fmt.Printf("Embedded %d documents\n", processed)
	return nil
}
