package citegraph

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soundprediction/citegraph"
	"github.com/soundprediction/citegraph/pkg/alert"
	"github.com/soundprediction/citegraph/pkg/config"
	"github.com/soundprediction/citegraph/pkg/driver"
	"github.com/soundprediction/citegraph/pkg/embedder"
	"github.com/soundprediction/citegraph/pkg/logger"
	"github.com/soundprediction/citegraph/pkg/nlp"
	"github.com/soundprediction/citegraph/pkg/scholar"
	"github.com/soundprediction/citegraph/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CiteGraph HTTP server",
	Long: `Start the CiteGraph HTTP server to provide REST API access to the
citation pipeline.

The server provides endpoints for:
- Searching and storing paper citations for a project
- Backfilling document embeddings
- Listing, fetching and deleting projects and citations
- Vector similarity search over stored documents
- Health checks

Configuration can be provided through config files, environment variables,
or command-line flags.`,
	RunE: runServe,
}

var (
	serveHost string
	servePort int
	serveMode string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Server host")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Server port")
	serveCmd.Flags().StringVar(&serveMode, "mode", "release", "Server mode (debug, release, test)")

	serveCmd.Flags().String("db-uri", "", "Neo4j URI")
	serveCmd.Flags().String("db-username", "", "Neo4j username")
	serveCmd.Flags().String("db-password", "", "Neo4j password")
	serveCmd.Flags().String("db-database", "", "Neo4j database name")

	serveCmd.Flags().String("embedding-model", "", "Embedding model")
	serveCmd.Flags().String("chat-model", "", "Chat model")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	overrideConfigWithFlags(cmd, cfg)

	if err := validateServeConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.NewDefaultLogger(logger.ParseLevel(cfg.Log.Level))

	graph, err := buildClient(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize citegraph: %w", err)
	}
	defer graph.Close(context.Background())

	srv := server.New(cfg, graph)
	srv.Setup()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()
	log.Info("server started", "host", cfg.Server.Host, "port", cfg.Server.Port)

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("received signal, shutting down", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		log.Info("server stopped gracefully")
		return nil
	}
}

func overrideConfigWithFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode = serveMode
	}

	if cmd.Flags().Changed("db-uri") {
		cfg.Database.URI, _ = cmd.Flags().GetString("db-uri")
	}
	if cmd.Flags().Changed("db-username") {
		cfg.Database.Username, _ = cmd.Flags().GetString("db-username")
	}
	if cmd.Flags().Changed("db-password") {
		cfg.Database.Password, _ = cmd.Flags().GetString("db-password")
	}
	if cmd.Flags().Changed("db-database") {
		cfg.Database.Database, _ = cmd.Flags().GetString("db-database")
	}

	if cmd.Flags().Changed("embedding-model") {
		cfg.Embedding.Model, _ = cmd.Flags().GetString("embedding-model")
	}
	if cmd.Flags().Changed("chat-model") {
		cfg.Chat.Model, _ = cmd.Flags().GetString("chat-model")
	}
}

func validateServeConfig(cfg *config.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Server.Port)
	}
	if cfg.Database.URI == "" {
		return fmt.Errorf("database URI is required")
	}
	if cfg.Embedding.APIKey == "" {
		return fmt.Errorf("embedding API key is required (set OPENAI_API_KEY)")
	}
	return nil
}

// buildClient wires the graph driver, embedding, paper search and chat
// clients into a citegraph client from the loaded configuration.
func buildClient(cfg *config.Config, log *slog.Logger) (*citegraph.Client, error) {
	graphDriver, err := driver.NewNeo4jDriver(
		cfg.Database.URI,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Database,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	embedderClient := embedder.NewOpenAIEmbedder(cfg.Embedding.APIKey, embedder.Config{
		Model:      cfg.Embedding.Model,
		BaseURL:    cfg.Embedding.BaseURL,
		Dimensions: cfg.Embedding.Dimensions,
	})

	scholarClient := scholar.NewSemanticScholarClient(cfg.Scholar.APIKey)

	var chatClient nlp.Client
	if cfg.Chat.APIKey != "" {
		base := nlp.NewOpenAIClient(cfg.Chat.APIKey, nlp.Config{
			Model:       cfg.Chat.Model,
			Temperature: &cfg.Chat.Temperature,
			BaseURL:     cfg.Chat.BaseURL,
		})
		chatClient = nlp.NewRetryClient(base, nlp.DefaultRetryConfig())

		if cfg.CircuitBreaker.Enabled {
			var alerter alert.Alerter = &alert.NoOpAlerter{}
			if cfg.Alert.Enabled {
				alerter = alert.NewEmailAlerter(cfg.Alert)
			}
			chatClient = nlp.NewCircuitBreakerClient(chatClient, cfg.CircuitBreaker, alerter, "chat")
		}
	}

	pipelineCfg := &citegraph.Config{
		BackfillBatchSize: cfg.Backfill.BatchSize,
		SearchPageSize:    cfg.Scholar.PageSize,
	}

	return citegraph.New(graphDriver, embedderClient, scholarClient, chatClient, pipelineCfg, log), nil
}
