package citegraph

import (
	"context"
	"errors"
	"log/slog"

	"github.com/soundprediction/citegraph/pkg/driver"
	"github.com/soundprediction/citegraph/pkg/embedder"
	"github.com/soundprediction/citegraph/pkg/nlp"
	"github.com/soundprediction/citegraph/pkg/scholar"
	"github.com/soundprediction/citegraph/pkg/types"
)

// CiteGraph is the main interface for the semantic paper search and
// citation graph service.
type CiteGraph interface {
	// BackfillEmbeddings embeds up to limit documents that do not yet carry
	// an embedding and ensures the vector index exists. Returns the number
	// of documents processed. Safe to re-run; already-embedded documents
	// are excluded by the source query.
	BackfillEmbeddings(ctx context.Context, limit int) (int, error)

	// SearchAndStore embeds the query title, fetches candidate papers by
	// title and by keywords, ranks them by cosine similarity against the
	// query embedding, persists the result as a new project with scored
	// citations, and returns it.
	SearchAndStore(ctx context.Context, title string, keywords []string, userID string) (*types.Project, error)

	// SimilarDocuments finds documents similar to the one with the given
	// title using the vector index.
	SimilarDocuments(ctx context.Context, title string, k int) ([]types.DocumentResult, error)

	// MostRelevantPaper returns the single best paper-search match for the
	// query, or nil when nothing matches.
	MostRelevantPaper(ctx context.Context, query string) (*types.Paper, error)

	// GetProjectsByUser returns all projects owned by the user with their
	// citations. Empty slice if none.
	GetProjectsByUser(ctx context.Context, userID string) ([]*types.Project, error)

	// GetProjectByID returns the project with the given id, or nil when it
	// does not exist.
	GetProjectByID(ctx context.Context, projectID string) (*types.Project, error)

	// DeleteCitation removes one citation relationship from a project and
	// returns the paper it pointed at, or nil when nothing matched. The
	// paper node survives.
	DeleteCitation(ctx context.Context, userID, projectID, citationID string) (*types.Paper, error)

	// DeleteProject removes a project and all its citation relationships,
	// returning the removed project or nil when nothing matched. Paper
	// nodes survive.
	DeleteProject(ctx context.Context, userID, projectID string) (*types.Project, error)

	// Assistant sends an instruction and prompt to the chat model and
	// returns the completion text.
	Assistant(ctx context.Context, instruction, prompt string) (string, error)

	// Close closes all connections and cleans up resources.
	Close(ctx context.Context) error
}

// Config holds tunables for the pipeline.
type Config struct {
	// BackfillBatchSize is the embedding batch size for backfill runs.
	BackfillBatchSize int
	// SearchPageSize is the page size requested from the paper search API.
	SearchPageSize int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		BackfillBatchSize: 100,
		SearchPageSize:    10,
	}
}

// Client is the main implementation of the CiteGraph interface.
type Client struct {
	driver   driver.GraphDriver
	embedder embedder.Client
	scholar  scholar.Client
	chat     nlp.Client
	config   *Config
	logger   *slog.Logger
}

// New creates a CiteGraph client from its collaborators. The chat client may
// be nil when the assistant surface is not used; config and logger fall back
// to defaults when nil.
func New(graphDriver driver.GraphDriver, embedderClient embedder.Client, scholarClient scholar.Client, chatClient nlp.Client, config *Config, logger *slog.Logger) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BackfillBatchSize <= 0 {
		config.BackfillBatchSize = 100
	}
	if config.SearchPageSize <= 0 {
		config.SearchPageSize = 10
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		driver:   graphDriver,
		embedder: embedderClient,
		scholar:  scholarClient,
		chat:     chatClient,
		config:   config,
		logger:   logger,
	}
}

// MostRelevantPaper returns the top paper-search hit for the query.
func (c *Client) MostRelevantPaper(ctx context.Context, query string) (*types.Paper, error) {
	return c.scholar.MostRelevantPaper(ctx, query)
}

// SimilarDocuments runs a vector-index search anchored on the document with
// the given title.
func (c *Client) SimilarDocuments(ctx context.Context, title string, k int) ([]types.DocumentResult, error) {
	return c.driver.SimilarDocuments(ctx, title, k)
}

// ErrAssistantUnavailable is returned by Assistant when the client was
// built without a chat client.
var ErrAssistantUnavailable = errors.New("assistant: no chat client configured")

// Assistant sends an instruction and prompt to the chat model.
func (c *Client) Assistant(ctx context.Context, instruction, prompt string) (string, error) {
	if c.chat == nil {
		return "", ErrAssistantUnavailable
	}
	return nlp.Complete(ctx, c.chat, instruction, prompt)
}

// Close closes the graph connection and the model clients.
func (c *Client) Close(ctx context.Context) error {
	if c.chat != nil {
		if err := c.chat.Close(); err != nil {
			return err
		}
	}
	if err := c.embedder.Close(); err != nil {
		return err
	}
	return c.driver.Close(ctx)
}

var _ CiteGraph = (*Client)(nil)
