package embedder

import (
	"context"
	"errors"
)

// Batch and contract errors
var (
	// ErrBatchMismatch is returned when the model returns a different number
	// of vectors than the number of texts it was given. This is a contract
	// violation and aborts the whole call.
	ErrBatchMismatch = errors.New("embedding count does not match input count")

	// ErrInvalidBatchSize is returned when a non-positive batch size is requested.
	ErrInvalidBatchSize = errors.New("batch size must be positive")
)

// Client defines the interface for text embedding operations.
type Client interface {
	// Embed generates embeddings for the given texts, one vector per text,
	// in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedSingle generates an embedding for a single text.
	EmbedSingle(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the number of dimensions in the embeddings.
	Dimensions() int

	// Close cleans up any resources.
	Close() error
}
