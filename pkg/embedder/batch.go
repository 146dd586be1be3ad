package embedder

import (
	"context"
	"fmt"

	"github.com/soundprediction/citegraph/pkg/types"
)

// EmbedDocuments embeds the text of every document in chunks of at most
// batchSize, one model call per chunk, and writes the returned vectors back
// onto the documents by position within the chunk. The returned slice
// preserves the input order. Any chunk failure aborts the whole call; a
// vector count that does not match the chunk size is reported as
// ErrBatchMismatch.
func EmbedDocuments(ctx context.Context, client Client, docs []types.Document, batchSize int) ([]types.Document, error) {
	if batchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}

	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		chunk := docs[start:end]

		texts := make([]string, len(chunk))
		for i := range chunk {
			texts[i] = chunk[i].Text
		}

		embeddings, err := client.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk starting at %d: %w", start, err)
		}
		if len(embeddings) != len(chunk) {
			return nil, fmt.Errorf("%w: chunk starting at %d sent %d texts, got %d vectors",
				ErrBatchMismatch, start, len(chunk), len(embeddings))
		}

		for i := range chunk {
			chunk[i].Embedding = embeddings[i]
		}
	}

	return docs, nil
}

// EmbedTitles embeds each title and returns one vector per title in input
// order. Used for scoring candidate papers against a query embedding.
func EmbedTitles(ctx context.Context, client Client, titles []string) ([][]float32, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	embeddings, err := client.Embed(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("embedding titles: %w", err)
	}
	if len(embeddings) != len(titles) {
		return nil, fmt.Errorf("%w: sent %d titles, got %d vectors",
			ErrBatchMismatch, len(titles), len(embeddings))
	}
	return embeddings, nil
}
