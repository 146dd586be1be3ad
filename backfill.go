package citegraph

import (
	"context"
	"fmt"

	"github.com/soundprediction/citegraph/pkg/embedder"
)

// BackfillEmbeddings embeds documents that do not yet carry an embedding,
// highest quality first, and writes them back in one bulk statement per
// batch. The vector index is (re)created idempotently afterwards, so the
// operation can run on a schedule: each run only picks up documents still
// missing embeddings.
func (c *Client) BackfillEmbeddings(ctx context.Context, limit int) (int, error) {
	docs, err := c.driver.DocumentsMissingEmbeddings(ctx, limit)
	if err != nil {
		return 0, err
	}

	batchSize := c.config.BackfillBatchSize
	for start := 0; start < len(docs); start += batchSize {
		end := start + batchSize
		if end > len(docs) {
			end = len(docs)
		}
		chunk := docs[start:end]

		if _, err := embedder.EmbedDocuments(ctx, c.embedder, chunk, batchSize); err != nil {
			return 0, fmt.Errorf("backfill: %w", err)
		}
		if err := c.driver.SetDocumentEmbeddings(ctx, chunk); err != nil {
			return 0, fmt.Errorf("backfill: %w", err)
		}

		c.logger.Info("embedded document batch", "start", start, "count", len(chunk))
	}

	if err := c.driver.CreateVectorIndex(ctx); err != nil {
		return 0, fmt.Errorf("backfill: %w", err)
	}

	c.logger.Info("backfill complete", "processed", len(docs))
	return len(docs), nil
}
