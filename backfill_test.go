package citegraph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/citegraph/pkg/types"
)

func corpusDocs(n int) []types.Document {
	docs := make([]types.Document, n)
	for i := range docs {
		docs[i] = types.Document{
			ID:      fmt.Sprintf("doc-%03d", i),
			Title:   fmt.Sprintf("Movie %d", i),
			Text:    fmt.Sprintf("plot %d", i),
			Quality: float64(n - i),
		}
	}
	return docs
}

func TestBackfillEmbeddings(t *testing.T) {
	d := &mockGraphDriver{missingDocs: corpusDocs(250)}
	e := &mockTextEmbedder{}
	client := newTestClient(d, e, &mockScholar{})

	processed, err := client.BackfillEmbeddings(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, 250, processed)

	// 250 documents at batch size 100: exactly 3 model calls of 100, 100, 50.
	require.Len(t, e.calls, 3)
	assert.Len(t, e.calls[0], 100)
	assert.Len(t, e.calls[1], 100)
	assert.Len(t, e.calls[2], 50)

	// One bulk write per batch, every written document carries its embedding.
	require.Len(t, d.embeddingWrites, 3)
	for _, batch := range d.embeddingWrites {
		for _, doc := range batch {
			assert.NotEmpty(t, doc.Embedding, "document %s missing embedding", doc.ID)
		}
	}

	// Index creation happens once, after all batches.
	assert.Equal(t, 1, d.indexCreations)
}

func TestBackfillEmbeddingsIdempotent(t *testing.T) {
	// Second run with nothing left to embed processes zero documents.
	d := &mockGraphDriver{missingDocs: nil}
	client := newTestClient(d, &mockTextEmbedder{}, &mockScholar{})

	processed, err := client.BackfillEmbeddings(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
	assert.Empty(t, d.embeddingWrites)
	// The index statement is idempotent and still issued.
	assert.Equal(t, 1, d.indexCreations)
}

func TestBackfillEmbeddingsHonorsLimit(t *testing.T) {
	d := &mockGraphDriver{missingDocs: corpusDocs(50)}
	client := newTestClient(d, &mockTextEmbedder{}, &mockScholar{})

	processed, err := client.BackfillEmbeddings(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, processed)
}

func TestBackfillEmbeddingsWriteFailure(t *testing.T) {
	d := &mockGraphDriver{missingDocs: corpusDocs(10), failSetEmbeddings: true}
	client := newTestClient(d, &mockTextEmbedder{}, &mockScholar{})

	_, err := client.BackfillEmbeddings(context.Background(), 100)
	require.Error(t, err)
	assert.Equal(t, 0, d.indexCreations)
}

func TestBackfillEmbeddingsInvalidLimit(t *testing.T) {
	client := newTestClient(&mockGraphDriver{}, &mockTextEmbedder{}, &mockScholar{})
	_, err := client.BackfillEmbeddings(context.Background(), 0)
	assert.ErrorIs(t, err, types.ErrInvalidLimit)
}
