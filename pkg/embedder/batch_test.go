package embedder

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/citegraph/pkg/types"
)

// mockEmbedder records each batch of texts it receives and returns one
// deterministic vector per text.
type mockEmbedder struct {
	calls      [][]string
	shortBy    int // return this many fewer vectors than requested
	failOnCall int // 1-based call index to fail on, 0 = never
}

func (m *mockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls = append(m.calls, texts)
	if m.failOnCall > 0 && len(m.calls) == m.failOnCall {
		return nil, fmt.Errorf("model unavailable")
	}
	n := len(texts) - m.shortBy
	if n < 0 {
		n = 0
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{float32(len(texts[i])), 1}
	}
	return out, nil
}

func (m *mockEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vecs, err := m.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *mockEmbedder) Dimensions() int { return 2 }
func (m *mockEmbedder) Close() error    { return nil }

func makeDocs(n int) []types.Document {
	docs := make([]types.Document, n)
	for i := range docs {
		docs[i] = types.Document{
			ID:    fmt.Sprintf("doc-%03d", i),
			Title: fmt.Sprintf("Title %d", i),
			Text:  fmt.Sprintf("plot text %d", i),
		}
	}
	return docs
}

func TestEmbedDocumentsChunking(t *testing.T) {
	mock := &mockEmbedder{}
	docs := makeDocs(250)

	result, err := EmbedDocuments(context.Background(), mock, docs, 100)
	require.NoError(t, err)

	// 250 documents at batch size 100 means exactly 3 model calls: 100, 100, 50.
	require.Len(t, mock.calls, 3)
	assert.Len(t, mock.calls[0], 100)
	assert.Len(t, mock.calls[1], 100)
	assert.Len(t, mock.calls[2], 50)

	// Order and length preserved, every document now embedded.
	require.Len(t, result, 250)
	for i, doc := range result {
		assert.Equal(t, fmt.Sprintf("doc-%03d", i), doc.ID)
		assert.NotEmpty(t, doc.Embedding)
	}
}

func TestEmbedDocumentsLastChunkSmaller(t *testing.T) {
	mock := &mockEmbedder{}
	docs := makeDocs(5)

	result, err := EmbedDocuments(context.Background(), mock, docs, 2)
	require.NoError(t, err)
	require.Len(t, mock.calls, 3)
	assert.Len(t, mock.calls[2], 1)
	assert.Len(t, result, 5)
}

func TestEmbedDocumentsCountMismatch(t *testing.T) {
	mock := &mockEmbedder{shortBy: 1}
	docs := makeDocs(3)

	_, err := EmbedDocuments(context.Background(), mock, docs, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBatchMismatch))
}

func TestEmbedDocumentsChunkFailureAborts(t *testing.T) {
	mock := &mockEmbedder{failOnCall: 2}
	docs := makeDocs(30)

	_, err := EmbedDocuments(context.Background(), mock, docs, 10)
	require.Error(t, err)
	// Fail-fast on the second chunk: the third chunk is never attempted.
	assert.Len(t, mock.calls, 2)
}

func TestEmbedDocumentsInvalidBatchSize(t *testing.T) {
	mock := &mockEmbedder{}
	_, err := EmbedDocuments(context.Background(), mock, makeDocs(1), 0)
	assert.ErrorIs(t, err, ErrInvalidBatchSize)
}

func TestEmbedDocumentsEmptyInput(t *testing.T) {
	mock := &mockEmbedder{}
	result, err := EmbedDocuments(context.Background(), mock, nil, 100)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.Empty(t, mock.calls)
}

func TestEmbedTitles(t *testing.T) {
	mock := &mockEmbedder{}
	vecs, err := EmbedTitles(context.Background(), mock, []string{"a", "bb", "ccc"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	vecs, err = EmbedTitles(context.Background(), mock, nil)
	require.NoError(t, err)
	assert.Nil(t, vecs)
}

func TestEmbedTitlesCountMismatch(t *testing.T) {
	mock := &mockEmbedder{shortBy: 2}
	_, err := EmbedTitles(context.Background(), mock, []string{"a", "b", "c"})
	assert.ErrorIs(t, err, ErrBatchMismatch)
}
