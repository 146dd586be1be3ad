package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocument(t *testing.T) {
	row := map[string]any{
		"id":      "tt0111161",
		"title":   "The Shawshank Redemption",
		"text":    "Two imprisoned men bond over a number of years.",
		"quality": 9.3,
	}

	doc, err := decodeDocument(row)
	require.NoError(t, err)
	assert.Equal(t, "tt0111161", doc.ID)
	assert.Equal(t, 9.3, doc.Quality)
}

func TestDecodeDocumentShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]any
	}{
		{"missing id", map[string]any{"title": "t", "text": "x", "quality": 1.0}},
		{"nil title", map[string]any{"id": "a", "title": nil, "text": "x", "quality": 1.0}},
		{"quality wrong type", map[string]any{"id": "a", "title": "t", "text": "x", "quality": "high"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeDocument(tt.row)
			assert.ErrorIs(t, err, ErrShapeMismatch)
		})
	}
}

func TestDecodeDocumentIntegerQuality(t *testing.T) {
	// Neo4j returns whole numbers as int64.
	doc, err := decodeDocument(map[string]any{
		"id": "a", "title": "t", "text": "x", "quality": int64(8),
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, doc.Quality)
}

func TestDecodeProject(t *testing.T) {
	row := map[string]any{
		"projectId": "proj-1",
		"userId":    "user1",
		"title":     "Neural Networks",
		"keywords":  []any{"AI", "ML"},
		"citations": []any{
			map[string]any{"id": "p1", "title": "Paper One", "authors": "A. Author", "score": 0.8},
			map[string]any{"id": "p2", "title": "Paper Two", "authors": "B. Author", "score": 0.5},
		},
	}

	project, err := decodeProject(row)
	require.NoError(t, err)
	assert.Equal(t, "proj-1", project.ProjectID)
	assert.Equal(t, []string{"AI", "ML"}, project.Keywords)
	require.Len(t, project.Citations, 2)
	assert.Equal(t, "p1", project.Citations[0].Paper.ID)
	assert.Equal(t, 0.8, project.Citations[0].Score)
}

func TestDecodeProjectSkipsNullCitations(t *testing.T) {
	// A project with no papers collects a single NULL in Cypher.
	row := map[string]any{
		"projectId": "proj-2",
		"userId":    "user1",
		"title":     "Empty",
		"keywords":  nil,
		"citations": []any{nil},
	}

	project, err := decodeProject(row)
	require.NoError(t, err)
	assert.Empty(t, project.Citations)
}

func TestDecodeProjectWithoutCitationsColumn(t *testing.T) {
	row := map[string]any{
		"projectId": "proj-3",
		"userId":    "user1",
		"title":     "Deleted",
		"keywords":  []any{"x"},
	}

	project, err := decodeProject(row)
	require.NoError(t, err)
	assert.NotNil(t, project.Citations)
	assert.Empty(t, project.Citations)
}

func TestDecodeProjectBadCitationShape(t *testing.T) {
	row := map[string]any{
		"projectId": "proj-4",
		"userId":    "user1",
		"title":     "Bad",
		"keywords":  nil,
		"citations": []any{map[string]any{"id": "p1", "title": "t"}}, // missing authors/score
	}

	_, err := decodeProject(row)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestDecodePaper(t *testing.T) {
	paper, err := decodePaper(map[string]any{
		"id": "p1", "title": "Paper One", "authors": "A. Author, B. Author",
	})
	require.NoError(t, err)
	assert.Equal(t, "A. Author, B. Author", paper.Authors)
}

func TestEmbeddingParam(t *testing.T) {
	assert.Nil(t, embeddingParam(nil))
	assert.Equal(t, []float64{1, 2.5}, embeddingParam([]float32{1, 2.5}))
}
