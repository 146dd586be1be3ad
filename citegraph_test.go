package citegraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/soundprediction/citegraph/pkg/types"
)

// mockGraphDriver is a recording in-memory GraphDriver for pipeline tests.
type mockGraphDriver struct {
	missingDocs     []types.Document
	embeddingWrites [][]types.Document
	indexCreations  int
	createdProjects []*types.Project

	projectsByUser map[string][]*types.Project
	projectsByID   map[string]*types.Project

	deleteCitationResult *types.Paper
	deleteProjectResult  *types.Project

	failSetEmbeddings bool
}

func (m *mockGraphDriver) DocumentsMissingEmbeddings(ctx context.Context, limit int) ([]types.Document, error) {
	if limit <= 0 {
		return nil, types.ErrInvalidLimit
	}
	if limit < len(m.missingDocs) {
		return m.missingDocs[:limit], nil
	}
	return m.missingDocs, nil
}

func (m *mockGraphDriver) SetDocumentEmbeddings(ctx context.Context, docs []types.Document) error {
	if m.failSetEmbeddings {
		return fmt.Errorf("write failed")
	}
	batch := make([]types.Document, len(docs))
	copy(batch, docs)
	m.embeddingWrites = append(m.embeddingWrites, batch)
	return nil
}

func (m *mockGraphDriver) CreateVectorIndex(ctx context.Context) error {
	m.indexCreations++
	return nil
}

func (m *mockGraphDriver) SimilarDocuments(ctx context.Context, title string, k int) ([]types.DocumentResult, error) {
	return nil, nil
}

func (m *mockGraphDriver) CreateProject(ctx context.Context, project *types.Project) error {
	m.createdProjects = append(m.createdProjects, project)
	return nil
}

func (m *mockGraphDriver) ProjectsByUser(ctx context.Context, userID string) ([]*types.Project, error) {
	return m.projectsByUser[userID], nil
}

func (m *mockGraphDriver) ProjectByID(ctx context.Context, projectID string) (*types.Project, error) {
	return m.projectsByID[projectID], nil
}

func (m *mockGraphDriver) DeleteCitation(ctx context.Context, userID, projectID, citationID string) (*types.Paper, error) {
	return m.deleteCitationResult, nil
}

func (m *mockGraphDriver) DeleteProject(ctx context.Context, userID, projectID string) (*types.Project, error) {
	return m.deleteProjectResult, nil
}

func (m *mockGraphDriver) Close(ctx context.Context) error { return nil }

// mockTextEmbedder returns fixed vectors keyed by text, counting model calls.
type mockTextEmbedder struct {
	vectors map[string][]float32
	calls   [][]string
}

func (m *mockTextEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls = append(m.calls, texts)
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := m.vectors[text]; ok {
			out[i] = v
		} else {
			out[i] = []float32{1, 0}
		}
	}
	return out, nil
}

func (m *mockTextEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vecs, err := m.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (m *mockTextEmbedder) Dimensions() int { return 2 }
func (m *mockTextEmbedder) Close() error    { return nil }

// mockScholar serves canned results per query string.
type mockScholar struct {
	results map[string][]types.Paper
	queries []string
}

func (m *mockScholar) Search(ctx context.Context, query string, limit int) ([]types.Paper, error) {
	m.queries = append(m.queries, query)
	return m.results[query], nil
}

func (m *mockScholar) MostRelevantPaper(ctx context.Context, query string) (*types.Paper, error) {
	papers, err := m.Search(ctx, query, 1)
	if err != nil || len(papers) == 0 {
		return nil, err
	}
	return &papers[0], nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(d *mockGraphDriver, e *mockTextEmbedder, s *mockScholar) *Client {
	return New(d, e, s, nil, nil, quietLogger())
}
