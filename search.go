package citegraph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/soundprediction/citegraph/pkg/embedder"
	"github.com/soundprediction/citegraph/pkg/types"
	"github.com/soundprediction/citegraph/pkg/utils"
)

// SearchAndStore runs the query-rank-persist pipeline: embed the title,
// gather candidates from the paper search API (title matches first, then
// keyword matches, no deduplication), score every candidate title against
// the query embedding, keep strictly positive scores, and persist the
// ranked result as a new project. Every call creates a new project node.
func (c *Client) SearchAndStore(ctx context.Context, title string, keywords []string, userID string) (*types.Project, error) {
	if strings.TrimSpace(title) == "" {
		return nil, types.ErrEmptyTitle
	}
	if userID == "" {
		return nil, types.ErrEmptyUserID
	}

	queryEmbedding, err := c.embedder.EmbedSingle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("embedding query title: %w", err)
	}

	candidates, err := c.fetchCandidates(ctx, title, keywords)
	if err != nil {
		return nil, err
	}

	citations, err := c.rankCandidates(ctx, queryEmbedding, candidates)
	if err != nil {
		return nil, err
	}

	project := &types.Project{
		ProjectID: uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Keywords:  keywords,
		Embedding: queryEmbedding,
		Citations: citations,
	}

	if err := c.driver.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	c.logger.Info("stored search project",
		"project_id", project.ProjectID,
		"user_id", userID,
		"candidates", len(candidates),
		"citations", len(citations))

	return project, nil
}

// fetchCandidates issues one search for the title and one for the keywords
// joined by spaces, concatenating the results in that order.
func (c *Client) fetchCandidates(ctx context.Context, title string, keywords []string) ([]types.Paper, error) {
	candidates, err := c.scholar.Search(ctx, title, c.config.SearchPageSize)
	if err != nil {
		return nil, fmt.Errorf("searching papers by title: %w", err)
	}

	keywordQuery := strings.TrimSpace(strings.Join(keywords, " "))
	if keywordQuery != "" {
		keywordMatches, err := c.scholar.Search(ctx, keywordQuery, c.config.SearchPageSize)
		if err != nil {
			return nil, fmt.Errorf("searching papers by keywords: %w", err)
		}
		candidates = append(candidates, keywordMatches...)
	}

	return candidates, nil
}

// rankCandidates embeds every candidate title, scores it against the query
// embedding, drops non-positive scores (which also covers zero-magnitude
// degenerate vectors), and sorts descending on the full-precision score.
// The sort is stable so equal scores keep candidate order.
func (c *Client) rankCandidates(ctx context.Context, queryEmbedding []float32, candidates []types.Paper) ([]types.Citation, error) {
	if len(candidates) == 0 {
		return []types.Citation{}, nil
	}

	titles := make([]string, len(candidates))
	for i, paper := range candidates {
		titles[i] = paper.Title
	}

	embeddings, err := embedder.EmbedTitles(ctx, c.embedder, titles)
	if err != nil {
		return nil, fmt.Errorf("embedding candidate titles: %w", err)
	}

	citations := make([]types.Citation, 0, len(candidates))
	for i, paper := range candidates {
		score := utils.CosineSimilarity(queryEmbedding, embeddings[i])
		if score <= 0 {
			continue
		}
		citations = append(citations, types.Citation{Paper: paper, Score: score})
	}

	sort.SliceStable(citations, func(i, j int) bool {
		return citations[i].Score > citations[j].Score
	})

	return citations, nil
}
