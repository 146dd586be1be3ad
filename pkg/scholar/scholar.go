// Package scholar queries the Semantic Scholar paper search API.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/soundprediction/citegraph/pkg/types"
)

// apiBase is the Semantic Scholar paper search endpoint. Declared as a var
// so tests can substitute an httptest server.
var apiBase = "https://api.semanticscholar.org/graph/v1/paper/search"

// searchFields is the fixed field set requested on every search.
const searchFields = "title,authors,paperId"

// Client searches an academic paper API.
type Client interface {
	// Search returns up to limit papers matching the query, in API rank order.
	Search(ctx context.Context, query string, limit int) ([]types.Paper, error)

	// MostRelevantPaper returns the single best match for the query, or nil
	// when the API returns no results.
	MostRelevantPaper(ctx context.Context, query string) (*types.Paper, error)
}

// SemanticScholarClient implements Client against the Semantic Scholar API.
type SemanticScholarClient struct {
	HTTPClient *http.Client
	APIKey     string
}

// NewSemanticScholarClient creates a client with an optional API key.
func NewSemanticScholarClient(apiKey string) *SemanticScholarClient {
	return &SemanticScholarClient{
		HTTPClient: http.DefaultClient,
		APIKey:     apiKey,
	}
}

// Search queries the Semantic Scholar API and returns simplified papers.
func (c *SemanticScholarClient) Search(ctx context.Context, query string, limit int) ([]types.Paper, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty paper search query")
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"query":  {query},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {searchFields},
	}
	reqURL := apiBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	papers := make([]types.Paper, 0, len(sr.Data))
	for _, p := range sr.Data {
		names := make([]string, 0, len(p.Authors))
		for _, a := range p.Authors {
			names = append(names, a.Name)
		}
		papers = append(papers, types.Paper{
			ID:      p.PaperID,
			Title:   p.Title,
			Authors: strings.Join(names, ", "),
		})
	}
	return papers, nil
}

// MostRelevantPaper returns the top search hit for the query, or nil when
// nothing matches.
func (c *SemanticScholarClient) MostRelevantPaper(ctx context.Context, query string) (*types.Paper, error) {
	papers, err := c.Search(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, nil
	}
	return &papers[0], nil
}

// Semantic Scholar API JSON structures.
type searchResponse struct {
	Total  int           `json:"total"`
	Offset int           `json:"offset"`
	Data   []searchPaper `json:"data"`
}

type searchPaper struct {
	PaperID string         `json:"paperId"`
	Title   string         `json:"title"`
	Authors []searchAuthor `json:"authors"`
}

type searchAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}
