package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/citegraph"
	"github.com/soundprediction/citegraph/pkg/server/dto"
)

// SearchHandler handles search and embedding pipeline requests
type SearchHandler struct {
	graph citegraph.CiteGraph
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(g citegraph.CiteGraph) *SearchHandler {
	return &SearchHandler{graph: g}
}

// Search handles POST /search - runs the search-and-store pipeline
func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	project, err := h.graph.SearchAndStore(c.Request.Context(), req.Title, req.Keywords, req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "search_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, project)
}

// Backfill handles POST /embeddings/backfill
func (h *SearchHandler) Backfill(c *gin.Context) {
	var req dto.BackfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 1000
	}

	processed, err := h.graph.BackfillEmbeddings(c.Request.Context(), req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "backfill_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.BackfillResponse{Processed: processed})
}

// RelevantPaper handles GET /papers/relevant?q=
func (h *SearchHandler) RelevantPaper(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "q query parameter is required"})
		return
	}

	paper, err := h.graph.MostRelevantPaper(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "paper_search_failed", Message: err.Error()})
		return
	}
	if paper == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: "no paper matched the query"})
		return
	}

	c.JSON(http.StatusOK, paper)
}

// SimilarDocuments handles GET /documents/similar?title=&k=
func (h *SearchHandler) SimilarDocuments(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "title query parameter is required"})
		return
	}

	k := 10
	if raw := c.Query("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "k must be a positive integer"})
			return
		}
		k = parsed
	}

	results, err := h.graph.SimilarDocuments(c.Request.Context(), title, k)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "similarity_search_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}
