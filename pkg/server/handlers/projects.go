package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/citegraph"
	"github.com/soundprediction/citegraph/pkg/server/dto"
)

// ProjectsHandler handles citation graph CRUD requests
type ProjectsHandler struct {
	graph citegraph.CiteGraph
}

// NewProjectsHandler creates a new projects handler
func NewProjectsHandler(g citegraph.CiteGraph) *ProjectsHandler {
	return &ProjectsHandler{graph: g}
}

// ListByUser handles GET /projects?user_id=
func (h *ProjectsHandler) ListByUser(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "user_id query parameter is required"})
		return
	}

	projects, err := h.graph.GetProjectsByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "fetch_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetByID handles GET /projects/:project_id
func (h *ProjectsHandler) GetByID(c *gin.Context) {
	projectID := c.Param("project_id")

	project, err := h.graph.GetProjectByID(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "fetch_failed", Message: err.Error()})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: "project not found"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /projects/:project_id?user_id=
func (h *ProjectsHandler) Delete(c *gin.Context) {
	projectID := c.Param("project_id")
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "user_id query parameter is required"})
		return
	}

	project, err := h.graph.DeleteProject(c.Request.Context(), userID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "delete_failed", Message: err.Error()})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: "project not found"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteCitation handles DELETE /projects/:project_id/citations/:citation_id?user_id=
func (h *ProjectsHandler) DeleteCitation(c *gin.Context) {
	projectID := c.Param("project_id")
	citationID := c.Param("citation_id")
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: "user_id query parameter is required"})
		return
	}

	paper, err := h.graph.DeleteCitation(c.Request.Context(), userID, projectID, citationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "delete_failed", Message: err.Error()})
		return
	}
	if paper == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not_found", Message: "citation not found"})
		return
	}

	c.JSON(http.StatusOK, paper)
}
