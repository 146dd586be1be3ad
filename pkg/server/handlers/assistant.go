package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/citegraph"
	"github.com/soundprediction/citegraph/pkg/server/dto"
)

// defaultInstruction is used when a request carries no system instruction.
const defaultInstruction = "You are a research assistant. Answer concisely."

// AssistantHandler handles chat assistant requests
type AssistantHandler struct {
	graph citegraph.CiteGraph
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(g citegraph.CiteGraph) *AssistantHandler {
	return &AssistantHandler{graph: g}
}

// Complete handles POST /assistant
func (h *AssistantHandler) Complete(c *gin.Context) {
	var req dto.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	instruction := req.Instruction
	if instruction == "" {
		instruction = defaultInstruction
	}

	content, err := h.graph.Assistant(c.Request.Context(), instruction, req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "assistant_failed", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AssistantResponse{Content: content})
}
