// Package dto defines request and response shapes for the HTTP API.
package dto

import (
	"errors"
	"strings"
)

// Validation errors
var (
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrEmptyUserID  = errors.New("user_id cannot be empty")
	ErrEmptyPrompt  = errors.New("prompt cannot be empty")
	ErrTitleTooLong = errors.New("title exceeds maximum length (1024)")
)

// MaxTitleLength bounds query titles to prevent abuse
const MaxTitleLength = 1024

// SearchRequest represents a search-and-store request
type SearchRequest struct {
	Title    string   `json:"title" binding:"required"`
	Keywords []string `json:"keywords,omitempty"`
	UserID   string   `json:"user_id" binding:"required"`
}

// Validate performs validation on SearchRequest
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if len(r.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(r.UserID) == "" {
		return ErrEmptyUserID
	}
	return nil
}

// BackfillRequest represents an embedding backfill request
type BackfillRequest struct {
	Limit int `json:"limit,omitempty"`
}

// BackfillResponse reports how many documents a backfill run embedded
type BackfillResponse struct {
	Processed int `json:"processed"`
}

// AssistantRequest represents a chat assistant request
type AssistantRequest struct {
	Instruction string `json:"instruction,omitempty"`
	Prompt      string `json:"prompt" binding:"required"`
}

// Validate performs validation on AssistantRequest
func (r *AssistantRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// AssistantResponse carries the completion text
type AssistantResponse struct {
	Content string `json:"content"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
