package types

import (
	"errors"
	"time"
)

// Validation errors
var (
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrEmptyUserID    = errors.New("user_id cannot be empty")
	ErrEmptyProjectID = errors.New("project_id cannot be empty")
	ErrEmptyText      = errors.New("text cannot be empty")
	ErrInvalidLimit   = errors.New("limit must be positive")
)

// Document represents a corpus entity (a movie plot, a paper abstract) that
// carries or is waiting for an embedding.
type Document struct {
	ID        string    `json:"id" mapstructure:"id"`
	Title     string    `json:"title" mapstructure:"title"`
	Text      string    `json:"text" mapstructure:"text"`
	Quality   float64   `json:"quality,omitempty" mapstructure:"quality"`
	Embedding []float32 `json:"embedding,omitempty" mapstructure:"embedding"`
}

// Validate checks if the Document has all required fields set.
func (d *Document) Validate() error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if d.Text == "" {
		return ErrEmptyText
	}
	return nil
}

// DocumentResult pairs a document with a similarity score.
type DocumentResult struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// Paper represents a candidate paper returned by the paper-search API.
// Authors is the flattened comma-joined author list; the merge key for
// graph upserts is the full (id, title, authors) triple.
type Paper struct {
	ID      string `json:"id" mapstructure:"id"`
	Title   string `json:"title" mapstructure:"title"`
	Authors string `json:"authors" mapstructure:"authors"`
}

// Citation pairs a paper with the similarity score it was ranked with.
// The score is fixed at creation time and never recomputed.
type Citation struct {
	Paper Paper   `json:"paper"`
	Score float64 `json:"score"`
}

// Project represents one query-and-results unit: a search node owned by a
// user, its query embedding, and the scored citations hanging off it.
type Project struct {
	ProjectID string    `json:"project_id" mapstructure:"project_id"`
	UserID    string    `json:"user_id" mapstructure:"user_id"`
	Title     string    `json:"title" mapstructure:"title"`
	Keywords  []string  `json:"keywords,omitempty" mapstructure:"keywords"`
	Embedding []float32 `json:"embedding,omitempty" mapstructure:"embedding"`
	Citations []Citation `json:"citations"`
	CreatedAt time.Time `json:"created_at,omitempty" mapstructure:"created_at"`
}

// Validate checks if the Project has all required fields for creation.
func (p *Project) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}
	if p.UserID == "" {
		return ErrEmptyUserID
	}
	return nil
}

// Role represents the role of a chat message author.
type Role string

// Message represents a single chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Response represents a chat completion response.
type Response struct {
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Model        string `json:"model,omitempty"`
}
