// Package driver provides graph database access for the citegraph project.
//
// The GraphDriver interface covers the read, write, and merge protocol the
// pipeline needs: fetching documents that still lack embeddings, bulk
// embedding writes, vector index creation, project persistence with
// merge-on-key paper upserts, and the project/citation delete operations.
package driver

import (
	"context"

	"github.com/soundprediction/citegraph/pkg/types"
)

// GraphDriver is the set of graph store operations used by the pipeline.
// Absent rows are reported as nil results, never as errors.
type GraphDriver interface {
	// DocumentsMissingEmbeddings returns up to limit documents with no
	// embedding, non-empty text, and a positive quality score, ordered by
	// quality descending.
	DocumentsMissingEmbeddings(ctx context.Context, limit int) ([]types.Document, error)

	// SetDocumentEmbeddings writes each document's embedding back to the
	// store, matched on document id, in a single bulk statement.
	SetDocumentEmbeddings(ctx context.Context, docs []types.Document) error

	// CreateVectorIndex creates the document vector index if it does not
	// already exist. Safe to call repeatedly.
	CreateVectorIndex(ctx context.Context) error

	// SimilarDocuments runs a vector-index search anchored on the stored
	// embedding of the document with the given title, excluding that
	// document itself.
	SimilarDocuments(ctx context.Context, title string, k int) ([]types.DocumentResult, error)

	// CreateProject persists a project node together with its merged paper
	// nodes and scored RELATED_TO relationships in one write statement.
	CreateProject(ctx context.Context, project *types.Project) error

	// ProjectsByUser returns all projects owned by the user, each with its
	// citations ordered by score descending. Empty slice if none.
	ProjectsByUser(ctx context.Context, userID string) ([]*types.Project, error)

	// ProjectByID returns the project with the given projectId property,
	// or nil when no such project exists.
	ProjectByID(ctx context.Context, projectID string) (*types.Project, error)

	// DeleteCitation removes one RELATED_TO relationship matching the three
	// keys and returns the paper it pointed at. The paper node survives.
	// Returns nil when no relationship matches.
	DeleteCitation(ctx context.Context, userID, projectID, citationID string) (*types.Paper, error)

	// DeleteProject removes the project and all its outgoing relationships.
	// Paper nodes survive. Returns the removed project, or nil when no
	// project matches.
	DeleteProject(ctx context.Context, userID, projectID string) (*types.Project, error)

	// Close releases all resources held by the driver.
	Close(ctx context.Context) error
}
