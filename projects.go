package citegraph

import (
	"context"

	"github.com/soundprediction/citegraph/pkg/types"
)

// GetProjectsByUser returns every project for the user with its citations,
// similarity scores included. Empty slice when the user has none.
func (c *Client) GetProjectsByUser(ctx context.Context, userID string) ([]*types.Project, error) {
	return c.driver.ProjectsByUser(ctx, userID)
}

// GetProjectByID returns the project with the given projectId, or nil when
// it does not exist. Absence is not an error.
func (c *Client) GetProjectByID(ctx context.Context, projectID string) (*types.Project, error) {
	return c.driver.ProjectByID(ctx, projectID)
}

// DeleteCitation removes exactly one citation relationship from the project
// and returns the paper it pointed at, or nil when no relationship matched.
// The paper node is kept even when nothing else references it.
func (c *Client) DeleteCitation(ctx context.Context, userID, projectID, citationID string) (*types.Paper, error) {
	if userID == "" {
		return nil, types.ErrEmptyUserID
	}
	if projectID == "" {
		return nil, types.ErrEmptyProjectID
	}

	paper, err := c.driver.DeleteCitation(ctx, userID, projectID, citationID)
	if err != nil {
		return nil, err
	}
	if paper != nil {
		c.logger.Info("deleted citation", "project_id", projectID, "citation_id", citationID)
	}
	return paper, nil
}

// DeleteProject removes the project and all its citation relationships,
// returning the removed project or nil when nothing matched.
func (c *Client) DeleteProject(ctx context.Context, userID, projectID string) (*types.Project, error) {
	if userID == "" {
		return nil, types.ErrEmptyUserID
	}
	if projectID == "" {
		return nil, types.ErrEmptyProjectID
	}

	project, err := c.driver.DeleteProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if project != nil {
		c.logger.Info("deleted project", "project_id", projectID, "user_id", userID)
	}
	return project, nil
}
