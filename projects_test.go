package citegraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/citegraph/pkg/types"
)

func TestGetProjectsByUser(t *testing.T) {
	d := &mockGraphDriver{projectsByUser: map[string][]*types.Project{
		"user1": {
			{ProjectID: "p1", UserID: "user1", Title: "First"},
			{ProjectID: "p2", UserID: "user1", Title: "Second"},
		},
	}}
	client := newTestClient(d, &mockTextEmbedder{}, &mockScholar{})

	projects, err := client.GetProjectsByUser(context.Background(), "user1")
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	projects, err = client.GetProjectsByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestGetProjectByID(t *testing.T) {
	d := &mockGraphDriver{projectsByID: map[string]*types.Project{
		"p1": {ProjectID: "p1", UserID: "user1", Title: "First"},
	}}
	client := newTestClient(d, &mockTextEmbedder{}, &mockScholar{})

	project, err := client.GetProjectByID(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "First", project.Title)

	// Unknown ids come back as nil, not as errors.
	project, err = client.GetProjectByID(context.Background(), "arbitrary-string")
	require.NoError(t, err)
	assert.Nil(t, project)
}

func TestDeleteCitation(t *testing.T) {
	d := &mockGraphDriver{deleteCitationResult: &types.Paper{ID: "c1", Title: "Cited"}}
	client := newTestClient(d, &mockTextEmbedder{}, &mockScholar{})

	paper, err := client.DeleteCitation(context.Background(), "user1", "p1", "c1")
	require.NoError(t, err)
	require.NotNil(t, paper)
	assert.Equal(t, "c1", paper.ID)
}

func TestDeleteCitationNotFound(t *testing.T) {
	client := newTestClient(&mockGraphDriver{}, &mockTextEmbedder{}, &mockScholar{})

	paper, err := client.DeleteCitation(context.Background(), "user1", "p1", "missing")
	require.NoError(t, err)
	assert.Nil(t, paper)
}

func TestDeleteCitationValidation(t *testing.T) {
	client := newTestClient(&mockGraphDriver{}, &mockTextEmbedder{}, &mockScholar{})

	_, err := client.DeleteCitation(context.Background(), "", "p1", "c1")
	assert.ErrorIs(t, err, types.ErrEmptyUserID)

	_, err = client.DeleteCitation(context.Background(), "user1", "", "c1")
	assert.ErrorIs(t, err, types.ErrEmptyProjectID)
}

func TestDeleteProject(t *testing.T) {
	d := &mockGraphDriver{deleteProjectResult: &types.Project{ProjectID: "p1", UserID: "user1", Title: "Gone"}}
	client := newTestClient(d, &mockTextEmbedder{}, &mockScholar{})

	project, err := client.DeleteProject(context.Background(), "user1", "p1")
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "Gone", project.Title)
}

func TestDeleteProjectNotFound(t *testing.T) {
	client := newTestClient(&mockGraphDriver{}, &mockTextEmbedder{}, &mockScholar{})

	project, err := client.DeleteProject(context.Background(), "user1", "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, project)
}
