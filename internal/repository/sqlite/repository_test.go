package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWorkspace = "01HQZX5J8N0000000000000000"

func newTestID() string {
	return ulid.Make().String()
}

func setupTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.EnsureWorkspace(context.Background(), testWorkspace, "test workspace"))
	return repo
}

func insertClient(t *testing.T, repo *SQLiteRepository, name string) *Client {
	t.Helper()

	client := &Client{
		ID:              newTestID(),
		WorkspaceID:     testWorkspace,
		Name:            name,
		Currency:        "EUR",
		DefaultBillable: true,
	}
	require.NoError(t, repo.CreateClient(context.Background(), client))
	return client
}

func insertProject(t *testing.T, repo *SQLiteRepository, name string, clientID *string) *Project {
	t.Helper()

	project := &Project{
		ID:          newTestID(),
		WorkspaceID: testWorkspace,
		ClientID:    clientID,
		Name:        name,
	}
	require.NoError(t, repo.CreateProject(context.Background(), project))
	return project
}

func insertClosedEntry(t *testing.T, repo *SQLiteRepository, projectID, clientID *string, start time.Time, seconds int64, billable bool) *TimeEntry {
	t.Helper()

	end := start.Add(time.Duration(seconds) * time.Second)
	entry := &TimeEntry{
		ID:              newTestID(),
		WorkspaceID:     testWorkspace,
		ProjectID:       projectID,
		ClientID:        clientID,
		Description:     "closed entry",
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: &seconds,
		Billable:        billable,
	}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), entry))
	return entry
}

func TestEnsureWorkspace(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	ws, err := repo.GetWorkspace(ctx, testWorkspace)
	require.NoError(t, err)
	assert.Equal(t, "test workspace", ws.Name)

	// Running it again is a no-op, the original name survives.
	require.NoError(t, repo.EnsureWorkspace(ctx, testWorkspace, "renamed"))
	ws, err = repo.GetWorkspace(ctx, testWorkspace)
	require.NoError(t, err)
	assert.Equal(t, "test workspace", ws.Name)

	_, err = repo.GetWorkspace(ctx, "missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestClientCRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	rate := "95.00"
	client := &Client{
		ID:              newTestID(),
		WorkspaceID:     testWorkspace,
		Name:            "Acme Corp",
		Currency:        "EUR",
		Address:         "1 Main St",
		Color:           "#ff0000",
		DefaultRate:     &rate,
		DefaultBillable: true,
		BudgetLimit:     40,
	}
	require.NoError(t, repo.CreateClient(ctx, client))

	retrieved, err := repo.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", retrieved.Name)
	assert.Equal(t, "EUR", retrieved.Currency)
	require.NotNil(t, retrieved.DefaultRate)
	assert.Equal(t, "95.00", *retrieved.DefaultRate)
	assert.True(t, retrieved.DefaultBillable)
	assert.Equal(t, 40.0, retrieved.BudgetLimit)

	retrieved.Name = "Acme Corporation"
	retrieved.DefaultRate = nil
	require.NoError(t, repo.UpdateClient(ctx, retrieved))

	updated, err := repo.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", updated.Name)
	assert.Nil(t, updated.DefaultRate)

	require.NoError(t, repo.DeleteClient(ctx, client.ID))
	_, err = repo.GetClient(ctx, client.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestClientNotFound(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetClient(ctx, "missing")
	assert.Contains(t, err.Error(), "not found")

	err = repo.UpdateClient(ctx, &Client{ID: "missing", Name: "x"})
	assert.Contains(t, err.Error(), "not found")

	err = repo.DeleteClient(ctx, "missing")
	assert.Contains(t, err.Error(), "not found")
}

func TestListClients_OrderedByName(t *testing.T) {
	repo := setupTestRepo(t)

	insertClient(t, repo, "Zenith")
	insertClient(t, repo, "Acme")
	insertClient(t, repo, "Midway")

	clients, err := repo.ListClients(context.Background(), testWorkspace)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "Acme", clients[0].Name)
	assert.Equal(t, "Midway", clients[1].Name)
	assert.Equal(t, "Zenith", clients[2].Name)
}

func TestProjectCRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	client := insertClient(t, repo, "Acme")
	rate := "120.00"
	billable := false
	project := &Project{
		ID:              newTestID(),
		WorkspaceID:     testWorkspace,
		ClientID:        &client.ID,
		Name:            "Website",
		Color:           "#00ff00",
		BudgetLimit:     10,
		HourlyRate:      &rate,
		DefaultBillable: &billable,
		IsFavorite:      true,
	}
	require.NoError(t, repo.CreateProject(ctx, project))

	retrieved, err := repo.GetProject(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.ClientID)
	assert.Equal(t, client.ID, *retrieved.ClientID)
	require.NotNil(t, retrieved.HourlyRate)
	assert.Equal(t, "120.00", *retrieved.HourlyRate)
	require.NotNil(t, retrieved.DefaultBillable)
	assert.False(t, *retrieved.DefaultBillable)
	assert.True(t, retrieved.IsFavorite)

	retrieved.ClientID = nil
	retrieved.DefaultBillable = nil
	retrieved.IsArchived = true
	require.NoError(t, repo.UpdateProject(ctx, retrieved))

	updated, err := repo.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.ClientID)
	assert.Nil(t, updated.DefaultBillable)
	assert.True(t, updated.IsArchived)

	require.NoError(t, repo.DeleteProject(ctx, project.ID))
	_, err = repo.GetProject(ctx, project.ID)
	assert.Contains(t, err.Error(), "not found")
}

func TestListProjects_ArchivedAndFavorites(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	insertProject(t, repo, "Alpha", nil)
	favorite := insertProject(t, repo, "Zulu", nil)
	favorite.IsFavorite = true
	require.NoError(t, repo.UpdateProject(ctx, favorite))

	archived := insertProject(t, repo, "Old", nil)
	archived.IsArchived = true
	require.NoError(t, repo.UpdateProject(ctx, archived))

	active, err := repo.ListProjects(ctx, testWorkspace, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	// Favorites sort ahead of alphabetical order.
	assert.Equal(t, "Zulu", active[0].Name)
	assert.Equal(t, "Alpha", active[1].Name)

	all, err := repo.ListProjects(ctx, testWorkspace, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListProjectsForClient(t *testing.T) {
	repo := setupTestRepo(t)

	acme := insertClient(t, repo, "Acme")
	globex := insertClient(t, repo, "Globex")
	insertProject(t, repo, "Website", &acme.ID)
	insertProject(t, repo, "API", &acme.ID)
	insertProject(t, repo, "Migration", &globex.ID)

	projects, err := repo.ListProjectsForClient(context.Background(), acme.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "API", projects[0].Name)
	assert.Equal(t, "Website", projects[1].Name)
}

func TestDeleteClient_DetachesProjects(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	client := insertClient(t, repo, "Acme")
	project := insertProject(t, repo, "Website", &client.ID)

	require.NoError(t, repo.DeleteClient(ctx, client.ID))

	retrieved, err := repo.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, retrieved.ClientID)
}
