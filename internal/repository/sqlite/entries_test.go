package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeEntryCRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	override := "150.00"
	entry := &TimeEntry{
		ID:           newTestID(),
		WorkspaceID:  testWorkspace,
		Description:  "drafting proposal",
		StartTime:    start,
		Billable:     true,
		RateOverride: &override,
	}
	require.NoError(t, repo.CreateTimeEntry(ctx, entry))

	retrieved, err := repo.GetTimeEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "drafting proposal", retrieved.Description)
	assert.True(t, start.Equal(retrieved.StartTime))
	assert.Nil(t, retrieved.EndTime)
	assert.Nil(t, retrieved.DurationSeconds)
	assert.Zero(t, retrieved.PausedSeconds)
	require.NotNil(t, retrieved.RateOverride)
	assert.Equal(t, "150.00", *retrieved.RateOverride)

	end := start.Add(90 * time.Minute)
	duration := int64(5400)
	retrieved.EndTime = &end
	retrieved.DurationSeconds = &duration
	retrieved.RateOverride = nil
	require.NoError(t, repo.UpdateTimeEntry(ctx, retrieved))

	updated, err := repo.GetTimeEntry(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.EndTime)
	assert.True(t, end.Equal(*updated.EndTime))
	require.NotNil(t, updated.DurationSeconds)
	assert.Equal(t, int64(5400), *updated.DurationSeconds)
	assert.Nil(t, updated.RateOverride)

	require.NoError(t, repo.DeleteTimeEntry(ctx, entry.ID))
	_, err = repo.GetTimeEntry(ctx, entry.ID)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetOpenTimeEntry(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetOpenTimeEntry(ctx, testWorkspace)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	open := &TimeEntry{
		ID:          newTestID(),
		WorkspaceID: testWorkspace,
		Description: "running",
		StartTime:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Billable:    true,
	}
	require.NoError(t, repo.CreateTimeEntry(ctx, open))
	insertClosedEntry(t, repo, nil, nil, time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC), 600, true)

	retrieved, err := repo.GetOpenTimeEntry(ctx, testWorkspace)
	require.NoError(t, err)
	assert.Equal(t, open.ID, retrieved.ID)
}

func TestCreateTimeEntry_SecondOpenEntryRejected(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first := &TimeEntry{
		ID:          newTestID(),
		WorkspaceID: testWorkspace,
		StartTime:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Billable:    true,
	}
	require.NoError(t, repo.CreateTimeEntry(ctx, first))

	// The partial unique index rejects a second open entry outright.
	second := &TimeEntry{
		ID:          newTestID(),
		WorkspaceID: testWorkspace,
		StartTime:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Billable:    true,
	}
	err := repo.CreateTimeEntry(ctx, second)
	assert.Error(t, err)
}

func TestStartTimeEntry_ClosesOpenEntries(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	open := &TimeEntry{
		ID:          newTestID(),
		WorkspaceID: testWorkspace,
		Description: "first",
		StartTime:   start,
		Billable:    true,
	}
	require.NoError(t, repo.CreateTimeEntry(ctx, open))

	now := start.Add(30 * time.Minute)
	next := &TimeEntry{
		ID:          newTestID(),
		WorkspaceID: testWorkspace,
		Description: "second",
		StartTime:   now,
		Billable:    true,
	}
	err := repo.StartTimeEntry(ctx, next, func(e *TimeEntry) {
		end := now
		duration := int64(end.Sub(e.StartTime).Seconds())
		e.EndTime = &end
		e.DurationSeconds = &duration
	})
	require.NoError(t, err)

	closed, err := repo.GetTimeEntry(ctx, open.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.EndTime)
	require.NotNil(t, closed.DurationSeconds)
	assert.Equal(t, int64(1800), *closed.DurationSeconds)

	running, err := repo.GetOpenTimeEntry(ctx, testWorkspace)
	require.NoError(t, err)
	assert.Equal(t, next.ID, running.ID)
}

func TestStartTimeEntry_NoOpenEntry(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	entry := &TimeEntry{
		ID:          newTestID(),
		WorkspaceID: testWorkspace,
		Description: "fresh start",
		StartTime:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Billable:    true,
	}
	require.NoError(t, repo.StartTimeEntry(ctx, entry, func(e *TimeEntry) {
		t.Fatal("closeOpen must not be called when nothing is running")
	}))

	running, err := repo.GetOpenTimeEntry(ctx, testWorkspace)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, running.ID)
}

func TestSearchTimeEntries(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	acme := insertClient(t, repo, "Acme")
	globex := insertClient(t, repo, "Globex")
	website := insertProject(t, repo, "Website", &acme.ID)

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day3 := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	onProject := insertClosedEntry(t, repo, &website.ID, nil, day1, 3600, true)
	onClient := insertClosedEntry(t, repo, nil, &acme.ID, day2, 1800, true)
	other := insertClosedEntry(t, repo, nil, &globex.ID, day3, 900, true)
	other.Description = "globex review call"
	require.NoError(t, repo.UpdateTimeEntry(ctx, other))

	open := &TimeEntry{
		ID:          newTestID(),
		WorkspaceID: testWorkspace,
		Description: "still going",
		StartTime:   day3.Add(2 * time.Hour),
		Billable:    true,
	}
	require.NoError(t, repo.CreateTimeEntry(ctx, open))

	t.Run("should return all entries newest first", func(t *testing.T) {
		results, err := repo.SearchTimeEntries(ctx, SearchOptions{WorkspaceID: testWorkspace})
		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, open.ID, results[0].ID)
		assert.Equal(t, onProject.ID, results[3].ID)
	})

	t.Run("should filter by start time range", func(t *testing.T) {
		from := day2
		to := day2.Add(time.Hour)
		results, err := repo.SearchTimeEntries(ctx, SearchOptions{
			WorkspaceID: testWorkspace,
			StartTime:   &from,
			EndTime:     &to,
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, onClient.ID, results[0].ID)
	})

	t.Run("should filter by project", func(t *testing.T) {
		results, err := repo.SearchTimeEntries(ctx, SearchOptions{
			WorkspaceID: testWorkspace,
			ProjectID:   &website.ID,
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, onProject.ID, results[0].ID)
	})

	t.Run("should match client directly and through projects", func(t *testing.T) {
		results, err := repo.SearchTimeEntries(ctx, SearchOptions{
			WorkspaceID: testWorkspace,
			ClientID:    &acme.ID,
		})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("should filter by description substring", func(t *testing.T) {
		text := "review"
		results, err := repo.SearchTimeEntries(ctx, SearchOptions{
			WorkspaceID: testWorkspace,
			Description: &text,
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, other.ID, results[0].ID)
	})

	t.Run("should filter open and closed entries", func(t *testing.T) {
		openOnly, err := repo.SearchTimeEntries(ctx, SearchOptions{WorkspaceID: testWorkspace, OpenOnly: true})
		require.NoError(t, err)
		require.Len(t, openOnly, 1)
		assert.Equal(t, open.ID, openOnly[0].ID)

		closedOnly, err := repo.SearchTimeEntries(ctx, SearchOptions{WorkspaceID: testWorkspace, ClosedOnly: true})
		require.NoError(t, err)
		assert.Len(t, closedOnly, 3)
	})

	t.Run("should apply the limit after ordering", func(t *testing.T) {
		results, err := repo.SearchTimeEntries(ctx, SearchOptions{WorkspaceID: testWorkspace, Limit: 2})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, open.ID, results[0].ID)
		assert.Equal(t, other.ID, results[1].ID)
	})
}

func TestDeleteProject_DetachesEntries(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	project := insertProject(t, repo, "Website", nil)
	entry := insertClosedEntry(t, repo, &project.ID, nil, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), 600, true)

	require.NoError(t, repo.DeleteProject(ctx, project.ID))

	retrieved, err := repo.GetTimeEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.Nil(t, retrieved.ProjectID)
}
