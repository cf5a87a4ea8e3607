package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"retainer-tracker/internal/domain"
	"retainer-tracker/internal/repository/sqlite"
)

const testWorkspaceID = "01HQZX5J8N0000000000000000"

func setupRepository(t *testing.T) sqlite.Repository {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureWorkspace(context.Background(), testWorkspaceID, "test workspace")
	require.NoError(t, err)

	return repo
}

// fixedClock returns a Clock reading from *now, so tests can advance time
// deterministically by reassigning the pointed-to value.
func fixedClock(now *time.Time) Clock {
	return func() time.Time { return *now }
}

func createTestClient(t *testing.T, repo sqlite.Repository, name string, defaultRate *decimal.Decimal) *sqlite.Client {
	var rate *string
	if defaultRate != nil {
		s := defaultRate.String()
		rate = &s
	}
	client := &sqlite.Client{
		ID:              domain.NewID(),
		WorkspaceID:     testWorkspaceID,
		Name:            name,
		Currency:        "EUR",
		DefaultRate:     rate,
		DefaultBillable: true,
	}
	require.NoError(t, repo.CreateClient(context.Background(), client))
	return client
}

func createTestProject(t *testing.T, repo sqlite.Repository, name string, clientID *string, hourlyRate *decimal.Decimal) *sqlite.Project {
	var rate *string
	if hourlyRate != nil {
		s := hourlyRate.String()
		rate = &s
	}
	project := &sqlite.Project{
		ID:          domain.NewID(),
		WorkspaceID: testWorkspaceID,
		ClientID:    clientID,
		Name:        name,
		HourlyRate:  rate,
	}
	require.NoError(t, repo.CreateProject(context.Background(), project))
	return project
}

// createClosedEntry inserts a finished entry with a stored duration, the shape
// every aggregate and block computation reads.
func createClosedEntry(t *testing.T, repo sqlite.Repository, projectID, clientID *string, start time.Time, durationSeconds int64, billable bool) *sqlite.TimeEntry {
	end := start.Add(time.Duration(durationSeconds) * time.Second)
	entry := &sqlite.TimeEntry{
		ID:              domain.NewID(),
		WorkspaceID:     testWorkspaceID,
		ProjectID:       projectID,
		ClientID:        clientID,
		Description:     "test entry",
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: &durationSeconds,
		Billable:        billable,
	}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), entry))
	return entry
}

func strPtr(s string) *string       { return &s }
func float64Ptr(f float64) *float64 { return &f }
func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
