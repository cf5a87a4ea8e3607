package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retainer-tracker/internal/repository/sqlite"
)

func TestClientMapper_RoundTrip(t *testing.T) {
	mapper := NewMapper()

	rate := decimal.RequireFromString("95.50")
	client := Client{
		ID:              "c1",
		WorkspaceID:     "w1",
		Name:            "Acme",
		Currency:        "EUR",
		Address:         "1 Main St",
		Color:           "#ff0000",
		DefaultRate:     &rate,
		DefaultBillable: true,
		BudgetLimit:     40,
	}

	dbClient := mapper.Client.ToDatabase(client)
	require.NotNil(t, dbClient.DefaultRate)
	assert.Equal(t, "95.5", *dbClient.DefaultRate)

	back := mapper.Client.FromDatabase(dbClient)
	require.NotNil(t, back.DefaultRate)
	assert.True(t, rate.Equal(*back.DefaultRate))
	assert.Equal(t, client.Name, back.Name)
	assert.Equal(t, client.BudgetLimit, back.BudgetLimit)
}

func TestClientMapper_NilRate(t *testing.T) {
	mapper := NewMapper()

	dbClient := mapper.Client.ToDatabase(Client{ID: "c1", Name: "Acme"})
	assert.Nil(t, dbClient.DefaultRate)

	back := mapper.Client.FromDatabase(dbClient)
	assert.Nil(t, back.DefaultRate)
}

func TestClientMapper_UnparseableRateTreatedAsAbsent(t *testing.T) {
	mapper := NewMapper()

	bad := "not-a-number"
	back := mapper.Client.FromDatabase(sqlite.Client{ID: "c1", Name: "Acme", DefaultRate: &bad})
	assert.Nil(t, back.DefaultRate)
}

func TestProjectMapper_RoundTrip(t *testing.T) {
	mapper := NewMapper()

	clientID := "c1"
	rate := decimal.RequireFromString("120")
	billable := false
	project := Project{
		ID:              "p1",
		WorkspaceID:     "w1",
		ClientID:        &clientID,
		Name:            "Website",
		BudgetLimit:     10,
		HourlyRate:      &rate,
		DefaultBillable: &billable,
		IsFavorite:      true,
		IsArchived:      true,
	}

	back := mapper.Project.FromDatabase(mapper.Project.ToDatabase(project))
	require.NotNil(t, back.ClientID)
	assert.Equal(t, clientID, *back.ClientID)
	require.NotNil(t, back.HourlyRate)
	assert.True(t, rate.Equal(*back.HourlyRate))
	require.NotNil(t, back.DefaultBillable)
	assert.False(t, *back.DefaultBillable)
	assert.True(t, back.IsFavorite)
	assert.True(t, back.IsArchived)
}

func TestTimeEntryMapper_RoundTrip(t *testing.T) {
	mapper := NewMapper()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	duration := int64(3600)
	override := decimal.RequireFromString("150.00")
	entry := TimeEntry{
		ID:              "e1",
		WorkspaceID:     "w1",
		Description:     "work",
		StartTime:       start,
		EndTime:         &end,
		PausedSeconds:   120,
		DurationSeconds: &duration,
		Billable:        true,
		RateOverride:    &override,
	}

	back := mapper.TimeEntry.FromDatabase(mapper.TimeEntry.ToDatabase(entry))
	assert.True(t, start.Equal(back.StartTime))
	require.NotNil(t, back.EndTime)
	assert.True(t, end.Equal(*back.EndTime))
	assert.Equal(t, int64(120), back.PausedSeconds)
	require.NotNil(t, back.DurationSeconds)
	assert.Equal(t, int64(3600), *back.DurationSeconds)
	require.NotNil(t, back.RateOverride)
	assert.True(t, override.Equal(*back.RateOverride))
}

func TestInvoiceBlockMapper_RoundTrip(t *testing.T) {
	mapper := NewMapper()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	block := InvoiceBlock{
		ID:                  "b1",
		ClientID:            "c1",
		HoursTarget:         40,
		HoursCarriedForward: 2.5,
		StartDate:           start,
		Status:              BlockActive,
		Notes:               "march",
	}

	dbBlock := mapper.InvoiceBlock.ToDatabase(block)
	assert.Equal(t, "ACTIVE", dbBlock.Status)

	back := mapper.InvoiceBlock.FromDatabase(dbBlock)
	assert.Equal(t, BlockActive, back.Status)
	assert.Equal(t, 42.5, back.HoursAvailable())
}

func TestMapper_FromDatabaseSlice(t *testing.T) {
	mapper := NewMapper()

	dbTags := []*sqlite.Tag{
		{ID: "t1", Name: "Priority", IsSystem: true},
		{ID: "t2", Name: "focus"},
	}

	tags := mapper.Tag.FromDatabaseSlice(dbTags)
	require.Len(t, tags, 2)
	assert.True(t, tags[0].IsSystem)
	assert.Equal(t, "focus", tags[1].Name)
}
