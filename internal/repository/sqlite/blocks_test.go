package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertActiveBlock(t *testing.T, repo *SQLiteRepository, clientID string, target float64, start time.Time) *InvoiceBlock {
	t.Helper()

	block := &InvoiceBlock{
		ID:          newTestID(),
		ClientID:    clientID,
		HoursTarget: target,
		StartDate:   start,
		Status:      "ACTIVE",
	}
	require.NoError(t, repo.CreateInvoiceBlock(context.Background(), block))
	return block
}

func TestInvoiceBlockCRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	client := insertClient(t, repo, "Acme")
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	block := &InvoiceBlock{
		ID:                  newTestID(),
		ClientID:            client.ID,
		HoursTarget:         40,
		HoursCarriedForward: 2.5,
		StartDate:           start,
		Status:              "ACTIVE",
		Notes:               "march retainer",
	}
	require.NoError(t, repo.CreateInvoiceBlock(ctx, block))

	retrieved, err := repo.GetInvoiceBlock(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, retrieved.HoursTarget)
	assert.Equal(t, 2.5, retrieved.HoursCarriedForward)
	assert.True(t, start.Equal(retrieved.StartDate))
	assert.Nil(t, retrieved.EndDate)
	assert.Equal(t, "ACTIVE", retrieved.Status)
	assert.Equal(t, "march retainer", retrieved.Notes)

	retrieved.HoursTarget = 45
	retrieved.Notes = "extended"
	require.NoError(t, repo.UpdateInvoiceBlock(ctx, retrieved))

	updated, err := repo.GetInvoiceBlock(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, 45.0, updated.HoursTarget)
	assert.Equal(t, "extended", updated.Notes)

	require.NoError(t, repo.DeleteInvoiceBlock(ctx, block.ID))
	_, err = repo.GetInvoiceBlock(ctx, block.ID)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetActiveInvoiceBlock(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	client := insertClient(t, repo, "Acme")

	_, err := repo.GetActiveInvoiceBlock(ctx, client.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	// A completed block does not count as active.
	end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	completed := &InvoiceBlock{
		ID:          newTestID(),
		ClientID:    client.ID,
		HoursTarget: 40,
		StartDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     &end,
		Status:      "COMPLETED",
	}
	require.NoError(t, repo.CreateInvoiceBlock(ctx, completed))

	_, err = repo.GetActiveInvoiceBlock(ctx, client.ID)
	assert.Error(t, err)

	active := insertActiveBlock(t, repo, client.ID, 40, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	retrieved, err := repo.GetActiveInvoiceBlock(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, retrieved.ID)
}

func TestCreateInvoiceBlock_SecondActiveRejected(t *testing.T) {
	repo := setupTestRepo(t)

	client := insertClient(t, repo, "Acme")
	insertActiveBlock(t, repo, client.ID, 40, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	// The partial unique index allows one ACTIVE block per client.
	second := &InvoiceBlock{
		ID:          newTestID(),
		ClientID:    client.ID,
		HoursTarget: 20,
		StartDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:      "ACTIVE",
	}
	err := repo.CreateInvoiceBlock(context.Background(), second)
	assert.Error(t, err)

	// Another client is unaffected.
	other := insertClient(t, repo, "Globex")
	insertActiveBlock(t, repo, other.ID, 20, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
}

func TestListInvoiceBlocks_NewestFirst(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	client := insertClient(t, repo, "Acme")
	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, month := range []time.Time{jan, feb} {
		end := month.AddDate(0, 1, 0)
		block := &InvoiceBlock{
			ID:          newTestID(),
			ClientID:    client.ID,
			HoursTarget: 40,
			StartDate:   month,
			EndDate:     &end,
			Status:      "COMPLETED",
		}
		require.NoError(t, repo.CreateInvoiceBlock(ctx, block))
	}
	current := insertActiveBlock(t, repo, client.ID, 40, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	blocks, err := repo.ListInvoiceBlocks(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, current.ID, blocks[0].ID)
	assert.True(t, jan.Equal(blocks[2].StartDate))
}

func TestCompleteInvoiceBlock_WithSuccessor(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	client := insertClient(t, repo, "Acme")
	block := insertActiveBlock(t, repo, client.ID, 40, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	resetTime := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	block.Status = "COMPLETED"
	block.EndDate = &resetTime

	next := &InvoiceBlock{
		ID:                  newTestID(),
		ClientID:            client.ID,
		HoursTarget:         40,
		HoursCarriedForward: 3,
		StartDate:           resetTime,
		Status:              "ACTIVE",
	}
	require.NoError(t, repo.CompleteInvoiceBlock(ctx, block, next))

	done, err := repo.GetInvoiceBlock(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", done.Status)
	require.NotNil(t, done.EndDate)
	assert.True(t, resetTime.Equal(*done.EndDate))

	active, err := repo.GetActiveInvoiceBlock(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, next.ID, active.ID)
	assert.Equal(t, 3.0, active.HoursCarriedForward)
}

func TestCompleteInvoiceBlock_WithoutSuccessor(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	client := insertClient(t, repo, "Acme")
	block := insertActiveBlock(t, repo, client.ID, 40, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	resetTime := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	block.Status = "COMPLETED"
	block.EndDate = &resetTime
	require.NoError(t, repo.CompleteInvoiceBlock(ctx, block, nil))

	_, err := repo.GetActiveInvoiceBlock(ctx, client.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCompleteInvoiceBlock_RollsBackOnConflict(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	client := insertClient(t, repo, "Acme")
	block := insertActiveBlock(t, repo, client.ID, 40, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	resetTime := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	block.Status = "COMPLETED"
	block.EndDate = &resetTime

	// Reusing the completed block's ID for the successor violates the primary
	// key, so the whole transaction must roll back.
	next := &InvoiceBlock{
		ID:          block.ID,
		ClientID:    client.ID,
		HoursTarget: 40,
		StartDate:   resetTime,
		Status:      "ACTIVE",
	}
	err := repo.CompleteInvoiceBlock(ctx, block, next)
	require.Error(t, err)

	unchanged, err := repo.GetInvoiceBlock(ctx, block.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", unchanged.Status)
	assert.Nil(t, unchanged.EndDate)
}

func TestDeleteClient_CascadesBlocks(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	client := insertClient(t, repo, "Acme")
	block := insertActiveBlock(t, repo, client.ID, 40, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, repo.DeleteClient(ctx, client.ID))

	_, err := repo.GetInvoiceBlock(ctx, block.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
