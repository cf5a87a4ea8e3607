package services

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"retainer-tracker/internal/domain"
	"retainer-tracker/internal/errors"
	"retainer-tracker/internal/repository/sqlite"
	"retainer-tracker/internal/validation"
)

// billingServiceImpl implements the BillingService interface
type billingServiceImpl struct {
	repo        sqlite.Repository
	workspaceID string
	mapper      *domain.Mapper
	validator   *validation.BlockValidator
	clock       Clock
}

// NewBillingService creates a new BillingService instance
func NewBillingService(repo sqlite.Repository, workspaceID string) BillingService {
	return NewBillingServiceWithClock(repo, workspaceID, time.Now)
}

// NewBillingServiceWithClock creates a BillingService with an injected clock
func NewBillingServiceWithClock(repo sqlite.Repository, workspaceID string, clock Clock) BillingService {
	return &billingServiceImpl{
		repo:        repo,
		workspaceID: workspaceID,
		mapper:      domain.NewMapper(),
		validator:   validation.NewBlockValidator(),
		clock:       clock,
	}
}

// roundHours rounds an hour figure to 2 decimals.
func roundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// CreateBlock creates a new active invoice block for a client. A client with
// an active block must reset it first.
func (b *billingServiceImpl) CreateBlock(ctx context.Context, clientID string, hoursTarget float64, notes string) (*domain.InvoiceBlock, error) {
	if err := b.validator.ValidateBlockForCreation(clientID, hoursTarget, notes); err != nil {
		return nil, errors.NewValidationError("invalid invoice block", err)
	}

	if _, err := b.repo.GetClient(ctx, clientID); err != nil {
		return nil, err
	}

	_, err := b.repo.GetActiveInvoiceBlock(ctx, clientID)
	if err == nil {
		return nil, errors.NewStateConflictError("client already has an active invoice block").
			WithContext("client_id", clientID)
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	dbBlock := &sqlite.InvoiceBlock{
		ID:          domain.NewID(),
		ClientID:    clientID,
		HoursTarget: hoursTarget,
		StartDate:   b.clock(),
		Status:      string(domain.BlockActive),
		Notes:       notes,
	}
	if err := b.repo.CreateInvoiceBlock(ctx, dbBlock); err != nil {
		return nil, err
	}

	block := b.mapper.InvoiceBlock.FromDatabase(*dbBlock)
	return &block, nil
}

// ComputeBlockHours sums stored durations of closed entries attributable to
// the client within [start, end], or [start, ∞) when end is nil. Seconds are
// converted to hours and rounded to 2 decimals.
func (b *billingServiceImpl) ComputeBlockHours(ctx context.Context, clientID string, start time.Time, end *time.Time) (float64, error) {
	opts := sqlite.AggregateOptions{
		WorkspaceID: b.workspaceID,
		ClientID:    &clientID,
		StartTime:   &start,
		EndTime:     end,
	}

	seconds, err := b.repo.SumDurations(ctx, opts)
	if err != nil {
		return 0, err
	}
	return roundHours(float64(seconds) / 3600), nil
}

// ResetBlock completes an active block and optionally spawns its successor.
// Overage beyond the available budget carries forward only when requested.
// Resetting a completed block is rejected; carry-forward never compounds
// through repeated resets of the same block.
func (b *billingServiceImpl) ResetBlock(ctx context.Context, blockID string, carryOverage bool, newTargetHours *float64) (*BlockResetResult, error) {
	if err := b.validator.ValidateBlockID(blockID); err != nil {
		return nil, errors.NewValidationError("invalid block ID", err)
	}
	if err := b.validator.ValidateResetTarget(newTargetHours); err != nil {
		return nil, errors.NewValidationError("invalid new target hours", err)
	}

	dbBlock, err := b.repo.GetInvoiceBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}
	block := b.mapper.InvoiceBlock.FromDatabase(*dbBlock)

	if !block.IsActive() {
		return nil, errors.NewStateConflictError("invoice block is not active").
			WithContext("block_id", blockID)
	}

	hoursTracked, err := b.ComputeBlockHours(ctx, block.ClientID, block.StartDate, nil)
	if err != nil {
		return nil, err
	}
	overage := block.Overage(hoursTracked)

	now := b.clock()
	block.Status = domain.BlockCompleted
	block.EndDate = &now

	var next *domain.InvoiceBlock
	if newTargetHours != nil && *newTargetHours > 0 {
		carried := 0.0
		if carryOverage {
			carried = overage
		}
		next = &domain.InvoiceBlock{
			ID:                  domain.NewID(),
			ClientID:            block.ClientID,
			HoursTarget:         *newTargetHours,
			HoursCarriedForward: carried,
			StartDate:           now,
			Status:              domain.BlockActive,
		}
	}

	completedDB := b.mapper.InvoiceBlock.ToDatabase(block)
	var nextDB *sqlite.InvoiceBlock
	if next != nil {
		db := b.mapper.InvoiceBlock.ToDatabase(*next)
		nextDB = &db
	}
	if err := b.repo.CompleteInvoiceBlock(ctx, &completedDB, nextDB); err != nil {
		return nil, err
	}

	return &BlockResetResult{
		Completed: block,
		Overage:   overage,
		Next:      next,
	}, nil
}

// UpdateBlock updates the target hours and/or notes of a block in place.
// Derived figures are recomputed at read time, so no side effects here.
func (b *billingServiceImpl) UpdateBlock(ctx context.Context, blockID string, hoursTarget *float64, notes *string) (*domain.InvoiceBlock, error) {
	if err := b.validator.ValidateBlockID(blockID); err != nil {
		return nil, errors.NewValidationError("invalid block ID", err)
	}
	if err := b.validator.ValidateBlockUpdate(hoursTarget, notes); err != nil {
		return nil, errors.NewValidationError("invalid block update", err)
	}

	dbBlock, err := b.repo.GetInvoiceBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}

	if hoursTarget != nil {
		dbBlock.HoursTarget = *hoursTarget
	}
	if notes != nil {
		dbBlock.Notes = *notes
	}
	if err := b.repo.UpdateInvoiceBlock(ctx, dbBlock); err != nil {
		return nil, err
	}

	block := b.mapper.InvoiceBlock.FromDatabase(*dbBlock)
	return &block, nil
}

// DeleteBlock deletes an invoice block.
func (b *billingServiceImpl) DeleteBlock(ctx context.Context, blockID string) error {
	if err := b.validator.ValidateBlockID(blockID); err != nil {
		return errors.NewValidationError("invalid block ID", err)
	}
	return b.repo.DeleteInvoiceBlock(ctx, blockID)
}

// ActiveBlock returns the client's active block with live consumption data.
func (b *billingServiceImpl) ActiveBlock(ctx context.Context, clientID string) (*BlockWithHours, error) {
	dbBlock, err := b.repo.GetActiveInvoiceBlock(ctx, clientID)
	if err != nil {
		return nil, err
	}
	block := b.mapper.InvoiceBlock.FromDatabase(*dbBlock)

	return b.withHours(ctx, block)
}

// BlockHistory returns all blocks for a client, newest first, each with its
// derived consumption figures.
func (b *billingServiceImpl) BlockHistory(ctx context.Context, clientID string) ([]*BlockWithHours, error) {
	dbBlocks, err := b.repo.ListInvoiceBlocks(ctx, clientID)
	if err != nil {
		return nil, err
	}

	results := make([]*BlockWithHours, 0, len(dbBlocks))
	for _, dbBlock := range dbBlocks {
		block := b.mapper.InvoiceBlock.FromDatabase(*dbBlock)
		withHours, err := b.withHours(ctx, block)
		if err != nil {
			return nil, err
		}
		results = append(results, withHours)
	}
	return results, nil
}

func (b *billingServiceImpl) withHours(ctx context.Context, block domain.InvoiceBlock) (*BlockWithHours, error) {
	hoursTracked, err := b.ComputeBlockHours(ctx, block.ClientID, block.StartDate, block.EndDate)
	if err != nil {
		return nil, err
	}
	return &BlockWithHours{
		Block:           block,
		HoursTracked:    hoursTracked,
		ProgressPercent: block.ProgressPercent(hoursTracked),
	}, nil
}

// AmountForEntry computes the billed amount of a closed entry from its
// effective rate. Returns nil when the entry is open, non-billable or no
// rate applies anywhere in the chain.
func (b *billingServiceImpl) AmountForEntry(ctx context.Context, entryID string) (*EntryAmount, error) {
	dbEntry, err := b.repo.GetTimeEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry := b.mapper.TimeEntry.FromDatabase(*dbEntry)

	if entry.IsOpen() || entry.DurationSeconds == nil || !entry.Billable {
		return nil, nil
	}

	var project *domain.Project
	if entry.ProjectID != nil {
		dbProject, err := b.repo.GetProject(ctx, *entry.ProjectID)
		if err != nil {
			return nil, err
		}
		p := b.mapper.Project.FromDatabase(*dbProject)
		project = &p
	}

	var client *domain.Client
	clientID := entry.ClientID
	if clientID == nil && project != nil {
		clientID = project.ClientID
	}
	if clientID != nil {
		dbClient, err := b.repo.GetClient(ctx, *clientID)
		if err != nil {
			return nil, err
		}
		c := b.mapper.Client.FromDatabase(*dbClient)
		client = &c
	}

	resolution := ResolveRate(&entry, project, client)
	if resolution.Source == RateSourceNone {
		return nil, nil
	}

	hours := decimal.NewFromInt(*entry.DurationSeconds).Div(decimal.NewFromInt(3600))
	currency := ""
	if client != nil {
		currency = client.Currency
	}

	return &EntryAmount{
		Amount:   resolution.Rate.Mul(hours).Round(2),
		Rate:     resolution.Rate,
		Source:   resolution.Source,
		Currency: currency,
	}, nil
}
