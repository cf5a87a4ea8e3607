package api

import (
	"context"
	"math"

	"retainer-tracker/internal/domain"
	"retainer-tracker/internal/errors"
	"retainer-tracker/internal/repository/sqlite"
)

// CreateClient creates a client with billing defaults.
func (a *apiImpl) CreateClient(ctx context.Context, input ClientInput) (*domain.Client, error) {
	if err := a.clientValidator.ValidateClientForCreation(input.Name, input.Currency, input.BudgetLimit); err != nil {
		return nil, errors.NewValidationError("invalid client", err)
	}

	client := domain.Client{
		ID:              domain.NewID(),
		WorkspaceID:     a.workspaceID,
		Name:            input.Name,
		Currency:        input.Currency,
		Address:         input.Address,
		Color:           input.Color,
		DefaultRate:     input.DefaultRate,
		DefaultBillable: input.DefaultBillable,
		BudgetLimit:     input.BudgetLimit,
	}

	dbClient := a.mapper.Client.ToDatabase(client)
	if err := a.repo.CreateClient(ctx, &dbClient); err != nil {
		return nil, err
	}
	return &client, nil
}

// GetClient retrieves a client by ID.
func (a *apiImpl) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	if err := a.clientValidator.ValidateClientID(id); err != nil {
		return nil, errors.NewValidationError("invalid client ID", err)
	}

	dbClient, err := a.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	client := a.mapper.Client.FromDatabase(*dbClient)
	return &client, nil
}

// ListClients retrieves all clients in the workspace, sorted by name.
func (a *apiImpl) ListClients(ctx context.Context) ([]domain.Client, error) {
	dbClients, err := a.repo.ListClients(ctx, a.workspaceID)
	if err != nil {
		return nil, err
	}
	return a.mapper.Client.FromDatabaseSlice(dbClients), nil
}

// UpdateClient applies a partial update to a client.
func (a *apiImpl) UpdateClient(ctx context.Context, id string, update ClientUpdate) (*domain.Client, error) {
	if err := a.clientValidator.ValidateClientID(id); err != nil {
		return nil, errors.NewValidationError("invalid client ID", err)
	}

	dbClient, err := a.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	client := a.mapper.Client.FromDatabase(*dbClient)

	if update.Name != nil {
		client.Name = *update.Name
	}
	if update.Currency != nil {
		client.Currency = *update.Currency
	}
	if update.Address != nil {
		client.Address = *update.Address
	}
	if update.Color != nil {
		client.Color = *update.Color
	}
	if update.ClearRate {
		client.DefaultRate = nil
	} else if update.DefaultRate != nil {
		client.DefaultRate = update.DefaultRate
	}
	if update.DefaultBillable != nil {
		client.DefaultBillable = *update.DefaultBillable
	}
	if update.BudgetLimit != nil {
		client.BudgetLimit = *update.BudgetLimit
	}

	if err := a.clientValidator.ValidateClientForCreation(client.Name, client.Currency, client.BudgetLimit); err != nil {
		return nil, errors.NewValidationError("invalid client", err)
	}

	updated := a.mapper.Client.ToDatabase(client)
	if err := a.repo.UpdateClient(ctx, &updated); err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteClient deletes a client. Owned projects and blocks go with it via
// schema cascade.
func (a *apiImpl) DeleteClient(ctx context.Context, id string) error {
	if err := a.clientValidator.ValidateClientID(id); err != nil {
		return errors.NewValidationError("invalid client ID", err)
	}
	return a.repo.DeleteClient(ctx, id)
}

// GetClientOverview assembles the client detail view: the client, its active
// retainer block, if any, and total tracked hours against its budget.
func (a *apiImpl) GetClientOverview(ctx context.Context, id string) (*ClientOverview, error) {
	client, err := a.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	overview := &ClientOverview{Client: *client}

	activeBlock, err := a.billing.ActiveBlock(ctx, id)
	if err == nil {
		overview.ActiveBlock = activeBlock
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	seconds, err := a.repo.SumDurations(ctx, sqlite.AggregateOptions{
		WorkspaceID: a.workspaceID,
		ClientID:    &id,
	})
	if err != nil {
		return nil, err
	}
	overview.HoursTracked = math.Round(float64(seconds)/3600*100) / 100

	overview.BudgetStatus = clientBudgetStatus(client.BudgetLimit, overview.HoursTracked)
	return overview, nil
}

// clientBudgetStatus mirrors the project budget thresholds for client budgets.
func clientBudgetStatus(limit, used float64) domain.BudgetStatus {
	p := domain.Project{BudgetLimit: limit}
	return p.BudgetStatusFor(used)
}
