package api

import (
	"context"
	"math"

	"retainer-tracker/internal/domain"
	"retainer-tracker/internal/errors"
	"retainer-tracker/internal/repository/sqlite"
)

// CreateProject creates a project, optionally under a client.
func (a *apiImpl) CreateProject(ctx context.Context, input ProjectInput) (*domain.Project, error) {
	if err := a.projectValidator.ValidateProjectForCreation(input.Name, input.ClientID, input.BudgetLimit); err != nil {
		return nil, errors.NewValidationError("invalid project", err)
	}

	if input.ClientID != nil {
		if _, err := a.repo.GetClient(ctx, *input.ClientID); err != nil {
			return nil, err
		}
	}

	project := domain.Project{
		ID:              domain.NewID(),
		WorkspaceID:     a.workspaceID,
		ClientID:        input.ClientID,
		Name:            input.Name,
		Color:           input.Color,
		BudgetLimit:     input.BudgetLimit,
		HourlyRate:      input.HourlyRate,
		DefaultBillable: input.DefaultBillable,
		IsFavorite:      input.IsFavorite,
	}

	dbProject := a.mapper.Project.ToDatabase(project)
	if err := a.repo.CreateProject(ctx, &dbProject); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProject retrieves a project by ID.
func (a *apiImpl) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	if err := a.projectValidator.ValidateProjectID(id); err != nil {
		return nil, errors.NewValidationError("invalid project ID", err)
	}

	dbProject, err := a.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project := a.mapper.Project.FromDatabase(*dbProject)
	return &project, nil
}

// ListProjects retrieves workspace projects, favorites first. Archived
// projects are hidden unless asked for.
func (a *apiImpl) ListProjects(ctx context.Context, includeArchived bool) ([]domain.Project, error) {
	dbProjects, err := a.repo.ListProjects(ctx, a.workspaceID, includeArchived)
	if err != nil {
		return nil, err
	}
	return a.mapper.Project.FromDatabaseSlice(dbProjects), nil
}

// UpdateProject applies a partial update to a project.
func (a *apiImpl) UpdateProject(ctx context.Context, id string, update ProjectUpdate) (*domain.Project, error) {
	if err := a.projectValidator.ValidateProjectID(id); err != nil {
		return nil, errors.NewValidationError("invalid project ID", err)
	}

	dbProject, err := a.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	project := a.mapper.Project.FromDatabase(*dbProject)

	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.ClearClient {
		project.ClientID = nil
	} else if update.ClientID != nil {
		if _, err := a.repo.GetClient(ctx, *update.ClientID); err != nil {
			return nil, err
		}
		project.ClientID = update.ClientID
	}
	if update.Color != nil {
		project.Color = *update.Color
	}
	if update.BudgetLimit != nil {
		project.BudgetLimit = *update.BudgetLimit
	}
	if update.ClearRate {
		project.HourlyRate = nil
	} else if update.HourlyRate != nil {
		project.HourlyRate = update.HourlyRate
	}
	if update.DefaultBillable != nil {
		project.DefaultBillable = update.DefaultBillable
	}
	if update.IsFavorite != nil {
		project.IsFavorite = *update.IsFavorite
	}

	if err := a.projectValidator.ValidateProjectForCreation(project.Name, project.ClientID, project.BudgetLimit); err != nil {
		return nil, errors.NewValidationError("invalid project", err)
	}

	updated := a.mapper.Project.ToDatabase(project)
	if err := a.repo.UpdateProject(ctx, &updated); err != nil {
		return nil, err
	}
	return &project, nil
}

// ArchiveProject sets or clears the archived flag. Archived projects keep
// their entries but disappear from default listings.
func (a *apiImpl) ArchiveProject(ctx context.Context, id string, archived bool) (*domain.Project, error) {
	if err := a.projectValidator.ValidateProjectID(id); err != nil {
		return nil, errors.NewValidationError("invalid project ID", err)
	}

	dbProject, err := a.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	dbProject.IsArchived = archived
	if err := a.repo.UpdateProject(ctx, dbProject); err != nil {
		return nil, err
	}

	project := a.mapper.Project.FromDatabase(*dbProject)
	return &project, nil
}

// DeleteProject deletes a project.
func (a *apiImpl) DeleteProject(ctx context.Context, id string) error {
	if err := a.projectValidator.ValidateProjectID(id); err != nil {
		return errors.NewValidationError("invalid project ID", err)
	}
	return a.repo.DeleteProject(ctx, id)
}

// GetProjectOverview assembles the project detail view with derived budget
// consumption.
func (a *apiImpl) GetProjectOverview(ctx context.Context, id string) (*ProjectOverview, error) {
	project, err := a.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	seconds, err := a.repo.SumDurations(ctx, sqlite.AggregateOptions{
		WorkspaceID: a.workspaceID,
		ProjectID:   &id,
	})
	if err != nil {
		return nil, err
	}
	hoursUsed := math.Round(float64(seconds)/3600*100) / 100

	return &ProjectOverview{
		Project:      *project,
		HoursUsed:    hoursUsed,
		BudgetStatus: project.BudgetStatusFor(hoursUsed),
	}, nil
}
