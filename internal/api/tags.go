package api

import (
	"context"

	"retainer-tracker/internal/domain"
	"retainer-tracker/internal/errors"
	"retainer-tracker/internal/repository/sqlite"
)

// systemTagNames are seeded once per workspace and protected from deletion.
var systemTagNames = []string{"Priority", "In Progress", "Completed", "Review"}

// CreateTag creates a user tag. Tag names are unique per workspace.
func (a *apiImpl) CreateTag(ctx context.Context, name string, color *string) (*domain.Tag, error) {
	if err := a.tagValidator.ValidateTagName(name); err != nil {
		return nil, errors.NewValidationError("invalid tag name", err)
	}

	if _, err := a.repo.GetTagByName(ctx, a.workspaceID, name); err == nil {
		return nil, errors.NewStateConflictError("tag already exists").
			WithContext("name", name)
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	tag := domain.Tag{
		ID:          domain.NewID(),
		WorkspaceID: a.workspaceID,
		Name:        name,
		Color:       color,
	}
	dbTag := a.mapper.Tag.ToDatabase(tag)
	if err := a.repo.CreateTag(ctx, &dbTag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTags retrieves all tags in the workspace.
func (a *apiImpl) ListTags(ctx context.Context) ([]domain.Tag, error) {
	dbTags, err := a.repo.ListTags(ctx, a.workspaceID)
	if err != nil {
		return nil, err
	}
	return a.mapper.Tag.FromDatabaseSlice(dbTags), nil
}

// RenameTag renames a user tag. System tags keep their names.
func (a *apiImpl) RenameTag(ctx context.Context, id string, newName string) (*domain.Tag, error) {
	if err := a.tagValidator.ValidateTagID(id); err != nil {
		return nil, errors.NewValidationError("invalid tag ID", err)
	}
	if err := a.tagValidator.ValidateTagName(newName); err != nil {
		return nil, errors.NewValidationError("invalid tag name", err)
	}

	dbTag, err := a.repo.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if dbTag.IsSystem {
		return nil, errors.NewStateConflictError("system tags cannot be renamed").
			WithContext("tag_id", id)
	}

	dbTag.Name = newName
	if err := a.repo.UpdateTag(ctx, dbTag); err != nil {
		return nil, err
	}

	tag := a.mapper.Tag.FromDatabase(*dbTag)
	return &tag, nil
}

// DeleteTag deletes a user tag and its assignments. System tags are protected.
func (a *apiImpl) DeleteTag(ctx context.Context, id string) error {
	if err := a.tagValidator.ValidateTagID(id); err != nil {
		return errors.NewValidationError("invalid tag ID", err)
	}

	dbTag, err := a.repo.GetTag(ctx, id)
	if err != nil {
		return err
	}
	if dbTag.IsSystem {
		return errors.NewStateConflictError("system tags cannot be deleted").
			WithContext("tag_id", id)
	}

	return a.repo.DeleteTag(ctx, id)
}

// SeedSystemTags creates the built-in tags missing from the workspace. Runs
// at startup; existing tags are left alone.
func (a *apiImpl) SeedSystemTags(ctx context.Context) error {
	for _, name := range systemTagNames {
		_, err := a.repo.GetTagByName(ctx, a.workspaceID, name)
		if err == nil {
			continue
		}
		if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return err
		}

		dbTag := &sqlite.Tag{
			ID:          domain.NewID(),
			WorkspaceID: a.workspaceID,
			Name:        name,
			IsSystem:    true,
		}
		if err := a.repo.CreateTag(ctx, dbTag); err != nil {
			return err
		}
	}
	return nil
}

// SetEntryTags replaces an entry's tag set, resolving names to tags and
// creating missing user tags on the fly.
func (a *apiImpl) SetEntryTags(ctx context.Context, entryID string, tagNames []string) ([]domain.Tag, error) {
	if err := a.entryValidator.ValidateEntryID(entryID); err != nil {
		return nil, errors.NewValidationError("invalid entry ID", err)
	}
	if _, err := a.repo.GetTimeEntry(ctx, entryID); err != nil {
		return nil, err
	}

	tags, err := a.resolveTagNames(ctx, tagNames)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	if err := a.repo.SetEntryTags(ctx, entryID, ids); err != nil {
		return nil, err
	}
	return tags, nil
}

// SetProjectTags replaces a project's tag set, resolving names to tags and
// creating missing user tags on the fly.
func (a *apiImpl) SetProjectTags(ctx context.Context, projectID string, tagNames []string) ([]domain.Tag, error) {
	if err := a.projectValidator.ValidateProjectID(projectID); err != nil {
		return nil, errors.NewValidationError("invalid project ID", err)
	}
	if _, err := a.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	tags, err := a.resolveTagNames(ctx, tagNames)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	if err := a.repo.SetProjectTags(ctx, projectID, ids); err != nil {
		return nil, err
	}
	return tags, nil
}

func (a *apiImpl) resolveTagNames(ctx context.Context, names []string) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		if err := a.tagValidator.ValidateTagName(name); err != nil {
			return nil, errors.NewValidationError("invalid tag name", err)
		}

		dbTag, err := a.repo.GetTagByName(ctx, a.workspaceID, name)
		if err == nil {
			tags = append(tags, a.mapper.Tag.FromDatabase(*dbTag))
			continue
		}
		if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, err
		}

		created, err := a.CreateTag(ctx, name, nil)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *created)
	}
	return tags, nil
}
