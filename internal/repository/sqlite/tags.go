package sqlite

import (
	"context"
)

// CreateTag creates a new tag
func (r *SQLiteRepository) CreateTag(ctx context.Context, tag *Tag) error {
	query := `
	INSERT INTO tags (id, workspace_id, name, color, is_system)
	VALUES (?, ?, ?, ?, ?)`

	return ExecuteInsert(ctx, r.db, query,
		tag.ID, tag.WorkspaceID, tag.Name, NullableString(tag.Color), tag.IsSystem)
}

// GetTag retrieves a tag by ID
func (r *SQLiteRepository) GetTag(ctx context.Context, id string) (*Tag, error) {
	query := `SELECT id, workspace_id, name, color, is_system FROM tags WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTag, "tag", id, id)
}

// GetTagByName retrieves a tag by its workspace-unique name
func (r *SQLiteRepository) GetTagByName(ctx context.Context, workspaceID string, name string) (*Tag, error) {
	query := `SELECT id, workspace_id, name, color, is_system FROM tags WHERE workspace_id = ? AND name = ?`
	return QuerySingle(ctx, r.db, query, ScanTag, "tag", name, workspaceID, name)
}

// ListTags retrieves all tags in a workspace
func (r *SQLiteRepository) ListTags(ctx context.Context, workspaceID string) ([]*Tag, error) {
	query := `SELECT id, workspace_id, name, color, is_system FROM tags WHERE workspace_id = ? ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, ScanTags, "tags", workspaceID)
}

// UpdateTag updates an existing tag
func (r *SQLiteRepository) UpdateTag(ctx context.Context, tag *Tag) error {
	query := `UPDATE tags SET name = ?, color = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "tag", tag.ID, tag.Name, NullableString(tag.Color), tag.ID)
}

// DeleteTag deletes a tag by ID. Assignment rows go with it via ON DELETE CASCADE.
func (r *SQLiteRepository) DeleteTag(ctx context.Context, id string) error {
	query := `DELETE FROM tags WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "tag", id, id)
}

// TagsForEntry retrieves the tags assigned to a time entry
func (r *SQLiteRepository) TagsForEntry(ctx context.Context, entryID string) ([]*Tag, error) {
	query := `
	SELECT tags.id, tags.workspace_id, tags.name, tags.color, tags.is_system
	FROM tags
	JOIN entry_tags ON entry_tags.tag_id = tags.id
	WHERE entry_tags.entry_id = ?
	ORDER BY tags.name ASC`

	return QueryMultiple(ctx, r.db, query, ScanTags, "entry tags", entryID)
}

// SetEntryTags replaces the tag assignments of a time entry
func (r *SQLiteRepository) SetEntryTags(ctx context.Context, entryID string, tagIDs []string) error {
	return r.replaceAssignments(ctx, "entry_tags", "entry_id", entryID, tagIDs)
}

// TagsForProject retrieves the tags assigned to a project
func (r *SQLiteRepository) TagsForProject(ctx context.Context, projectID string) ([]*Tag, error) {
	query := `
	SELECT tags.id, tags.workspace_id, tags.name, tags.color, tags.is_system
	FROM tags
	JOIN project_tags ON project_tags.tag_id = tags.id
	WHERE project_tags.project_id = ?
	ORDER BY tags.name ASC`

	return QueryMultiple(ctx, r.db, query, ScanTags, "project tags", projectID)
}

// SetProjectTags replaces the tag assignments of a project
func (r *SQLiteRepository) SetProjectTags(ctx context.Context, projectID string, tagIDs []string) error {
	return r.replaceAssignments(ctx, "project_tags", "project_id", projectID, tagIDs)
}

func (r *SQLiteRepository) replaceAssignments(ctx context.Context, table string, ownerColumn string, ownerID string, tagIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	deleteQuery := "DELETE FROM " + table + " WHERE " + ownerColumn + " = ?"
	if _, err := tx.ExecContext(ctx, deleteQuery, ownerID); err != nil {
		return HandleDatabaseError("clear tag assignments", err)
	}

	insertQuery := "INSERT INTO " + table + " (" + ownerColumn + ", tag_id) VALUES (?, ?)"
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, insertQuery, ownerID, tagID); err != nil {
			return HandleDatabaseError("assign tag", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}
