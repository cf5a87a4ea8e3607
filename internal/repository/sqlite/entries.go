package sqlite

import (
	"context"
	"strings"
)

const timeEntryColumns = `id, workspace_id, project_id, client_id, description, start_time, end_time, pause_start, paused_seconds, duration_seconds, billable, rate_override`

// CreateTimeEntry creates a new time entry
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	INSERT INTO time_entries (` + timeEntryColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return ExecuteInsert(ctx, r.db, query,
		entry.ID, entry.WorkspaceID, NullableString(entry.ProjectID), NullableString(entry.ClientID),
		entry.Description, FormatTimeForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime),
		FormatTimePtrForDB(entry.PauseStart), entry.PausedSeconds,
		NullableInt64(entry.DurationSeconds), entry.Billable, NullableString(entry.RateOverride))
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", id, id)
}

// GetOpenTimeEntry retrieves the single open entry for a workspace, if any.
// Returns a not-found error when no timer is running.
func (r *SQLiteRepository) GetOpenTimeEntry(ctx context.Context, workspaceID string) (*TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries
	WHERE workspace_id = ? AND end_time IS NULL`

	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "open time entry", workspaceID, workspaceID)
}

// UpdateTimeEntry updates an existing time entry
func (r *SQLiteRepository) UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	UPDATE time_entries
	SET project_id = ?, client_id = ?, description = ?, start_time = ?, end_time = ?,
	    pause_start = ?, paused_seconds = ?, duration_seconds = ?, billable = ?, rate_override = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", entry.ID,
		NullableString(entry.ProjectID), NullableString(entry.ClientID), entry.Description,
		FormatTimeForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime),
		FormatTimePtrForDB(entry.PauseStart), entry.PausedSeconds,
		NullableInt64(entry.DurationSeconds), entry.Billable, NullableString(entry.RateOverride), entry.ID)
}

// DeleteTimeEntry deletes a time entry by ID
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id string) error {
	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", id, id)
}

// StartTimeEntry closes every open entry and creates the new one inside a
// single transaction. Together with the partial unique index on open entries
// this keeps the "one open timer per workspace" invariant a hard guarantee.
func (r *SQLiteRepository) StartTimeEntry(ctx context.Context, entry *TimeEntry, closeOpen func(*TimeEntry)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries
	WHERE workspace_id = ? AND end_time IS NULL`

	openEntries, err := QueryMultiple(ctx, tx, query, ScanTimeEntries, "open time entries", entry.WorkspaceID)
	if err != nil {
		return err
	}

	for _, open := range openEntries {
		closeOpen(open)
		updateQuery := `
		UPDATE time_entries
		SET end_time = ?, pause_start = ?, paused_seconds = ?, duration_seconds = ?
		WHERE id = ?`
		if err := ExecuteWithRowsAffected(ctx, tx, updateQuery, "time entry", open.ID,
			FormatTimePtrForDB(open.EndTime), FormatTimePtrForDB(open.PauseStart),
			open.PausedSeconds, NullableInt64(open.DurationSeconds), open.ID); err != nil {
			return err
		}
	}

	insertQuery := `
	INSERT INTO time_entries (` + timeEntryColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := ExecuteInsert(ctx, tx, insertQuery,
		entry.ID, entry.WorkspaceID, NullableString(entry.ProjectID), NullableString(entry.ClientID),
		entry.Description, FormatTimeForDB(entry.StartTime), FormatTimePtrForDB(entry.EndTime),
		FormatTimePtrForDB(entry.PauseStart), entry.PausedSeconds,
		NullableInt64(entry.DurationSeconds), entry.Billable, NullableString(entry.RateOverride)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

// SearchTimeEntries searches for time entries based on the provided options
func (r *SQLiteRepository) SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error) {
	conditions := []string{"workspace_id = ?"}
	args := []interface{}{opts.WorkspaceID}

	if opts.StartTime != nil {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, FormatTimeForDB(*opts.StartTime))
	}
	if opts.EndTime != nil {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, FormatTimeForDB(*opts.EndTime))
	}
	if opts.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.ClientID != nil {
		conditions = append(conditions, "(client_id = ? OR project_id IN (SELECT id FROM projects WHERE client_id = ?))")
		args = append(args, *opts.ClientID, *opts.ClientID)
	}
	if opts.Description != nil && *opts.Description != "" {
		conditions = append(conditions, "description LIKE ?")
		args = append(args, "%"+*opts.Description+"%")
	}
	if opts.OpenOnly {
		conditions = append(conditions, "end_time IS NULL")
	}
	if opts.ClosedOnly {
		conditions = append(conditions, "end_time IS NOT NULL")
	}

	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries
	WHERE ` + strings.Join(conditions, " AND ") + `
	ORDER BY start_time DESC`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries", args...)
}
