package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// SumDurations returns the total stored duration in seconds of closed entries
// matching the options. Entries attributable to a client are those tagged with
// the client directly or logged against a project the client owns.
func (r *SQLiteRepository) SumDurations(ctx context.Context, opts AggregateOptions) (int64, error) {
	conditions := []string{
		"workspace_id = ?",
		"end_time IS NOT NULL",
		"duration_seconds IS NOT NULL",
	}
	args := []interface{}{opts.WorkspaceID}

	if opts.ClientID != nil {
		conditions = append(conditions, "(client_id = ? OR project_id IN (SELECT id FROM projects WHERE client_id = ?))")
		args = append(args, *opts.ClientID, *opts.ClientID)
	}
	if opts.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.StartTime != nil {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, FormatTimeForDB(*opts.StartTime))
	}
	if opts.EndTime != nil {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, FormatTimeForDB(*opts.EndTime))
	}
	if opts.BillableOnly {
		conditions = append(conditions, "billable = 1")
	}

	query := `
	SELECT COALESCE(SUM(duration_seconds), 0)
	FROM time_entries
	WHERE ` + strings.Join(conditions, " AND ")

	return QueryScalar[int64](ctx, r.db, query, "sum durations", args...)
}

// SumDurationsByProject aggregates closed entry durations per project over a
// start-time range. Entries without a project land in the nil bucket.
func (r *SQLiteRepository) SumDurationsByProject(ctx context.Context, workspaceID string, start, end time.Time) ([]*ProjectDuration, error) {
	query := `
	SELECT project_id, COALESCE(SUM(duration_seconds), 0)
	FROM time_entries
	WHERE workspace_id = ? AND end_time IS NOT NULL AND duration_seconds IS NOT NULL
	  AND start_time >= ? AND start_time <= ?
	GROUP BY project_id
	ORDER BY 2 DESC`

	rows, err := r.db.QueryContext(ctx, query, workspaceID, FormatTimeForDB(start), FormatTimeForDB(end))
	if err != nil {
		return nil, HandleDatabaseError("aggregate by project", err)
	}
	defer rows.Close()

	var results []*ProjectDuration
	for rows.Next() {
		var projectID sql.NullString
		item := &ProjectDuration{}
		if err := rows.Scan(&projectID, &item.DurationSeconds); err != nil {
			return nil, HandleDatabaseError("scan project aggregate", err)
		}
		if projectID.Valid {
			item.ProjectID = &projectID.String
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, HandleDatabaseError("iterate project aggregates", err)
	}
	return results, nil
}

// SumDurationsByClient aggregates closed entry durations per client over a
// start-time range, resolving project-owned entries to the owning client.
func (r *SQLiteRepository) SumDurationsByClient(ctx context.Context, workspaceID string, start, end time.Time) ([]*ClientDuration, error) {
	query := `
	SELECT COALESCE(time_entries.client_id, projects.client_id) AS effective_client,
	       COALESCE(SUM(duration_seconds), 0)
	FROM time_entries
	LEFT JOIN projects ON projects.id = time_entries.project_id
	WHERE time_entries.workspace_id = ? AND end_time IS NOT NULL AND duration_seconds IS NOT NULL
	  AND start_time >= ? AND start_time <= ?
	GROUP BY effective_client
	ORDER BY 2 DESC`

	rows, err := r.db.QueryContext(ctx, query, workspaceID, FormatTimeForDB(start), FormatTimeForDB(end))
	if err != nil {
		return nil, HandleDatabaseError("aggregate by client", err)
	}
	defer rows.Close()

	var results []*ClientDuration
	for rows.Next() {
		var clientID sql.NullString
		item := &ClientDuration{}
		if err := rows.Scan(&clientID, &item.DurationSeconds); err != nil {
			return nil, HandleDatabaseError("scan client aggregate", err)
		}
		if clientID.Valid {
			item.ClientID = &clientID.String
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, HandleDatabaseError("iterate client aggregates", err)
	}
	return results, nil
}

// SumDurationsByDay aggregates closed entry durations per UTC calendar day.
// Start times are stored as RFC3339 UTC, so the date is the first ten bytes.
func (r *SQLiteRepository) SumDurationsByDay(ctx context.Context, workspaceID string, start, end time.Time) ([]*DayDuration, error) {
	query := `
	SELECT substr(start_time, 1, 10) AS day, COALESCE(SUM(duration_seconds), 0)
	FROM time_entries
	WHERE workspace_id = ? AND end_time IS NOT NULL AND duration_seconds IS NOT NULL
	  AND start_time >= ? AND start_time <= ?
	GROUP BY day
	ORDER BY day ASC`

	rows, err := r.db.QueryContext(ctx, query, workspaceID, FormatTimeForDB(start), FormatTimeForDB(end))
	if err != nil {
		return nil, HandleDatabaseError("aggregate by day", err)
	}
	defer rows.Close()

	var results []*DayDuration
	for rows.Next() {
		item := &DayDuration{}
		if err := rows.Scan(&item.Day, &item.DurationSeconds); err != nil {
			return nil, HandleDatabaseError("scan day aggregate", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, HandleDatabaseError("iterate day aggregates", err)
	}
	return results, nil
}
