package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanMultiple[T any](rows Rows, scanOne func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ScanWorkspace scans a single workspace from a database row
func ScanWorkspace(scanner Scanner) (*Workspace, error) {
	ws := &Workspace{}
	err := scanner.Scan(&ws.ID, &ws.Name, &ws.CreatedAt)
	if err != nil {
		return nil, err
	}
	return ws, nil
}

// ScanClient scans a single client from a database row
func ScanClient(scanner Scanner) (*Client, error) {
	client := &Client{}
	var defaultRate sql.NullString

	err := scanner.Scan(
		&client.ID,
		&client.WorkspaceID,
		&client.Name,
		&client.Currency,
		&client.Address,
		&client.Color,
		&defaultRate,
		&client.DefaultBillable,
		&client.BudgetLimit,
	)
	if err != nil {
		return nil, err
	}

	if defaultRate.Valid {
		client.DefaultRate = &defaultRate.String
	}

	return client, nil
}

// ScanClients scans multiple clients from database rows
func ScanClients(rows Rows) ([]*Client, error) {
	return scanMultiple(rows, ScanClient)
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var clientID, hourlyRate sql.NullString
	var defaultBillable sql.NullBool

	err := scanner.Scan(
		&project.ID,
		&project.WorkspaceID,
		&clientID,
		&project.Name,
		&project.Color,
		&project.BudgetLimit,
		&hourlyRate,
		&defaultBillable,
		&project.IsFavorite,
		&project.IsArchived,
	)
	if err != nil {
		return nil, err
	}

	if clientID.Valid {
		project.ClientID = &clientID.String
	}
	if hourlyRate.Valid {
		project.HourlyRate = &hourlyRate.String
	}
	if defaultBillable.Valid {
		project.DefaultBillable = &defaultBillable.Bool
	}

	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	return scanMultiple(rows, ScanProject)
}

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var projectID, clientID, rateOverride sql.NullString
	var endTime, pauseStart sql.NullTime
	var duration sql.NullInt64

	err := scanner.Scan(
		&entry.ID,
		&entry.WorkspaceID,
		&projectID,
		&clientID,
		&entry.Description,
		&entry.StartTime,
		&endTime,
		&pauseStart,
		&entry.PausedSeconds,
		&duration,
		&entry.Billable,
		&rateOverride,
	)
	if err != nil {
		return nil, err
	}

	if projectID.Valid {
		entry.ProjectID = &projectID.String
	}
	if clientID.Valid {
		entry.ClientID = &clientID.String
	}
	if endTime.Valid {
		entry.EndTime = &endTime.Time
	}
	if pauseStart.Valid {
		entry.PauseStart = &pauseStart.Time
	}
	if duration.Valid {
		entry.DurationSeconds = &duration.Int64
	}
	if rateOverride.Valid {
		entry.RateOverride = &rateOverride.String
	}

	return entry, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	return scanMultiple(rows, ScanTimeEntry)
}

// ScanInvoiceBlock scans a single invoice block from a database row
func ScanInvoiceBlock(scanner Scanner) (*InvoiceBlock, error) {
	block := &InvoiceBlock{}
	var endDate sql.NullTime

	err := scanner.Scan(
		&block.ID,
		&block.ClientID,
		&block.HoursTarget,
		&block.HoursCarriedForward,
		&block.StartDate,
		&endDate,
		&block.Status,
		&block.Notes,
	)
	if err != nil {
		return nil, err
	}

	if endDate.Valid {
		block.EndDate = &endDate.Time
	}

	return block, nil
}

// ScanInvoiceBlocks scans multiple invoice blocks from database rows
func ScanInvoiceBlocks(rows Rows) ([]*InvoiceBlock, error) {
	return scanMultiple(rows, ScanInvoiceBlock)
}

// ScanTag scans a single tag from a database row
func ScanTag(scanner Scanner) (*Tag, error) {
	tag := &Tag{}
	var color sql.NullString

	err := scanner.Scan(&tag.ID, &tag.WorkspaceID, &tag.Name, &color, &tag.IsSystem)
	if err != nil {
		return nil, err
	}

	if color.Valid {
		tag.Color = &color.String
	}

	return tag, nil
}

// ScanTags scans multiple tags from database rows
func ScanTags(rows Rows) ([]*Tag, error) {
	return scanMultiple(rows, ScanTag)
}
