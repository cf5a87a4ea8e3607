package sqlite

import (
	"context"
	"database/sql"
	"time"

	"retainer-tracker/internal/errors"
	"retainer-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SearchOptions contains all possible time entry search parameters
type SearchOptions struct {
	WorkspaceID string
	StartTime   *time.Time
	EndTime     *time.Time
	ProjectID   *string
	ClientID    *string
	Description *string
	OpenOnly    bool
	ClosedOnly  bool
	Limit       int
}

// AggregateOptions filters duration aggregation. A ClientID matches entries
// tagged with the client directly or entries on a project owned by the client.
type AggregateOptions struct {
	WorkspaceID  string
	ClientID     *string
	ProjectID    *string
	StartTime    *time.Time
	EndTime      *time.Time
	BillableOnly bool
}

// ProjectDuration is an aggregated duration bucketed by project.
type ProjectDuration struct {
	ProjectID       *string
	DurationSeconds int64
}

// ClientDuration is an aggregated duration bucketed by client.
type ClientDuration struct {
	ClientID        *string
	DurationSeconds int64
}

// DayDuration is an aggregated duration bucketed by calendar day (UTC).
type DayDuration struct {
	Day             string // YYYY-MM-DD
	DurationSeconds int64
}

// Repository defines the interface for database operations
type Repository interface {
	// Workspace
	EnsureWorkspace(ctx context.Context, id string, name string) error
	GetWorkspace(ctx context.Context, id string) (*Workspace, error)

	// Clients
	CreateClient(ctx context.Context, client *Client) error
	GetClient(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context, workspaceID string) ([]*Client, error)
	UpdateClient(ctx context.Context, client *Client) error
	DeleteClient(ctx context.Context, id string) error

	// Projects
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context, workspaceID string, includeArchived bool) ([]*Project, error)
	ListProjectsForClient(ctx context.Context, clientID string) ([]*Project, error)
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id string) error

	// Time entries
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id string) (*TimeEntry, error)
	GetOpenTimeEntry(ctx context.Context, workspaceID string) (*TimeEntry, error)
	SearchTimeEntries(ctx context.Context, opts SearchOptions) ([]*TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id string) error
	// StartTimeEntry atomically closes every open entry in the workspace and
	// creates the new one. closeOpen receives each open entry and must set its
	// end time, paused seconds and duration before it is persisted.
	StartTimeEntry(ctx context.Context, entry *TimeEntry, closeOpen func(*TimeEntry)) error

	// Aggregates
	SumDurations(ctx context.Context, opts AggregateOptions) (int64, error)
	SumDurationsByProject(ctx context.Context, workspaceID string, start, end time.Time) ([]*ProjectDuration, error)
	SumDurationsByClient(ctx context.Context, workspaceID string, start, end time.Time) ([]*ClientDuration, error)
	SumDurationsByDay(ctx context.Context, workspaceID string, start, end time.Time) ([]*DayDuration, error)

	// Invoice blocks
	CreateInvoiceBlock(ctx context.Context, block *InvoiceBlock) error
	GetInvoiceBlock(ctx context.Context, id string) (*InvoiceBlock, error)
	GetActiveInvoiceBlock(ctx context.Context, clientID string) (*InvoiceBlock, error)
	ListInvoiceBlocks(ctx context.Context, clientID string) ([]*InvoiceBlock, error)
	UpdateInvoiceBlock(ctx context.Context, block *InvoiceBlock) error
	DeleteInvoiceBlock(ctx context.Context, id string) error
	// CompleteInvoiceBlock atomically marks completed as done and, when next
	// is non-nil, creates the successor block carrying forward overage hours.
	CompleteInvoiceBlock(ctx context.Context, completed *InvoiceBlock, next *InvoiceBlock) error

	// Tags
	CreateTag(ctx context.Context, tag *Tag) error
	GetTag(ctx context.Context, id string) (*Tag, error)
	GetTagByName(ctx context.Context, workspaceID string, name string) (*Tag, error)
	ListTags(ctx context.Context, workspaceID string) ([]*Tag, error)
	UpdateTag(ctx context.Context, tag *Tag) error
	DeleteTag(ctx context.Context, id string) error
	TagsForEntry(ctx context.Context, entryID string) ([]*Tag, error)
	SetEntryTags(ctx context.Context, entryID string, tagIDs []string) error
	TagsForProject(ctx context.Context, projectID string) ([]*Tag, error)
	SetProjectTags(ctx context.Context, projectID string, tagIDs []string) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// A single connection keeps the pragma in force for every statement and
	// sidesteps SQLite writer contention.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("enable foreign keys", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// EnsureWorkspace creates the workspace row if it does not exist yet.
// Workspace identity is configuration, so this runs once at startup.
func (r *SQLiteRepository) EnsureWorkspace(ctx context.Context, id string, name string) error {
	query := `
	INSERT INTO workspaces (id, name, created_at)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO NOTHING`

	return ExecuteInsert(ctx, r.db, query, id, name, FormatTimeForDB(time.Now()))
}

// GetWorkspace retrieves a workspace by ID
func (r *SQLiteRepository) GetWorkspace(ctx context.Context, id string) (*Workspace, error) {
	query := `SELECT id, name, created_at FROM workspaces WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanWorkspace, "workspace", id, id)
}

// CreateClient creates a new client
func (r *SQLiteRepository) CreateClient(ctx context.Context, client *Client) error {
	query := `
	INSERT INTO clients (id, workspace_id, name, currency, address, color, default_rate, default_billable, budget_limit)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return ExecuteInsert(ctx, r.db, query,
		client.ID, client.WorkspaceID, client.Name, client.Currency, client.Address,
		client.Color, NullableString(client.DefaultRate), client.DefaultBillable, client.BudgetLimit)
}

// GetClient retrieves a client by ID
func (r *SQLiteRepository) GetClient(ctx context.Context, id string) (*Client, error) {
	query := `
	SELECT id, workspace_id, name, currency, address, color, default_rate, default_billable, budget_limit
	FROM clients
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanClient, "client", id, id)
}

// ListClients retrieves all clients in a workspace
func (r *SQLiteRepository) ListClients(ctx context.Context, workspaceID string) ([]*Client, error) {
	query := `
	SELECT id, workspace_id, name, currency, address, color, default_rate, default_billable, budget_limit
	FROM clients
	WHERE workspace_id = ?
	ORDER BY name ASC`

	return QueryMultiple(ctx, r.db, query, ScanClients, "clients", workspaceID)
}

// UpdateClient updates an existing client
func (r *SQLiteRepository) UpdateClient(ctx context.Context, client *Client) error {
	query := `
	UPDATE clients
	SET name = ?, currency = ?, address = ?, color = ?, default_rate = ?, default_billable = ?, budget_limit = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "client", client.ID,
		client.Name, client.Currency, client.Address, client.Color,
		NullableString(client.DefaultRate), client.DefaultBillable, client.BudgetLimit, client.ID)
}

// DeleteClient deletes a client by ID
func (r *SQLiteRepository) DeleteClient(ctx context.Context, id string) error {
	query := `DELETE FROM clients WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "client", id, id)
}

// CreateProject creates a new project
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	query := `
	INSERT INTO projects (id, workspace_id, client_id, name, color, budget_limit, hourly_rate, default_billable, is_favorite, is_archived)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return ExecuteInsert(ctx, r.db, query,
		project.ID, project.WorkspaceID, NullableString(project.ClientID), project.Name,
		project.Color, project.BudgetLimit, NullableString(project.HourlyRate),
		NullableBool(project.DefaultBillable), project.IsFavorite, project.IsArchived)
}

// GetProject retrieves a project by ID
func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*Project, error) {
	query := `
	SELECT id, workspace_id, client_id, name, color, budget_limit, hourly_rate, default_billable, is_favorite, is_archived
	FROM projects
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanProject, "project", id, id)
}

// ListProjects retrieves all projects in a workspace, favorites first
func (r *SQLiteRepository) ListProjects(ctx context.Context, workspaceID string, includeArchived bool) ([]*Project, error) {
	query := `
	SELECT id, workspace_id, client_id, name, color, budget_limit, hourly_rate, default_billable, is_favorite, is_archived
	FROM projects
	WHERE workspace_id = ?`
	if !includeArchived {
		query += " AND is_archived = 0"
	}
	query += " ORDER BY is_favorite DESC, name ASC"

	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects", workspaceID)
}

// ListProjectsForClient retrieves all projects owned by a client
func (r *SQLiteRepository) ListProjectsForClient(ctx context.Context, clientID string) ([]*Project, error) {
	query := `
	SELECT id, workspace_id, client_id, name, color, budget_limit, hourly_rate, default_billable, is_favorite, is_archived
	FROM projects
	WHERE client_id = ?
	ORDER BY name ASC`

	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects", clientID)
}

// UpdateProject updates an existing project
func (r *SQLiteRepository) UpdateProject(ctx context.Context, project *Project) error {
	query := `
	UPDATE projects
	SET client_id = ?, name = ?, color = ?, budget_limit = ?, hourly_rate = ?, default_billable = ?, is_favorite = ?, is_archived = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "project", project.ID,
		NullableString(project.ClientID), project.Name, project.Color, project.BudgetLimit,
		NullableString(project.HourlyRate), NullableBool(project.DefaultBillable),
		project.IsFavorite, project.IsArchived, project.ID)
}

// DeleteProject deletes a project by ID
func (r *SQLiteRepository) DeleteProject(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "project", id, id)
}
