package api

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"retainer-tracker/internal/domain"
	"retainer-tracker/internal/repository/sqlite"
	"retainer-tracker/internal/services"
	"retainer-tracker/internal/validation"
)

// ClientInput carries the writable fields of a client.
type ClientInput struct {
	Name            string
	Currency        string
	Address         string
	Color           string
	DefaultRate     *decimal.Decimal
	DefaultBillable bool
	BudgetLimit     float64
}

// ClientUpdate carries partial client changes; nil fields are left untouched.
type ClientUpdate struct {
	Name            *string
	Currency        *string
	Address         *string
	Color           *string
	DefaultRate     *decimal.Decimal
	ClearRate       bool
	DefaultBillable *bool
	BudgetLimit     *float64
}

// ClientOverview is a client with its live retainer and tracking state.
type ClientOverview struct {
	Client       domain.Client
	ActiveBlock  *services.BlockWithHours // nil when no block is active
	HoursTracked float64                  // all-time closed hours
	BudgetStatus domain.BudgetStatus
}

// ProjectInput carries the writable fields of a project.
type ProjectInput struct {
	Name            string
	ClientID        *string
	Color           string
	BudgetLimit     float64
	HourlyRate      *decimal.Decimal
	DefaultBillable *bool
	IsFavorite      bool
}

// ProjectUpdate carries partial project changes; nil fields are left untouched.
type ProjectUpdate struct {
	Name            *string
	ClientID        *string
	ClearClient     bool
	Color           *string
	BudgetLimit     *float64
	HourlyRate      *decimal.Decimal
	ClearRate       bool
	DefaultBillable *bool
	IsFavorite      *bool
}

// ProjectOverview is a project with its derived budget consumption.
type ProjectOverview struct {
	Project      domain.Project
	HoursUsed    float64
	BudgetStatus domain.BudgetStatus
}

// EntryUpdate carries partial time entry changes; nil fields are left untouched.
type EntryUpdate struct {
	Description   *string
	ProjectID     *string
	ClearProject  bool
	Billable      *bool
	RateOverride  *decimal.Decimal
	ClearOverride bool
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	Start     *time.Time
	End       *time.Time
	ProjectID *string
	ClientID  *string
	Text      *string
	Limit     int
}

// EntryWithDetails is a time entry enriched with display context: resolved
// names, tags and the billed amount when a rate applies.
type EntryWithDetails struct {
	Entry       domain.TimeEntry
	ProjectName string
	ClientName  string
	Tags        []domain.Tag
	Amount      *services.EntryAmount
}

// API is the workflow surface the command layer talks to. It owns the CRUD
// orchestration around clients, projects, tags and entries; the timer and
// billing lifecycles live in their services.
type API interface {
	// Clients
	CreateClient(ctx context.Context, input ClientInput) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	UpdateClient(ctx context.Context, id string, update ClientUpdate) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
	GetClientOverview(ctx context.Context, id string) (*ClientOverview, error)

	// Projects
	CreateProject(ctx context.Context, input ProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context, includeArchived bool) ([]domain.Project, error)
	UpdateProject(ctx context.Context, id string, update ProjectUpdate) (*domain.Project, error)
	ArchiveProject(ctx context.Context, id string, archived bool) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
	GetProjectOverview(ctx context.Context, id string) (*ProjectOverview, error)

	// Tags
	CreateTag(ctx context.Context, name string, color *string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
	RenameTag(ctx context.Context, id string, newName string) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	SeedSystemTags(ctx context.Context) error
	SetEntryTags(ctx context.Context, entryID string, tagNames []string) ([]domain.Tag, error)
	SetProjectTags(ctx context.Context, projectID string, tagNames []string) ([]domain.Tag, error)

	// Entries
	ListEntries(ctx context.Context, filter EntryFilter) ([]*EntryWithDetails, error)
	UpdateEntry(ctx context.Context, id string, update EntryUpdate) (*domain.TimeEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	ExportEntriesCSV(ctx context.Context, w io.Writer, filter EntryFilter) error
}

// apiImpl implements the API interface
type apiImpl struct {
	repo             sqlite.Repository
	workspaceID      string
	billing          services.BillingService
	mapper           *domain.Mapper
	clientValidator  *validation.ClientValidator
	projectValidator *validation.ProjectValidator
	entryValidator   *validation.TimeEntryValidator
	tagValidator     *validation.TagValidator
}

// New creates a new API instance bound to a workspace.
func New(repo sqlite.Repository, workspaceID string, billing services.BillingService) API {
	return &apiImpl{
		repo:             repo,
		workspaceID:      workspaceID,
		billing:          billing,
		mapper:           domain.NewMapper(),
		clientValidator:  validation.NewClientValidator(),
		projectValidator: validation.NewProjectValidator(),
		entryValidator:   validation.NewTimeEntryValidator(),
		tagValidator:     validation.NewTagValidator(),
	}
}
