package sqlite

import "time"

// Workspace scopes all other rows.
type Workspace struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Client represents a billable customer row.
type Client struct {
	ID              string
	WorkspaceID     string
	Name            string
	Currency        string
	Address         string
	Color           string
	DefaultRate     *string // decimal stored as TEXT
	DefaultBillable bool
	BudgetLimit     float64
}

// Project represents a project row. DefaultBillable is nullable to express
// "inherit from client".
type Project struct {
	ID              string
	WorkspaceID     string
	ClientID        *string
	Name            string
	Color           string
	BudgetLimit     float64
	HourlyRate      *string // decimal stored as TEXT
	DefaultBillable *bool
	IsFavorite      bool
	IsArchived      bool
}

// TimeEntry represents a single time tracking row. EndTime, PauseStart,
// DurationSeconds and RateOverride are pointers to allow NULL values.
type TimeEntry struct {
	ID              string
	WorkspaceID     string
	ProjectID       *string
	ClientID        *string
	Description     string
	StartTime       time.Time
	EndTime         *time.Time
	PauseStart      *time.Time
	PausedSeconds   int64
	DurationSeconds *int64
	Billable        bool
	RateOverride    *string // decimal stored as TEXT
}

// InvoiceBlock represents a billing period row for a client.
type InvoiceBlock struct {
	ID                  string
	ClientID            string
	HoursTarget         float64
	HoursCarriedForward float64
	StartDate           time.Time
	EndDate             *time.Time
	Status              string
	Notes               string
}

// Tag represents a tag row. System tags are seeded and protected.
type Tag struct {
	ID          string
	WorkspaceID string
	Name        string
	Color       *string
	IsSystem    bool
}
