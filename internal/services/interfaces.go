package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"retainer-tracker/internal/domain"
)

// Clock supplies the current time. Production code uses time.Now; tests
// substitute a fixed clock so duration math is exact.
type Clock func() time.Time

// BlockWithHours is an invoice block with its derived consumption figures.
// Hours tracked and progress are recomputed from entry data on every read.
type BlockWithHours struct {
	Block           domain.InvoiceBlock
	HoursTracked    float64
	ProgressPercent float64
}

// BlockResetResult describes the outcome of resetting an invoice block.
type BlockResetResult struct {
	Completed domain.InvoiceBlock
	Overage   float64
	Next      *domain.InvoiceBlock // nil when no successor block was requested
}

// EntryAmount is a billed amount for a closed entry, tagged with the rate
// provenance and the currency it should be rendered in.
type EntryAmount struct {
	Amount   decimal.Decimal
	Rate     decimal.Decimal
	Source   RateSource
	Currency string
}

// ProjectReportRow is an aggregated duration for one project.
type ProjectReportRow struct {
	ProjectID   *string
	ProjectName string // "(no project)" when unassigned
	Seconds     int64
	Hours       float64
}

// ClientReportRow is an aggregated duration for one client.
type ClientReportRow struct {
	ClientID   *string
	ClientName string // "(no client)" when unattributable
	Seconds    int64
	Hours      float64
}

// DayReportRow is an aggregated duration for one calendar day.
type DayReportRow struct {
	Day     string
	Seconds int64
	Hours   float64
}

// Dashboard bundles the data the status view needs.
type Dashboard struct {
	ActiveEntry  *domain.TimeEntry // nil when no timer is running
	TodaySeconds int64
	TodayEntries int
}

// TimerService owns the start/pause/resume/stop lifecycle of time entries.
type TimerService interface {
	// Start closes any open entry and begins a new one. At most one open
	// entry exists per workspace after the call.
	Start(ctx context.Context, projectID *string, description string) (*domain.TimeEntry, error)
	// Pause holds the running clock. No-op on closed or already-paused entries.
	Pause(ctx context.Context, entryID string) (*domain.TimeEntry, error)
	// Resume folds the elapsed pause into paused seconds and releases the
	// clock. No-op on closed or non-paused entries.
	Resume(ctx context.Context, entryID string) (*domain.TimeEntry, error)
	// Stop closes the entry and fixes its stored duration. Stopping an
	// already-stopped entry is a state conflict.
	Stop(ctx context.Context, entryID string) (*domain.TimeEntry, error)
	// Active returns the currently open entry, or a not-found error.
	Active(ctx context.Context) (*domain.TimeEntry, error)
	// Log records a manual entry with explicit start and end times.
	Log(ctx context.Context, projectID *string, description string, start, end time.Time, billable bool) (*domain.TimeEntry, error)
}

// BillingService owns invoice block accounting and rate resolution.
type BillingService interface {
	CreateBlock(ctx context.Context, clientID string, hoursTarget float64, notes string) (*domain.InvoiceBlock, error)
	ResetBlock(ctx context.Context, blockID string, carryOverage bool, newTargetHours *float64) (*BlockResetResult, error)
	UpdateBlock(ctx context.Context, blockID string, hoursTarget *float64, notes *string) (*domain.InvoiceBlock, error)
	DeleteBlock(ctx context.Context, blockID string) error
	// ComputeBlockHours sums closed entry durations attributable to the
	// client within [start, end-or-now], in hours rounded to 2 decimals.
	// Single source of truth for hours tracked on active and completed blocks.
	ComputeBlockHours(ctx context.Context, clientID string, start time.Time, end *time.Time) (float64, error)
	ActiveBlock(ctx context.Context, clientID string) (*BlockWithHours, error)
	BlockHistory(ctx context.Context, clientID string) ([]*BlockWithHours, error)
	// AmountForEntry resolves the effective rate for a closed entry and
	// multiplies it by the entry's hours. Returns nil when no rate applies.
	AmountForEntry(ctx context.Context, entryID string) (*EntryAmount, error)
}

// ReportingService derives aggregate views over tracked time.
type ReportingService interface {
	ByProject(ctx context.Context, start, end time.Time) ([]*ProjectReportRow, error)
	ByClient(ctx context.Context, start, end time.Time) ([]*ClientReportRow, error)
	ByDay(ctx context.Context, start, end time.Time) ([]*DayReportRow, error)
	ProjectHoursUsed(ctx context.Context, projectID string) (float64, error)
	ClientHoursTracked(ctx context.Context, clientID string) (float64, error)
	GetDashboard(ctx context.Context) (*Dashboard, error)
}
