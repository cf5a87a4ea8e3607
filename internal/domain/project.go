package domain

import (
	"github.com/shopspring/decimal"
)

// BudgetStatus classifies consumption of a project's hour budget.
type BudgetStatus string

const (
	BudgetSafe    BudgetStatus = "Safe"
	BudgetWarning BudgetStatus = "Warning"
	BudgetDanger  BudgetStatus = "Danger"
)

// Project groups time entries, optionally under a client. DefaultBillable is
// tri-state: nil inherits the client default. Hours used is always derived
// from closed time entries, never stored.
type Project struct {
	ID              string
	WorkspaceID     string
	ClientID        *string
	Name            string
	Color           string
	BudgetLimit     float64 // hours, 0 = unlimited
	HourlyRate      *decimal.Decimal
	DefaultBillable *bool
	IsFavorite      bool
	IsArchived      bool
	Tags            []Tag
}

// IsValid checks if the project has valid data.
func (p Project) IsValid() bool {
	return p.Name != "" && p.BudgetLimit >= 0
}

// BudgetStatusFor classifies hoursUsed against the project budget.
// Unlimited budgets are always Safe.
func (p Project) BudgetStatusFor(hoursUsed float64) BudgetStatus {
	if p.BudgetLimit <= 0 {
		return BudgetSafe
	}
	ratio := hoursUsed / p.BudgetLimit
	switch {
	case ratio > 1:
		return BudgetDanger
	case ratio >= 0.75:
		return BudgetWarning
	default:
		return BudgetSafe
	}
}
