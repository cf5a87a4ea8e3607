package domain

import (
	"github.com/shopspring/decimal"
)

// Client represents a billable customer. A client owns projects, carries
// billing defaults (currency, rate, billable flag) and has at most one
// active invoice block at a time.
type Client struct {
	ID              string
	WorkspaceID     string
	Name            string
	Currency        string
	Address         string
	Color           string
	DefaultRate     *decimal.Decimal
	DefaultBillable bool
	BudgetLimit     float64 // hours, 0 = unlimited
}

// IsValid checks if the client has valid data.
func (c Client) IsValid() bool {
	return c.Name != "" && c.Currency != ""
}
