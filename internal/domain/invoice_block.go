package domain

import (
	"math"
	"time"
)

// BlockStatus is the lifecycle status of an invoice block.
type BlockStatus string

const (
	BlockActive    BlockStatus = "ACTIVE"
	BlockCompleted BlockStatus = "COMPLETED"
)

// InvoiceBlock is a billing period for a client with a target hour budget.
// A client has at most one active block; completed blocks form the billing
// history. Hours tracked and progress are always derived from entry data.
type InvoiceBlock struct {
	ID                  string
	ClientID            string
	HoursTarget         float64
	HoursCarriedForward float64
	StartDate           time.Time
	EndDate             *time.Time
	Status              BlockStatus
	Notes               string
}

// IsActive returns true if the block is still accumulating hours.
func (b InvoiceBlock) IsActive() bool {
	return b.Status == BlockActive
}

// HoursAvailable is the effective budget: target plus hours carried forward
// from the previous block.
func (b InvoiceBlock) HoursAvailable() float64 {
	return b.HoursTarget + b.HoursCarriedForward
}

// ProgressPercent computes consumption of the block budget for the given
// tracked hours. Returns 0 when the budget is 0.
func (b InvoiceBlock) ProgressPercent(hoursTracked float64) float64 {
	available := b.HoursAvailable()
	if available <= 0 {
		return 0
	}
	return hoursTracked / available * 100
}

// Overage is the number of tracked hours beyond the available budget,
// floored at 0.
func (b InvoiceBlock) Overage(hoursTracked float64) float64 {
	return math.Max(0, hoursTracked-b.HoursAvailable())
}

// IsValid checks if the invoice block has valid data.
func (b InvoiceBlock) IsValid() bool {
	if b.ClientID == "" || b.HoursTarget <= 0 || b.HoursCarriedForward < 0 {
		return false
	}
	if b.EndDate != nil && b.EndDate.Before(b.StartDate) {
		return false
	}
	return true
}
