package validation

import (
	"regexp"
	"strings"
	"time"

	"retainer-tracker/internal/domain"
)

// Limits applied by the validators. Mirrors the bounds the UI enforces.
const (
	NameMaxLength        = 255
	NotesMaxLength       = 500
	TagNameMaxLength     = 50
	DescriptionMaxLength = 500
	HoursTargetMin       = 0.5
	HoursTargetMax       = 10000
)

// Validator provides common validation utilities
type Validator struct {
	currencyRegex *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		currencyRegex: regexp.MustCompile(`^[A-Z]{3}$`),
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidID checks if an identifier parses as a ULID
func (v *Validator) IsValidID(id string) bool {
	return domain.IsValidID(id)
}

// IsValidCurrency checks if a currency code is a three-letter ISO code
func (v *Validator) IsValidCurrency(currency string) bool {
	return v.currencyRegex.MatchString(currency)
}

// IsValidHoursTarget checks if an invoice block hours target is in range
func (v *Validator) IsValidHoursTarget(hours float64) bool {
	return hours >= HoursTargetMin && hours <= HoursTargetMax
}

// IsValidTimeRange checks if start time is before end time
func (v *Validator) IsValidTimeRange(startTime time.Time, endTime *time.Time) bool {
	if endTime == nil {
		return true // Open entry, no end time
	}
	return startTime.Before(*endTime)
}

// IsReasonableDate checks the date is neither zero nor absurdly far in the future
func (v *Validator) IsReasonableDate(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return t.Before(time.Now().Add(24 * time.Hour))
}
