package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidator_IsNonEmptyString(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsNonEmptyString("client"))
	assert.True(t, v.IsNonEmptyString("  padded  "))
	assert.False(t, v.IsNonEmptyString(""))
	assert.False(t, v.IsNonEmptyString("   "))
	assert.False(t, v.IsNonEmptyString("\t\n"))
}

func TestValidator_IsValidStringLength(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidStringLength("abc", 1, 255))
	assert.True(t, v.IsValidStringLength(strings.Repeat("a", 255), 1, 255))
	assert.False(t, v.IsValidStringLength(strings.Repeat("a", 256), 1, 255))
	assert.False(t, v.IsValidStringLength("  ", 1, 255))
}

func TestValidator_IsValidID(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidID("01HQZX5J8N0000000000000000"))
	assert.False(t, v.IsValidID("123"))
	assert.False(t, v.IsValidID(""))
}

func TestValidator_IsValidCurrency(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidCurrency("EUR"))
	assert.True(t, v.IsValidCurrency("USD"))
	assert.False(t, v.IsValidCurrency("eur"))
	assert.False(t, v.IsValidCurrency("EURO"))
	assert.False(t, v.IsValidCurrency("E1R"))
	assert.False(t, v.IsValidCurrency(""))
}

func TestValidator_IsValidHoursTarget(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsValidHoursTarget(0.5))
	assert.True(t, v.IsValidHoursTarget(40))
	assert.True(t, v.IsValidHoursTarget(10000))
	assert.False(t, v.IsValidHoursTarget(0.25))
	assert.False(t, v.IsValidHoursTarget(0))
	assert.False(t, v.IsValidHoursTarget(-1))
	assert.False(t, v.IsValidHoursTarget(10001))
}

func TestValidator_IsValidTimeRange(t *testing.T) {
	v := NewValidator()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	after := start.Add(time.Hour)
	before := start.Add(-time.Hour)

	assert.True(t, v.IsValidTimeRange(start, nil))
	assert.True(t, v.IsValidTimeRange(start, &after))
	assert.False(t, v.IsValidTimeRange(start, &before))
	assert.False(t, v.IsValidTimeRange(start, &start))
}

func TestValidator_IsReasonableDate(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.IsReasonableDate(time.Now()))
	assert.True(t, v.IsReasonableDate(time.Now().Add(-24*365*time.Hour)))
	assert.False(t, v.IsReasonableDate(time.Time{}))
	assert.False(t, v.IsReasonableDate(time.Now().Add(48*time.Hour)))
}
