package sqlite

import (
	"time"
)

// FormatTimeForDB formats a time.Time value as an RFC3339 UTC string.
// Normalizing to UTC keeps lexicographic comparison of stored values
// consistent with chronological order.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time value as RFC3339 UTC, returning nil
// if the pointer is nil.
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database.
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// NullableString converts a *string into a driver value, mapping nil to NULL.
func NullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// NullableBool converts a *bool into a driver value, mapping nil to NULL.
func NullableBool(b *bool) interface{} {
	if b == nil {
		return nil
	}
	return *b
}

// NullableInt64 converts a *int64 into a driver value, mapping nil to NULL.
func NullableInt64(i *int64) interface{} {
	if i == nil {
		return nil
	}
	return *i
}
