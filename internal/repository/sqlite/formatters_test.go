package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "UTC time",
			input:    time.Date(2026, 3, 1, 10, 30, 45, 0, time.UTC),
			expected: "2026-03-01T10:30:45Z",
		},
		{
			name:     "normalizes zoned time to UTC",
			input:    time.Date(2026, 3, 1, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2026-03-01T19:30:00Z",
		},
		{
			name:     "drops sub-second precision",
			input:    time.Date(2026, 3, 1, 9, 15, 30, 123456789, time.UTC),
			expected: "2026-03-01T09:15:30Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	ts := time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-01T17:00:00Z", FormatTimePtrForDB(&ts))
}

func TestParseTimeFromDB(t *testing.T) {
	parsed, err := ParseTimeFromDB("2026-03-01T10:30:45Z")
	assert.NoError(t, err)
	assert.True(t, time.Date(2026, 3, 1, 10, 30, 45, 0, time.UTC).Equal(parsed))

	_, err = ParseTimeFromDB("2026-03-01 10:30:45")
	assert.Error(t, err)

	_, err = ParseTimeFromDB("")
	assert.Error(t, err)
}

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	original := time.Date(2026, 3, 1, 10, 30, 45, 0, time.FixedZone("CET", 3600))

	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))
	assert.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}

func TestNullableHelpers(t *testing.T) {
	assert.Nil(t, NullableString(nil))
	s := "value"
	assert.Equal(t, "value", NullableString(&s))

	assert.Nil(t, NullableBool(nil))
	b := true
	assert.Equal(t, true, NullableBool(&b))

	assert.Nil(t, NullableInt64(nil))
	i := int64(42)
	assert.Equal(t, int64(42), NullableInt64(&i))
}
