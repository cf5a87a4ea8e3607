package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidationError(t *testing.T) {
	cause := fmt.Errorf("field missing")
	err := NewValidationError("invalid client", cause)

	assert.True(t, err.IsType(ErrorTypeValidation))
	assert.Equal(t, "VALIDATION_FAILED", err.Code)
	assert.Contains(t, err.Error(), "invalid client")
	assert.Contains(t, err.Error(), "field missing")
	assert.Equal(t, cause, err.Unwrap())
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("time entry", "01ARZ3NDEKTSV4RRFFQ69G5FAV")

	assert.True(t, err.IsType(ErrorTypeNotFound))
	assert.Contains(t, err.Message, "time entry not found")

	resource, ok := err.GetContext("resource")
	assert.True(t, ok)
	assert.Equal(t, "time entry", resource)
}

func TestNewStateConflictError(t *testing.T) {
	err := NewStateConflictError("time entry is already stopped")

	assert.True(t, err.IsType(ErrorTypeStateConflict))
	assert.Equal(t, "STATE_CONFLICT", err.Code)
	assert.Equal(t, "time entry is already stopped", GetUserMessage(err))
	assert.False(t, ShouldLogError(err))
}

func TestNewDatabaseError(t *testing.T) {
	cause := fmt.Errorf("disk I/O error")
	err := NewDatabaseError("create invoice block", cause)

	assert.True(t, err.IsType(ErrorTypeDatabase))
	assert.True(t, ShouldLogError(err))
	assert.Equal(t, "A database error occurred. Please try again.", GetUserMessage(err))
}

func TestIsErrorType(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		errorType ErrorType
		expected  bool
	}{
		{
			name:      "matching state conflict",
			err:       NewStateConflictError("already has an active invoice block"),
			errorType: ErrorTypeStateConflict,
			expected:  true,
		},
		{
			name:      "non-matching type",
			err:       NewNotFoundError("client", "abc"),
			errorType: ErrorTypeDatabase,
			expected:  false,
		},
		{
			name:      "plain error",
			err:       fmt.Errorf("boom"),
			errorType: ErrorTypeValidation,
			expected:  false,
		},
		{
			name:      "wrapped app error",
			err:       fmt.Errorf("outer: %w", NewValidationError("bad hours target", nil)),
			errorType: ErrorTypeValidation,
			expected:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsErrorType(tt.err, tt.errorType))
		})
	}
}

func TestGetUserMessage_PlainError(t *testing.T) {
	err := fmt.Errorf("plain failure")
	assert.Equal(t, "plain failure", GetUserMessage(err))
}

func TestWithContext(t *testing.T) {
	err := NewStateConflictError("invoice block is not active").
		WithContext("block_id", "01ARZ3NDEKTSV4RRFFQ69G5FAV")

	value, ok := err.GetContext("block_id")
	assert.True(t, ok)
	assert.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", value)

	_, ok = err.GetContext("missing")
	assert.False(t, ok)
}
