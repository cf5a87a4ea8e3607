package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"retainer-tracker/internal/errors"
	"retainer-tracker/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	t.Run("should surface validation field messages", func(t *testing.T) {
		ve := validation.NewValidationError()
		ve.AddRequiredError("name")

		err := eh.Handle("create client", ve)
		assert.Contains(t, err.Error(), "failed to create client")
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("should surface app error user messages", func(t *testing.T) {
		appErr := errors.NewStateConflictError("time entry is already stopped")

		err := eh.Handle("stop timer", appErr)
		assert.Contains(t, err.Error(), "failed to stop timer")
		assert.Contains(t, err.Error(), "already stopped")
	})

	t.Run("should hide database detail behind a generic message", func(t *testing.T) {
		dbErr := errors.NewDatabaseError("insert entry", fmt.Errorf("disk full"))

		err := eh.Handle("start timer", dbErr)
		assert.Contains(t, err.Error(), "database error occurred")
		assert.NotContains(t, err.Error(), "disk full")
	})

	t.Run("should wrap unknown errors", func(t *testing.T) {
		err := eh.Handle("do thing", fmt.Errorf("boom"))
		assert.Contains(t, err.Error(), "failed to do thing: boom")
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "2.50h", formatHours(2.5))
	assert.Equal(t, "150%", formatPercent(150))
	assert.Equal(t, "-", formatOptionalRate(nil))
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "Acme", orDash("Acme"))
}
