package validation

import (
	"time"
)

// TimeEntryValidator provides validation for TimeEntry-related operations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: NewValidator(),
	}
}

// ValidateEntryID validates a time entry identifier
func (tev *TimeEntryValidator) ValidateEntryID(id string) error {
	validationError := NewValidationError()

	if !tev.validator.IsValidID(id) {
		validationError.AddInvalidFormatError("entry_id", id, "ULID")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateForStart validates the inputs of a timer start
func (tev *TimeEntryValidator) ValidateForStart(projectID *string, description string) error {
	validationError := NewValidationError()

	if projectID != nil && !tev.validator.IsValidID(*projectID) {
		validationError.AddInvalidFormatError("project_id", *projectID, "ULID")
	}
	if len(description) > DescriptionMaxLength {
		validationError.AddInvalidLengthError("description", description, 0, DescriptionMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateManualEntry validates a manually logged entry with explicit times
func (tev *TimeEntryValidator) ValidateManualEntry(description string, startTime time.Time, endTime time.Time) error {
	validationError := NewValidationError()

	if len(description) > DescriptionMaxLength {
		validationError.AddInvalidLengthError("description", description, 0, DescriptionMaxLength)
	}
	if startTime.IsZero() {
		validationError.AddRequiredError("start_time")
	} else if !tev.validator.IsReasonableDate(startTime) {
		validationError.AddInvalidValueError("start_time", startTime, "must be within reasonable date range")
	}
	if endTime.IsZero() {
		validationError.AddRequiredError("end_time")
	} else if !tev.validator.IsValidTimeRange(startTime, &endTime) {
		validationError.AddInvalidRangeError("time_range", map[string]time.Time{
			"start": startTime,
			"end":   endTime,
		}, "end time must be after start time")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
