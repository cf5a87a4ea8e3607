package validation

// ProjectValidator provides validation for Project-related operations
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{
		validator: NewValidator(),
	}
}

// ValidateProjectID validates a project identifier
func (pv *ProjectValidator) ValidateProjectID(id string) error {
	validationError := NewValidationError()

	if !pv.validator.IsValidID(id) {
		validationError.AddInvalidFormatError("project_id", id, "ULID")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateProjectForCreation validates project fields before creation
func (pv *ProjectValidator) ValidateProjectForCreation(name string, clientID *string, budgetLimit float64) error {
	validationError := NewValidationError()

	if !pv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("name")
	} else if !pv.validator.IsValidStringLength(name, 1, NameMaxLength) {
		validationError.AddInvalidLengthError("name", name, 1, NameMaxLength)
	}
	if clientID != nil && !pv.validator.IsValidID(*clientID) {
		validationError.AddInvalidFormatError("client_id", *clientID, "ULID")
	}
	if budgetLimit < 0 {
		validationError.AddInvalidValueError("budget_limit", budgetLimit, "must not be negative")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
