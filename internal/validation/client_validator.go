package validation

// ClientValidator provides validation for Client-related operations
type ClientValidator struct {
	validator *Validator
}

// NewClientValidator creates a new client validator
func NewClientValidator() *ClientValidator {
	return &ClientValidator{
		validator: NewValidator(),
	}
}

// ValidateClientID validates a client identifier
func (cv *ClientValidator) ValidateClientID(id string) error {
	validationError := NewValidationError()

	if !cv.validator.IsValidID(id) {
		validationError.AddInvalidFormatError("client_id", id, "ULID")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateClientForCreation validates client fields before creation
func (cv *ClientValidator) ValidateClientForCreation(name string, currency string, budgetLimit float64) error {
	validationError := NewValidationError()

	if !cv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("name")
	} else if !cv.validator.IsValidStringLength(name, 1, NameMaxLength) {
		validationError.AddInvalidLengthError("name", name, 1, NameMaxLength)
	}
	if !cv.validator.IsValidCurrency(currency) {
		validationError.AddInvalidFormatError("currency", currency, "three-letter ISO code")
	}
	if budgetLimit < 0 {
		validationError.AddInvalidValueError("budget_limit", budgetLimit, "must not be negative")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
