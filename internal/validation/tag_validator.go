package validation

// TagValidator provides validation for Tag-related operations
type TagValidator struct {
	validator *Validator
}

// NewTagValidator creates a new tag validator
func NewTagValidator() *TagValidator {
	return &TagValidator{
		validator: NewValidator(),
	}
}

// ValidateTagID validates a tag identifier
func (tv *TagValidator) ValidateTagID(id string) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidID(id) {
		validationError.AddInvalidFormatError("tag_id", id, "ULID")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateTagName validates a tag name for creation or rename
func (tv *TagValidator) ValidateTagName(name string) error {
	validationError := NewValidationError()

	if !tv.validator.IsNonEmptyString(name) {
		validationError.AddRequiredError("name")
	} else if !tv.validator.IsValidStringLength(name, 1, TagNameMaxLength) {
		validationError.AddInvalidLengthError("name", name, 1, TagNameMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
