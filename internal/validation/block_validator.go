package validation

// BlockValidator provides validation for InvoiceBlock-related operations
type BlockValidator struct {
	validator *Validator
}

// NewBlockValidator creates a new invoice block validator
func NewBlockValidator() *BlockValidator {
	return &BlockValidator{
		validator: NewValidator(),
	}
}

// ValidateBlockID validates an invoice block identifier
func (bv *BlockValidator) ValidateBlockID(id string) error {
	validationError := NewValidationError()

	if !bv.validator.IsValidID(id) {
		validationError.AddInvalidFormatError("block_id", id, "ULID")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateBlockForCreation validates invoice block fields before creation
func (bv *BlockValidator) ValidateBlockForCreation(clientID string, hoursTarget float64, notes string) error {
	validationError := NewValidationError()

	if !bv.validator.IsValidID(clientID) {
		validationError.AddInvalidFormatError("client_id", clientID, "ULID")
	}
	if !bv.validator.IsValidHoursTarget(hoursTarget) {
		validationError.AddInvalidRangeError("hours_target", hoursTarget, "must be between 0.5 and 10000")
	}
	if len(notes) > NotesMaxLength {
		validationError.AddInvalidLengthError("notes", notes, 0, NotesMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateBlockUpdate validates the updatable fields of an invoice block
func (bv *BlockValidator) ValidateBlockUpdate(hoursTarget *float64, notes *string) error {
	validationError := NewValidationError()

	if hoursTarget != nil && !bv.validator.IsValidHoursTarget(*hoursTarget) {
		validationError.AddInvalidRangeError("hours_target", *hoursTarget, "must be between 0.5 and 10000")
	}
	if notes != nil && len(*notes) > NotesMaxLength {
		validationError.AddInvalidLengthError("notes", *notes, 0, NotesMaxLength)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateResetTarget validates the optional successor target of a block reset
func (bv *BlockValidator) ValidateResetTarget(newTargetHours *float64) error {
	validationError := NewValidationError()

	if newTargetHours != nil && *newTargetHours > 0 && !bv.validator.IsValidHoursTarget(*newTargetHours) {
		validationError.AddInvalidRangeError("new_target_hours", *newTargetHours, "must be between 0.5 and 10000")
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
