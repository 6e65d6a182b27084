package domain

import "errors"

var (
	// Validation errors
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidAmount    = errors.New("amount must be a valid positive number")
	ErrInvalidType      = errors.New("type must be income or expense")
	ErrInvalidFilter    = errors.New("filter must be all, income or expense")

	// Storage errors
	ErrStorageRead  = errors.New("stored entries could not be read")
	ErrStorageWrite = errors.New("failed to persist entries")

	// Interaction errors
	ErrNotEditing           = errors.New("entry is not being edited")
	ErrConfirmationRequired = errors.New("deletion requires confirmation")
)

// ValidationError reports which field rejected user input.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Reason returns a short machine readable name for the failure.
func (e *ValidationError) Reason() string {
	switch {
	case errors.Is(e.Err, ErrEmptyDescription):
		return "empty_description"
	case errors.Is(e.Err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(e.Err, ErrInvalidType):
		return "invalid_type"
	default:
		return "unknown"
	}
}

// UserMessage is the text shown to the person who submitted the form.
func (e *ValidationError) UserMessage() string {
	switch {
	case errors.Is(e.Err, ErrEmptyDescription):
		return "Please enter a description."
	case errors.Is(e.Err, ErrInvalidAmount):
		return "Please enter a valid positive amount."
	case errors.Is(e.Err, ErrInvalidType):
		return "Please select a valid type."
	default:
		return e.Error()
	}
}
