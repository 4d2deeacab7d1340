package models

import "fmt"

// ValidationError is a client-detectable input problem. It blocks the
// submission before any inventory or billing call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidationError creates a validation error for a specific field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InventoryConflictError means the inventory service rejected a
// reservation because the requested unit is no longer available
// (seat taken, room type sold out, car date overlap). The service's
// own message is preserved for display.
type InventoryConflictError struct {
	Domain           string // "flight", "hotel", "car"
	Message          string
	UnavailableSeats []string
}

func (e *InventoryConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s inventory is no longer available", e.Domain)
}

// CommitError means the booking/billing creation failed after
// inventory was already reserved. It triggers compensation.
type CommitError struct {
	Message string
	Err     error
}

func (e *CommitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "failed to create booking"
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// ConfirmationWarning is non-fatal: the booking already exists, only
// the reserved→booked seat upgrade failed. It is logged, never shown
// to the user.
type ConfirmationWarning struct {
	FlightID string
	Seats    []string
	Err      error
}

func (e *ConfirmationWarning) Error() string {
	return fmt.Sprintf("seat confirmation failed for flight %s: %v", e.FlightID, e.Err)
}

func (e *ConfirmationWarning) Unwrap() error {
	return e.Err
}

// InvalidTotalError guards against a computed charge that is
// negative, NaN or non-finite. It blocks submission.
type InvalidTotalError struct {
	Amount float64
}

func (e *InvalidTotalError) Error() string {
	return fmt.Sprintf("invalid total amount: %v", e.Amount)
}
