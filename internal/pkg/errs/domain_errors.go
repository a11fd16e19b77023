package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Resource errors
	ErrResourceNotFound  = errors.New("resource not found")
	ErrResourceRetired   = errors.New("resource is retired")
	ErrCapacityExceeded  = errors.New("resource capacity exceeded")
	ErrQuantityExhausted = errors.New("resource quantity exhausted")

	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingConflict  = errors.New("booking conflict")
	ErrBookingCancelled = errors.New("booking is already cancelled")
	ErrInvalidInterval  = errors.New("invalid booking interval")

	// Recurrence errors
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")

	// Maintenance errors
	ErrScheduleNotFound = errors.New("maintenance schedule not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrStoreOperationFailed = errors.New("store operation failed")
)
