package errs

import "errors"

// Error kinds shared by the command and query sides and mapped by the HTTP layer
var (
	// Resource errors
	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourceUnavailable = errors.New("resource unavailable")
	ErrResourceHasBookings = errors.New("resource has bookings")

	// Booking errors
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingConflict  = errors.New("booking conflict")
	ErrInvalidInterval  = errors.New("invalid interval")
	ErrBookedByRequired = errors.New("booked_by required")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
