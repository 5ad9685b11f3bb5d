package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrDuplicateRoom is returned when a room catalog save would contain two
	// rooms with the same identifier.
	ErrDuplicateRoom = errors.New("application: duplicate room identifier")
	// ErrDuplicateBooking is returned when a booking identifier already exists
	// for the same date.
	ErrDuplicateBooking = errors.New("application: duplicate booking")
	// ErrUnknownUser is returned when booked_by does not resolve to a
	// registered user.
	ErrUnknownUser = errors.New("application: unknown user")
	// ErrEmptyParticipants is returned when a booking resolves to no known
	// participants and no guests.
	ErrEmptyParticipants = errors.New("application: empty participant list")
)

// ValidationError captures field level validation issues that callers can surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
