package link

import "errors"

var (
	// ErrValidation marks malformed input. It is terminal and never retried.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the short code is unknown.
	ErrNotFound = errors.New("link not found")

	// ErrInactive indicates the link exists but is soft-deleted.
	ErrInactive = errors.New("link is inactive")

	// ErrForbidden indicates the requester may not act on the link.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition is returned when a lifecycle transition is not allowed
	// from the record's current state.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
)

// ValidationError carries a user-facing message for malformed input.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
