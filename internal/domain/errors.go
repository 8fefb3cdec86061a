package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountInactive blocks authentication for deactivated accounts.
	ErrAccountInactive = errors.New("account is deactivated")
	// ErrDuplicateEmail is returned for any attempt to store an email that
	// another record already holds, whether caught by the pre-check or by
	// the store's unique index.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrUserNotFound is returned when no record matches the requested id.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidID is returned when an identifier is not a valid uuid.
	ErrInvalidID = errors.New("invalid user id")
	// ErrSelfDeletion guards the caller's own account against deletion.
	ErrSelfDeletion = errors.New("cannot delete your own account")
)

// ValidationError carries the human-readable reason a payload failed
// field validation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError wraps a field validation failure.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// AsValidationError reports whether err is a field validation failure.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
