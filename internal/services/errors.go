package services

import "errors"

// Service-level error taxonomy. Handlers translate these into HTTP
// statuses; anything unwrapped maps to a generic 500.
var (
	// ErrValidation covers missing or malformed required fields.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials covers unknown email or password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidOTP covers a mismatched or expired one-time passcode.
	ErrInvalidOTP = errors.New("invalid or expired OTP")

	// ErrConflict covers duplicate unique keys (registration email).
	ErrConflict = errors.New("already exists")

	// ErrNotFound covers lookups that match no record.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized covers ownership or assignment mismatches: the
	// caller's role could perform the operation, but not on this record.
	ErrUnauthorized = errors.New("not authorized")

	// ErrForbidden covers role mismatches: the caller's role can never
	// perform the operation.
	ErrForbidden = errors.New("access denied")

	// ErrInvalidStatus covers status writes outside the allowed set.
	ErrInvalidStatus = errors.New("invalid status value")
)
