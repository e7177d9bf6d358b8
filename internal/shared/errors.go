package shared

import "errors"

// Sentinel errors for the domain layer. Services wrap these with
// fmt.Errorf("...: %w", err); the HTTP boundary maps each sentinel to
// exactly one status code.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a malformed or out-of-range field value.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness invariant would be violated.
	ErrConflict = errors.New("already exists")
	// ErrBadReference indicates a dangling reference to another entity.
	ErrBadReference = errors.New("referenced entity not found")
	// ErrPolicy indicates a business-rule violation such as a self-review.
	ErrPolicy = errors.New("operation not allowed by policy")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized indicates a missing or unverifiable identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller lacks permission for the target.
	ErrForbidden = errors.New("forbidden")
)
