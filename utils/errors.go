package utils

import "fmt"

// Error taxonomy shared by the service layer. Handlers translate these into
// HTTP statuses; services never touch gin.

// ValidationError signals malformed or out-of-policy input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError signals a request that violates a current-state invariant
// (duplicate slot, booked-slot deletion, duplicate active booking).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError signals a missing record or one not owned by the caller.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// AuthError signals a missing, invalid or expired identity token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// OTP failure reasons.
const (
	OtpNotFoundOrExpired = "not_found_or_expired"
	OtpInvalidCode       = "invalid_code"
)

// OtpError signals a failed OTP verification. Reason is one of the constants
// above; the message is surfaced verbatim so the client can re-prompt.
type OtpError struct {
	Reason  string
	Message string
}

func (e *OtpError) Error() string { return e.Message }

// DependencyError wraps a persistent-store or email-delivery failure.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func NewDependencyError(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}
