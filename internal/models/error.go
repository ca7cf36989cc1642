package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	ErrRateLimitExceeded = errors.New("too many login attempts")

	// Account lifecycle errors
	ErrDuplicateAccount   = fmt.Errorf("legislator already has an account: %w", ErrConflict)
	ErrForbiddenOperation = fmt.Errorf("operation not permitted on the reserved admin account: %w", ErrForbidden)
)

// LockedOutError is returned while a login name is temporarily locked.
type LockedOutError struct {
	RetryAfterSeconds int
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("login temporarily locked, retry after %d seconds", e.RetryAfterSeconds)
}

func (e *LockedOutError) Is(target error) bool {
	return target == ErrRateLimitExceeded
}

// InvalidCredentialsError is returned when the login name or secret does not match.
type InvalidCredentialsError struct {
	AttemptsRemaining int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid login name or password, %d attempts remaining", e.AttemptsRemaining)
}

func (e *InvalidCredentialsError) Is(target error) bool {
	return target == ErrUnauthorized
}

// PasswordPolicyError lists every password rule a candidate secret failed.
type PasswordPolicyError struct {
	Reasons []string
}

func (e *PasswordPolicyError) Error() string {
	if len(e.Reasons) == 0 {
		return "password does not meet policy"
	}
	return "password does not meet policy: " + strings.Join(e.Reasons, "; ")
}

func (e *PasswordPolicyError) Is(target error) bool {
	return target == ErrBadRequest
}

// NotFoundError identifies the missing entity.
type NotFoundError struct {
	EntityType string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.EntityType, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFound builds a NotFoundError for any printable id.
func NewNotFound(entityType string, id any) *NotFoundError {
	return &NotFoundError{EntityType: entityType, ID: fmt.Sprint(id)}
}

// ValidationError reports a single invalid field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrBadRequest
}
