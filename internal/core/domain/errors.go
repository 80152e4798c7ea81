package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no per-instance detail.
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAdminNotFound = errors.New("admin user not found")
var ErrUsernameTaken = errors.New("username already taken")

// ValidationError marks malformed input: bad date format, non-image upload,
// missing extractable bill fields. Never retried automatically.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError marks a violated state precondition: duplicate bill number,
// already applied, daily limit reached. The caller must not retry without
// changing state first.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func Conflictf(format string, args ...any) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// PermissionError marks a caller that is not eligible for the requested
// loyalty action (not a student, loyalty inactive, aged out). Distinct from
// generic authorization failures.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string { return e.Reason }

func Permissionf(format string, args ...any) *PermissionError {
	return &PermissionError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a missing user, verification, bill, or other record.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

func NotFoundf(format string, args ...any) *NotFoundError {
	return &NotFoundError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsPermission reports whether err is (or wraps) a PermissionError.
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
