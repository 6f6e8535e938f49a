package shared

import (
	"errors"
	"fmt"
)

// Error codes shared by every layer. The HTTP layer maps them to status codes.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeDuplicateKey     = "DUPLICATE_KEY"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(err, ErrNotFound) matches any not-found error.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateKey     = NewDomainError(CodeDuplicateKey, "Resource already exists")
	ErrInvalidReference = NewDomainError(CodeInvalidReference, "Referenced resource does not exist")
	ErrValidation       = NewDomainError(CodeValidationFailed, "Invalid input provided")
	ErrUnauthorized     = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden        = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
)

// NotFound reports a missing record of the given entity type.
func NotFound(entity string, id int64) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %d not found", entity, id))
}

// NotFoundBy reports a missing record looked up by a non-id key.
func NotFoundBy(entity, field, value string) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s with %s %q not found", entity, field, value))
}

// DuplicateKey reports a unique key collision.
func DuplicateKey(entity, field, value string) *DomainError {
	return NewDomainError(CodeDuplicateKey, fmt.Sprintf("%s with %s %q already exists", entity, field, value))
}

// InvalidReference reports a foreign key that does not resolve.
func InvalidReference(field string, id int64) *DomainError {
	return NewDomainError(CodeInvalidReference, fmt.Sprintf("%s %d does not reference an existing record", field, id))
}

// Validation reports malformed input.
func Validation(format string, args ...any) *DomainError {
	return NewDomainError(CodeValidationFailed, fmt.Sprintf(format, args...))
}

// CodeOf returns the DomainError code carried by err, or "" if there is none.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
