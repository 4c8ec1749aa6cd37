// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Catalog errors
	ErrCategoryNotFound = &Error{Code: "CATEGORY_NOT_FOUND", Message: "category not found"}

	// Page errors
	ErrPageNotFound   = &Error{Code: "PAGE_NOT_FOUND", Message: "page not found"}
	ErrInvalidPageID  = &Error{Code: "INVALID_PAGE_ID", Message: "invalid page id"}
	ErrTemplateFailed = &Error{Code: "TEMPLATE_FAILED", Message: "page template failed"}

	// Storage errors
	ErrStorageFailed = &Error{Code: "STORAGE_FAILED", Message: "storage operation failed"}

	// Request errors
	ErrInvalidRequest = &Error{Code: "INVALID_REQUEST", Message: "invalid request"}
	ErrUnauthorized   = &Error{Code: "UNAUTHORIZED", Message: "missing or invalid api key"}

	// Settings errors
	ErrSettingsInvalid = &Error{Code: "SETTINGS_INVALID", Message: "settings invalid"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
