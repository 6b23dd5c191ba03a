// Package errors provides structured error types for vendorjs.
//
// Every failure in the install pipeline carries a machine-readable code so
// the installer can tell a per-dependency problem (demoted to a warning)
// from a batch-level one (returned to the caller), and so the CLI can print
// a short message without the code prefix.
//
// # Error Codes
//
// Codes are grouped by the pipeline stage that produces them:
//   - INVALID_*: input and configuration validation failures
//   - PACKAGE_NOT_FOUND, TAG_FETCH_FAILED, VERSION_NOT_FOUND: registry and tag lookups
//   - FETCH_FAILED, EXTRACT_FAILED: archive download and extraction
//   - MANIFEST_*, RESOURCES_UNRESOLVED: manifest inspection
//   - PLACEMENT_FAILED, PACK_FAILED: writing files to their destination
//
// # Usage
//
//	err := errors.New(errors.ErrCodePackageNotFound, "no package found for: %s", id)
//	if errors.Is(err, errors.ErrCodePackageNotFound) {
//	    // Handle missing package
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFetch, origErr, "fetching %s failed", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPackage  Code = "INVALID_PACKAGE"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Registry and version errors
	ErrCodePackageNotFound Code = "PACKAGE_NOT_FOUND"
	ErrCodeTagFetch        Code = "TAG_FETCH_FAILED"
	ErrCodeVersionNotFound Code = "VERSION_NOT_FOUND"

	// Archive errors
	ErrCodeFetch   Code = "FETCH_FAILED"
	ErrCodeExtract Code = "EXTRACT_FAILED"

	// Manifest errors
	ErrCodeManifestRead        Code = "MANIFEST_READ_FAILED"
	ErrCodeManifestParse       Code = "MANIFEST_PARSE_FAILED"
	ErrCodeResourcesUnresolved Code = "RESOURCES_UNRESOLVED"

	// Output errors
	ErrCodePlacement Code = "PLACEMENT_FAILED"
	ErrCodePack      Code = "PACK_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
