// Package errs provides the coded domain errors shared by the trail engines.
package errs

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Table errors are configuration or programmer errors.
	CodeOutOfRange  Code = "OUT_OF_RANGE"
	CodeTableLookup Code = "TABLE_LOOKUP"

	// Recoverable state errors.
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
	CodeInvalidState      Code = "INVALID_STATE"
	CodeEncounterResolved Code = "ENCOUNTER_RESOLVED"

	CodeInvalidInput Code = "INVALID_INPUT"
	CodeNotFound     Code = "NOT_FOUND"
)

// Sentinels for errors.Is. Matching is by code, so any *Error carrying the
// same code matches.
var (
	ErrOutOfRange        = New(CodeOutOfRange, "roll outside table domain")
	ErrTableLookup       = New(CodeTableLookup, "malformed outcome table")
	ErrInsufficientStock = New(CodeInsufficientStock, "insufficient stock")
	ErrInsufficientFunds = New(CodeInsufficientFunds, "insufficient funds")
	ErrInvalidState      = New(CodeInvalidState, "invalid state")
	ErrEncounterResolved = New(CodeEncounterResolved, "encounter already resolved")
	ErrInvalidInput      = New(CodeInvalidInput, "invalid input")
	ErrNotFound          = New(CodeNotFound, "not found")
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates a domain error carrying extra context for callers.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HTTPStatus maps an error to the status a transport should answer with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInsufficientStock, CodeInsufficientFunds, CodeInvalidState, CodeEncounterResolved:
		return http.StatusConflict
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
