package fa

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the automaton error family.
const (
	// Definition errors raised during construction and validation.
	CodeInvalidState  Code = "INVALID_STATE"  // a referenced state is not in the state set
	CodeMissingState  Code = "MISSING_STATE"  // a state has no transition row
	CodeInvalidSymbol Code = "INVALID_SYMBOL" // a transition key is outside the alphabet
	CodeMissingSymbol Code = "MISSING_SYMBOL" // totality requires a (state, symbol) entry that is absent

	// Specialized definition errors for richer diagnostics.
	CodeInitialState Code = "INITIAL_STATE" // the initial state fails a required condition
	CodeFinalState   Code = "FINAL_STATE"   // a final state fails a required condition

	// CodeRejection is raised only by recognition: the input word is not in
	// the automaton's language.
	CodeRejection Code = "REJECTION"

	// CodeNotImplemented is reserved for automaton variants that have not
	// supplied a required operation.
	CodeNotImplemented Code = "NOT_IMPLEMENTED"
)

// Error is a structured automaton error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message naming the offending identifier
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

// NewError creates a new Error with the given code and formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a new Error wrapping an existing error.
func WrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsCode reports whether err carries the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsRejection reports whether err belongs to the rejection family. Only
// recognition raises rejections; structural errors are never rejections.
func IsRejection(err error) bool {
	return IsCode(err, CodeRejection)
}

// ErrCode extracts the error code from an error, if available.
// Returns the empty code if the error is not an *Error.
func ErrCode(err error) Code {
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
		return e.Message
	}
	return err.Error()
}
