// Package straerrors provides structured error handling for Strata with
// categorized error types, key-value context, and stack traces captured at
// the point of creation.
//
// # Basic Usage
//
//	// Create a new error
//	err := straerrors.New(straerrors.ErrorTypeParameter, "chunk size below minimum")
//
//	// Add context
//	err = err.WithDetail("chunk_size", 50).
//	    WithDetail("minimum", 100)
//
//	// Wrap existing errors
//	if err := src.Next(); err != nil {
//	    return straerrors.Wrap(err, straerrors.ErrorTypeFile, "line source failed").
//	        WithDetail("path", path)
//	}
//
// Errors are categorized by type, which drives handling strategies: parameter
// and state errors are programming or usage mistakes, format errors identify
// malformed input at a specific line, and conversion errors are recoverable
// through caller-supplied defaults.
//
// Error instances are not safe for concurrent modification. Add details
// before sharing across goroutines.
package straerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error.
type ErrorType string

const (
	// ErrorTypeParameter represents invalid construction or call arguments.
	ErrorTypeParameter ErrorType = "parameter"
	// ErrorTypeFormat represents malformed source text, such as an unclosed
	// quoted field.
	ErrorTypeFormat ErrorType = "format"
	// ErrorTypeRange represents an out-of-bounds index on a materialized table.
	ErrorTypeRange ErrorType = "range"
	// ErrorTypeConversion represents a value that cannot be converted to the
	// requested type and no default was supplied.
	ErrorTypeConversion ErrorType = "conversion"
	// ErrorTypeState represents an operation on an exhausted or
	// non-restartable stream.
	ErrorTypeState ErrorType = "state"
	// ErrorTypeFile represents file operation errors in the line source.
	ErrorTypeFile ErrorType = "file"
	// ErrorTypeInternal represents internal errors that indicate a bug.
	ErrorTypeInternal ErrorType = "internal"
)

// Error represents a structured error with context.
//
// Fields:
//   - Type: categorizes the error for handling strategies
//   - Message: human-readable error description
//   - Cause: the underlying error that caused this error
//   - Details: key-value pairs providing additional context, such as the
//     offending parameter name and value or the failing line index
//   - Stack: call stack at the point of error creation
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack.
type StackFrame struct {
	Function string // Fully qualified function name
	File     string // Source file path
	Line     int    // Line number in source file
}

// Error implements the error interface, returning a formatted message that
// includes the error type, message, and cause (if present).
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// over the error chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error. This method can be
// chained to add multiple details.
//
// Example:
//
//	err := straerrors.New(straerrors.ErrorTypeFormat, "unclosed quoted field").
//	    WithDetail("line", lineIndex).
//	    WithDetail("column", col)
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message, capturing the
// call stack at the point of creation.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates a new error with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context, preserving the
// original error as the cause. If the error is already a structured Error,
// its stack trace is preserved. Returns nil if the input error is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type.
//
// Example:
//
//	if straerrors.IsType(err, straerrors.ErrorTypeRange) {
//	    // index out of bounds, clamp and retry
//	}
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// TypeOf returns the ErrorType of a structured error, or ErrorTypeInternal
// for any other error.
func TypeOf(err error) ErrorType {
	var e *Error
	if !errors.As(err, &e) {
		return ErrorTypeInternal
	}
	return e.Type
}

// captureStack captures the current call stack up to maxFrames deep,
// skipping the specified number of frames from the top.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
