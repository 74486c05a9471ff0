// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so scripts can tell bad
// input from a missing record or a flaky backend without parsing
// message text.
type ErrorCategory string

const (
	// CategoryValidation means the caller provided invalid input. Fix
	// the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound means a referenced post or user does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden means the caller's role does not allow the
	// operation.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict means the operation conflicts with existing
	// state, such as a duplicate email.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient means the backend could not be reached or
	// answered with a gateway error. Retrying later may help.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal covers everything else.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. It wraps an
// inner error, preserving the chain for errors.Is and errors.As.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is an optional next step printed after the message.
	Hint string
}

// Error returns the message, followed by the hint when one is set.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns e.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
