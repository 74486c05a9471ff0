// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// Exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUnauthorized = 2
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish a handled exit from an unexpected
// error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}
