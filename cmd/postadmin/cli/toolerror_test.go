// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestToolError_Hint(t *testing.T) {
	err := Validation("bad token").WithHint("Run 'postadmin login'.")
	if want := "bad token\n\nRun 'postadmin login'."; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestToolError_UnwrapsThroughWrapping(t *testing.T) {
	sentinel := errors.New("sentinel")
	wrapped := fmt.Errorf("outer: %w", NotFound("user: %w", sentinel))

	var toolErr *ToolError
	if !errors.As(wrapped, &toolErr) {
		t.Fatal("errors.As failed")
	}
	if toolErr.Category != CategoryNotFound {
		t.Errorf("Category = %q", toolErr.Category)
	}
	if !errors.Is(wrapped, sentinel) {
		t.Error("sentinel lost in chain")
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: ExitUnauthorized}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 2 {
		t.Errorf("ExitCode() = %v, %v", coder, ok)
	}
}
