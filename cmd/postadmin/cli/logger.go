// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger writing to w. When w is
// a terminal it uses slog.TextHandler for human-readable output;
// otherwise slog.JSONHandler, so scripted runs produce parseable logs.
//
// The level is Info unless POSTADMIN_DEBUG is set.
func NewCommandLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("POSTADMIN_DEBUG") != "" {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if file, ok := w.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}
