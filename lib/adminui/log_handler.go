// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg carries one slog record into the status line.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears the status line log entry if it is still
// the one identified by sequence.
type logRecordFadeMsg struct {
	sequence uint64
}

// logRecordFadeDelay is how long a forwarded record stays visible.
const logRecordFadeDelay = 5 * time.Second

// Sender is the part of *tea.Program the log handler needs.
type Sender interface {
	Send(message tea.Msg)
}

// TUILogHandler is a slog.Handler that forwards records into a running
// bubbletea program, where they show in the status line. Records below
// the handler's level are dropped, as are records that arrive before
// SetProgram.
//
// Handlers derived with WithAttrs and WithGroup share the program
// pointer with their parent.
type TUILogHandler struct {
	level   slog.Leveler
	program *atomic.Pointer[Sender]
	attrs   []slog.Attr
	group   string
}

// NewTUILogHandler returns a handler that forwards records at or above
// level.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{level: level, program: &atomic.Pointer[Sender]{}}
}

// SetProgram starts delivery to program. Safe to call from any
// goroutine.
func (handler *TUILogHandler) SetProgram(program Sender) {
	handler.program.Store(&program)
}

// Enabled implements slog.Handler.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle implements slog.Handler.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}
	(*program).Send(logRecordMsg{
		Summary: handler.summarize(record),
		Level:   record.Level,
	})
	return nil
}

// summarize formats "message (key=value, ...)".
func (handler *TUILogHandler) summarize(record slog.Record) string {
	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		key := attr.Key
		if handler.group != "" {
			key = handler.group + "." + key
		}
		parts = append(parts, key+"="+attr.Value.String())
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs implements slog.Handler.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	for _, attr := range attrs {
		if handler.group != "" {
			attr.Key = handler.group + "." + attr.Key
		}
		derived.attrs = append(derived.attrs, attr)
	}
	return &derived
}

// WithGroup implements slog.Handler.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	if handler.group != "" {
		derived.group = handler.group + "." + name
	} else {
		derived.group = name
	}
	return &derived
}
