// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"log/slog"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FahadRazzaq1121/postapp/lib/dashboard"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []tea.Msg
}

func (s *recordingSender) Send(message tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
}

func (s *recordingSender) records() []logRecordMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	var records []logRecordMsg
	for _, message := range s.messages {
		if record, ok := message.(logRecordMsg); ok {
			records = append(records, record)
		}
	}
	return records
}

func TestTUILogHandlerDropsRecordsBeforeProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelInfo)
	logger := slog.New(handler)
	logger.Info("too early")

	sender := &recordingSender{}
	handler.SetProgram(sender)
	logger.Info("delivered")

	records := sender.records()
	if len(records) != 1 || records[0].Summary != "delivered" {
		t.Fatalf("records = %+v, want only the record after SetProgram", records)
	}
}

func TestTUILogHandlerLevelAndAttributes(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)
	sender := &recordingSender{}
	handler.SetProgram(sender)

	logger := slog.New(handler).With("tab", "post").WithGroup("fetch")
	logger.Info("ignored")
	logger.Warn("list fetch failed", "page", 2)

	records := sender.records()
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if want := "list fetch failed (tab=post, fetch.page=2)"; records[0].Summary != want {
		t.Errorf("summary = %q, want %q", records[0].Summary, want)
	}
	if records[0].Level != slog.LevelWarn {
		t.Errorf("level = %v, want WARN", records[0].Level)
	}
}

func TestLogRecordShowsUntilItsFade(t *testing.T) {
	h := newHarness(t, dashboard.LoginLocation(), superAdmin)
	h.send(logRecordMsg{Summary: "first", Level: slog.LevelWarn})
	h.send(logRecordMsg{Summary: "second", Level: slog.LevelWarn})

	h.send(logRecordFadeMsg{sequence: h.model.logSequence - 1})
	if h.model.logLine != "second" {
		t.Fatalf("logLine = %q, stale fade cleared the newer record", h.model.logLine)
	}
	h.send(logRecordFadeMsg{sequence: h.model.logSequence})
	if h.model.logLine != "" {
		t.Fatalf("logLine = %q, want cleared", h.model.logLine)
	}
}
