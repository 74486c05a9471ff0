// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"errors"
	"log/slog"

	"github.com/FahadRazzaq1121/postapp/lib/api"
	"github.com/FahadRazzaq1121/postapp/lib/tokencache"
)

// TokenClearer forgets the stored bearer token.
type TokenClearer interface {
	Clear() error
}

// Session ties the token cache to navigation. It satisfies
// listview.SessionGuard.
type Session struct {
	tokens  TokenClearer
	history *History
	logger  *slog.Logger
	onEnd   func()
}

// SessionConfig configures a Session.
type SessionConfig struct {
	Tokens  TokenClearer
	History *History

	// OnEnd runs after the token is cleared, for example to drop the
	// cached profile.
	OnEnd func()

	Logger *slog.Logger
}

// NewSession returns a Session.
func NewSession(config SessionConfig) *Session {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Session{tokens: config.Tokens, history: config.History, logger: config.Logger, onEnd: config.OnEnd}
}

// IsSessionError reports whether err means the user must log in again.
func IsSessionError(err error) bool {
	return api.IsUnauthorized(err) || errors.Is(err, tokencache.ErrNoToken)
}

// HandleError ends the session when err is an authorization failure
// or a missing token, and reports whether it did.
func (s *Session) HandleError(err error) bool {
	if !IsSessionError(err) {
		return false
	}
	s.logger.Info("session ended by authorization failure", "error", err)
	s.end()
	return true
}

// Logout ends the session at the user's request.
func (s *Session) Logout() {
	s.logger.Info("logged out")
	s.end()
}

// LoginSucceeded opens the dashboard on the post tab.
func (s *Session) LoginSucceeded() {
	s.history.Push(DashboardLocation(TabPost))
}

// SelectTab records a tab change as a new history entry.
func (s *Session) SelectTab(tab Tab) {
	s.history.Push(DashboardLocation(tab))
}

func (s *Session) end() {
	if err := s.tokens.Clear(); err != nil {
		s.logger.Error("clearing access token", "error", err)
	}
	if s.onEnd != nil {
		s.onEnd()
	}
	if !s.history.Current().IsLogin() {
		s.history.Push(LoginLocation())
	}
}
