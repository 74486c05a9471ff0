// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"fmt"
	"net/url"
	"sync"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Location is a navigable address: the login screen, or the dashboard
// with an active tab.
type Location struct {
	Path string
	Tab  Tab
}

// LoginLocation is the unauthenticated entry point.
func LoginLocation() Location { return Location{Path: LoginPath} }

// DashboardLocation opens the dashboard on tab.
func DashboardLocation(tab Tab) Location {
	if tab == "" {
		tab = DefaultTab
	}
	return Location{Path: DashboardPath, Tab: tab}
}

// IsLogin reports whether l is the login screen.
func (l Location) IsLogin() bool { return l.Path == LoginPath }

// String renders l, e.g. "/dashboard?tab=user".
func (l Location) String() string {
	if l.Path != DashboardPath || l.Tab == "" {
		return l.Path
	}
	return l.Path + "?" + url.Values{"tab": {string(l.Tab)}}.Encode()
}

// ParseLocation reads an address produced by String. A dashboard
// address without a tab opens DefaultTab.
func ParseLocation(address string) (Location, error) {
	parsed, err := url.Parse(address)
	if err != nil {
		return Location{}, fmt.Errorf("dashboard: invalid location %q: %w", address, err)
	}
	switch parsed.Path {
	case LoginPath:
		return LoginLocation(), nil
	case DashboardPath:
		return DashboardLocation(Tab(parsed.Query().Get("tab"))), nil
	}
	return Location{}, fmt.Errorf("dashboard: unknown location %q", address)
}

// History is a back/forward stack of locations. Safe for concurrent
// use.
type History struct {
	mu      sync.Mutex
	entries []Location
	index   int
	changed func(Location)
}

// NewHistory starts a history at initial. changed, if non-nil, is
// called after every move with the new current location.
func NewHistory(initial Location, changed func(Location)) *History {
	return &History{entries: []Location{initial}, changed: changed}
}

// Current returns the active location.
func (h *History) Current() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push makes location current and discards the forward entries.
// Pushing the current location again is a no-op.
func (h *History) Push(location Location) {
	h.mu.Lock()
	if h.entries[h.index] == location {
		h.mu.Unlock()
		return
	}
	h.entries = append(h.entries[:h.index+1], location)
	h.index++
	h.mu.Unlock()
	h.notify(location)
}

// Replace swaps the current location without adding an entry.
func (h *History) Replace(location Location) {
	h.mu.Lock()
	h.entries[h.index] = location
	h.mu.Unlock()
	h.notify(location)
}

// Back moves one entry back. ok is false at the oldest entry.
func (h *History) Back() (location Location, ok bool) {
	return h.step(-1)
}

// Forward moves one entry forward. ok is false at the newest entry.
func (h *History) Forward() (location Location, ok bool) {
	return h.step(1)
}

func (h *History) step(delta int) (Location, bool) {
	h.mu.Lock()
	target := h.index + delta
	if target < 0 || target >= len(h.entries) {
		current := h.entries[h.index]
		h.mu.Unlock()
		return current, false
	}
	h.index = target
	location := h.entries[target]
	h.mu.Unlock()
	h.notify(location)
	return location, true
}

func (h *History) notify(location Location) {
	if h.changed != nil {
		h.changed(location)
	}
}
