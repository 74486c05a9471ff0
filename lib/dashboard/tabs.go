// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashboard models the authenticated shell around the list
// views: which tabs a role may see, the navigable location that
// records the active tab, back/forward history, the session that
// returns to login when authorization fails, and per-role permissions
// for user and post management.
package dashboard

import "github.com/FahadRazzaq1121/postapp/lib/api"

// Tab identifies a dashboard tab. Its string is the value of the
// ?tab= query parameter.
type Tab string

const (
	TabPost      Tab = "post"
	TabUser      Tab = "user"
	TabMyProfile Tab = "my_profile"
)

// DefaultTab is selected when the location names no tab.
const DefaultTab = TabPost

// Label is the tab's display name.
func (t Tab) Label() string {
	switch t {
	case TabPost:
		return "Post"
	case TabUser:
		return "Users"
	case TabMyProfile:
		return "My Profile"
	}
	return string(t)
}

// VisibleTabs returns the tabs role may open, in display order. An
// unknown or empty role sees none.
func VisibleTabs(role api.Role) []Tab {
	switch role {
	case api.RoleSuperAdmin, api.RoleAdmin:
		return []Tab{TabPost, TabUser, TabMyProfile}
	case api.RoleUser:
		return []Tab{TabPost, TabMyProfile}
	}
	return nil
}

// CanView reports whether role may open tab.
func CanView(role api.Role, tab Tab) bool {
	for _, visible := range VisibleTabs(role) {
		if visible == tab {
			return true
		}
	}
	return false
}

// ResolveTab returns requested when role may view it, otherwise the
// first tab role may view. ok is false when role sees no tabs.
func ResolveTab(requested Tab, role api.Role) (tab Tab, ok bool) {
	visible := VisibleTabs(role)
	if len(visible) == 0 {
		return "", false
	}
	if requested == "" {
		requested = DefaultTab
	}
	for _, candidate := range visible {
		if candidate == requested {
			return candidate, true
		}
	}
	return visible[0], true
}
