// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for postadmin's terminal UI. All
// colors are ANSI 256-color codes.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Role badges, keyed by the role wire value.
	RoleSuperAdmin lipgloss.Color
	RoleAdmin      lipgloss.Color
	RoleUser       lipgloss.Color

	// Toast and status line severities.
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	Accent           lipgloss.Color // Active tab, focused input, scrollbar thumb.

	SearchHighlightBackground lipgloss.Color

	LinkForeground lipgloss.Color

	// Modal boxes.
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
}

// RoleColor returns the badge color for a role wire value. Unknown
// roles render faint.
func (theme Theme) RoleColor(role string) lipgloss.Color {
	switch role {
	case "SuperAdmin":
		return theme.RoleSuperAdmin
	case "Admin":
		return theme.RoleAdmin
	case "User":
		return theme.RoleUser
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in scheme for dark 256-color terminals.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	RoleSuperAdmin: lipgloss.Color("141"), // light purple
	RoleAdmin:      lipgloss.Color("75"),  // blue
	RoleUser:       lipgloss.Color("114"), // green

	Success: lipgloss.Color("114"),
	Warning: lipgloss.Color("220"),
	Error:   lipgloss.Color("196"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	Accent:           lipgloss.Color("220"),

	SearchHighlightBackground: lipgloss.Color("58"),

	LinkForeground: lipgloss.Color("75"),

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("237"),
}
