// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown.
type DropdownOption struct {
	Label string
	Value string
}

// Dropdown is a small select menu rendered inline in a form or spliced
// over a view. The owner routes up/down keys to it while it has focus.
type Dropdown struct {
	Placeholder string
	Options     []DropdownOption

	// Cursor is the highlighted option. -1 means nothing is chosen
	// and the placeholder shows.
	Cursor int
}

// NewDropdown returns a dropdown with nothing selected.
func NewDropdown(placeholder string, options []DropdownOption) Dropdown {
	return Dropdown{Placeholder: placeholder, Options: options, Cursor: -1}
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *Dropdown) MoveUp() {
	if len(dropdown.Options) == 0 {
		return
	}
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *Dropdown) MoveDown() {
	if len(dropdown.Options) == 0 {
		return
	}
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Select moves the cursor to the option carrying value. Unknown
// values clear the selection.
func (dropdown *Dropdown) Select(value string) {
	dropdown.Cursor = -1
	for index, option := range dropdown.Options {
		if option.Value == value {
			dropdown.Cursor = index
			return
		}
	}
}

// Value returns the selected option's value, or "" when nothing is
// selected.
func (dropdown Dropdown) Value() string {
	if dropdown.Cursor < 0 || dropdown.Cursor >= len(dropdown.Options) {
		return ""
	}
	return dropdown.Options[dropdown.Cursor].Value
}

// Width is the visible width of every rendered line.
func (dropdown Dropdown) Width() int {
	widest := ansi.StringWidth(dropdown.Placeholder)
	for _, option := range dropdown.Options {
		widest = max(widest, ansi.StringWidth(option.Label))
	}
	// " > LABEL " plus one column of padding.
	return 3 + widest + 2
}

// Render draws the collapsed control: the selected label (or the
// placeholder) between arrows. When open it also lists every option
// below with the cursor row highlighted.
func (dropdown Dropdown) Render(theme Theme, focused, open bool) []string {
	innerWidth := dropdown.Width() - 2
	background := lipgloss.NewStyle().Background(theme.ModalBackground).Foreground(theme.ModalForeground)
	selected := lipgloss.NewStyle().Background(theme.SelectedBackground).Foreground(theme.SelectedForeground)

	label := dropdown.Placeholder
	labelStyle := background.Foreground(theme.FaintText)
	if value := dropdown.Value(); value != "" {
		label = dropdown.Options[dropdown.Cursor].Label
		labelStyle = background
	}
	if focused {
		labelStyle = labelStyle.Foreground(theme.Accent)
	}
	pad := max(innerWidth-ansi.StringWidth(label)-2, 0)
	lines := []string{labelStyle.Render("‹ " + label + strings.Repeat(" ", pad) + " ›")}

	if !open {
		return lines
	}
	for index, option := range dropdown.Options {
		marker := "  "
		style := background
		if index == dropdown.Cursor {
			marker = "> "
			style = selected
		}
		content := marker + option.Label
		content += strings.Repeat(" ", max(innerWidth-ansi.StringWidth(content), 0))
		lines = append(lines, style.Render(" "+content+" "))
	}
	return lines
}
