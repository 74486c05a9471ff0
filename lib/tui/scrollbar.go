// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar draws a one-column gutter of the given height for a
// pane showing visibleLines of totalLines starting at offset. Panes
// whose content fits get a blank gutter.
func RenderScrollbar(theme Theme, height, totalLines, visibleLines, offset int) string {
	if height <= 0 {
		return ""
	}
	lines := make([]string, height)
	if totalLines <= visibleLines || totalLines <= 0 {
		for index := range lines {
			lines[index] = " "
		}
		return strings.Join(lines, "\n")
	}

	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(theme.Accent)

	thumbSize := max(height*visibleLines/totalLines, 1)
	thumbOffset := 0
	if scrollable, track := totalLines-visibleLines, height-thumbSize; scrollable > 0 && track > 0 {
		thumbOffset = min(offset*track/scrollable, track)
	}

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}
