// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed at (anchorX, anchorY). Truncation is ANSI-aware
// so styling on either side of the overlay survives.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		overlayWidth = max(overlayWidth, ansi.StringWidth(line))
	}

	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}

		viewLine := viewLines[row]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				result.WriteString(strings.Repeat(" ", gap))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		if pad := overlayWidth - ansi.StringWidth(overlayLine); pad > 0 {
			result.WriteString(strings.Repeat(" ", pad))
		}
		result.WriteString("\x1b[0m")

		if suffixStart := anchorX + overlayWidth; suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[row] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// PlaceCentered splices a rendered box into the middle of a view of
// the given dimensions. Boxes larger than the view are anchored at the
// top-left corner.
func PlaceCentered(view, box string, width, height int) string {
	boxLines := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	anchorX := max((width-boxWidth)/2, 0)
	anchorY := max((height-len(boxLines))/2, 0)

	// Pad the view so short screens still have rows for the box.
	viewLines := strings.Split(view, "\n")
	for len(viewLines) < anchorY+len(boxLines) {
		viewLines = append(viewLines, "")
	}
	return SpliceOverlay(strings.Join(viewLines, "\n"), boxLines, anchorX, anchorY)
}

// Excerpt flattens body text to a single line and truncates it to
// maxRunes runes, appending "..." when anything was cut.
func Excerpt(body string, maxRunes int) string {
	flat := strings.Join(strings.Fields(body), " ")
	runes := []rune(flat)
	if len(runes) <= maxRunes {
		return flat
	}
	return string(runes[:maxRunes]) + "..."
}
