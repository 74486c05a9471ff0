// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching one pattern against one text.
// Score is zero when the pattern does not match. Positions are rune
// offsets into the text, sorted ascending.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// Matched reports whether the pattern matched at all.
func (result FuzzyResult) Matched() bool { return result.Score > 0 }

// FuzzyMatch scores text against pattern with fzf's V2 algorithm,
// case-insensitively. The slab may be nil; callers matching many rows
// in a loop should share one from util.MakeSlab.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}
	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}
	var sorted []int
	if positions != nil {
		sorted = append(sorted, (*positions)...)
		sort.Ints(sorted)
	}
	return FuzzyResult{Score: result.Score, Positions: sorted}
}

// HighlightMatches renders text with the runes at positions drawn on
// the search highlight background and the rest in base.
func HighlightMatches(text string, positions []int, base lipgloss.Style, theme Theme) string {
	if len(positions) == 0 {
		return base.Render(text)
	}
	highlight := base.Background(theme.SearchHighlightBackground)
	marked := make(map[int]bool, len(positions))
	for _, position := range positions {
		marked[position] = true
	}

	var builder strings.Builder
	var run []rune
	runHighlighted := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runHighlighted {
			builder.WriteString(highlight.Render(string(run)))
		} else {
			builder.WriteString(base.Render(string(run)))
		}
		run = run[:0]
	}
	for index, character := range []rune(text) {
		if marked[index] != runHighlighted {
			flush()
			runHighlighted = marked[index]
		}
		run = append(run, character)
	}
	flush()
	return builder.String()
}
