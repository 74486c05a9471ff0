// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/FahadRazzaq1121/postapp/lib/tui"
)

func TestRenderMarkdownBlocks(t *testing.T) {
	input := strings.Join([]string{
		"# Release notes",
		"",
		"Shipped **search** and [docs](https://example.com/docs).",
		"",
		"- first",
		"- second",
		"",
		"1. one",
		"2. two",
		"",
		"> quoted",
		"",
		"```go",
		"fmt.Println(\"hi\")",
		"```",
	}, "\n")

	output := ansi.Strip(RenderMarkdown(input, tui.DefaultTheme, 80))
	for _, want := range []string{
		"Release notes",
		"Shipped search and docs (https://example.com/docs).",
		"• first",
		"• second",
		"1. one",
		"2. two",
		"│ quoted",
		`fmt.Println("hi")`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRenderMarkdownWrapsToWidth(t *testing.T) {
	paragraph := strings.Repeat("word ", 40)
	output := RenderMarkdown(paragraph, tui.DefaultTheme, 24)
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %d line(s)", len(lines))
	}
	for _, line := range lines {
		if width := ansi.StringWidth(line); width > 24 {
			t.Errorf("line %q is %d columns wide", ansi.Strip(line), width)
		}
	}
}

func TestRenderMarkdownBlank(t *testing.T) {
	if got := RenderMarkdown("  \n\t", tui.DefaultTheme, 40); got != "" {
		t.Errorf("blank input rendered %q", got)
	}
}
