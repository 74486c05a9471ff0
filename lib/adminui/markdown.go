// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/FahadRazzaq1121/postapp/lib/tui"
)

var (
	markdownOnce   sync.Once
	markdownParser goldmark.Markdown
)

func parser() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// RenderMarkdown renders post content as styled terminal text wrapped
// to width. Soft line breaks reflow; code blocks keep their layout and
// are highlighted when they name a language.
func RenderMarkdown(input string, theme tui.Theme, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := parser().Parser().Parse(text.NewReader(source))

	// Output always lands in the TUI, so the profile is fixed instead
	// of detected from a stdout that bubbletea owns.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{source: source, theme: theme, styles: styles}
	return strings.Join(renderer.children(document, max(width, 10)), "\n")
}

type markdownRenderer struct {
	source []byte
	theme  tui.Theme
	styles *lipgloss.Renderer
}

func (r *markdownRenderer) style() lipgloss.Style {
	return r.styles.NewStyle().Foreground(r.theme.NormalText)
}

// children renders the block children of parent separated by blank
// lines.
func (r *markdownRenderer) children(parent ast.Node, width int) []string {
	var lines []string
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		rendered := r.block(child, width)
		if len(rendered) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, rendered...)
	}
	return lines
}

func (r *markdownRenderer) block(node ast.Node, width int) []string {
	switch node := node.(type) {
	case *ast.Heading:
		style := r.style().Bold(true).Foreground(r.theme.HeaderForeground)
		if node.Level == 1 {
			style = style.Underline(true)
		}
		return r.wrap(r.inline(node, style), width)

	case *ast.Paragraph:
		return r.wrap(r.inline(node, r.style()), width)

	case *ast.TextBlock:
		return r.wrap(r.inline(node, r.style()), width)

	case *ast.FencedCodeBlock:
		return r.code(node.Lines(), string(node.Language(r.source)))

	case *ast.CodeBlock:
		return r.code(node.Lines(), "")

	case *ast.Blockquote:
		bar := r.styles.NewStyle().Foreground(r.theme.BorderColor).Render("│ ")
		inner := r.children(node, width-2)
		for index, line := range inner {
			inner[index] = bar + line
		}
		return inner

	case *ast.List:
		return r.list(node, width)

	case *ast.ThematicBreak:
		return []string{r.styles.NewStyle().Foreground(r.theme.BorderColor).Render(strings.Repeat("─", width))}

	case *ast.HTMLBlock:
		faint := r.styles.NewStyle().Foreground(r.theme.FaintText)
		var lines []string
		segments := node.Lines()
		for index := 0; index < segments.Len(); index++ {
			segment := segments.At(index)
			lines = append(lines, faint.Render(strings.TrimRight(string(segment.Value(r.source)), "\n")))
		}
		return lines

	case *extast.Table:
		return r.table(node)
	}
	return r.children(node, width)
}

func (r *markdownRenderer) list(list *ast.List, width int) []string {
	var lines []string
	number := list.Start
	if number == 0 {
		number = 1
	}
	bulletStyle := r.styles.NewStyle().Foreground(r.theme.FaintText)
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		bullet := "• "
		if list.IsOrdered() {
			bullet = fmt.Sprintf("%d. ", number)
			number++
		}
		indent := strings.Repeat(" ", len(bullet))
		body := r.children(item, width-len(bullet))
		if len(body) == 0 {
			body = []string{""}
		}
		if !list.IsTight && len(lines) > 0 {
			lines = append(lines, "")
		}
		for index, line := range body {
			if index == 0 {
				lines = append(lines, bulletStyle.Render(bullet)+line)
			} else if line == "" {
				lines = append(lines, "")
			} else {
				lines = append(lines, indent+line)
			}
		}
	}
	return lines
}

func (r *markdownRenderer) code(segments *text.Segments, language string) []string {
	var builder strings.Builder
	for index := 0; index < segments.Len(); index++ {
		segment := segments.At(index)
		builder.Write(segment.Value(r.source))
	}
	source := strings.TrimRight(builder.String(), "\n")

	highlighted := ""
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, source, language, "terminal256", "monokai"); err == nil {
			highlighted = strings.TrimRight(buffer.String(), "\n")
		}
	}
	if highlighted == "" {
		highlighted = r.styles.NewStyle().Foreground(r.theme.FaintText).Render(source)
	}
	lines := strings.Split(highlighted, "\n")
	for index, line := range lines {
		lines[index] = "  " + line
	}
	return lines
}

func (r *markdownRenderer) table(table *extast.Table) []string {
	separator := r.styles.NewStyle().Foreground(r.theme.BorderColor).Render(" │ ")
	var lines []string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		style := r.style()
		if _, header := row.(*extast.TableHeader); header {
			style = style.Bold(true)
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inline(cell, style))
		}
		lines = append(lines, strings.Join(cells, separator))
	}
	return lines
}

// inline renders the inline children of parent in style.
func (r *markdownRenderer) inline(parent ast.Node, style lipgloss.Style) string {
	var builder strings.Builder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			builder.WriteString(style.Render(string(node.Segment.Value(r.source))))
			switch {
			case node.HardLineBreak():
				builder.WriteString("\n")
			case node.SoftLineBreak():
				builder.WriteString(" ")
			}

		case *ast.String:
			builder.WriteString(style.Render(string(node.Value)))

		case *ast.Emphasis:
			if node.Level >= 2 {
				builder.WriteString(r.inline(node, style.Bold(true)))
			} else {
				builder.WriteString(r.inline(node, style.Italic(true)))
			}

		case *extast.Strikethrough:
			builder.WriteString(r.inline(node, style.Strikethrough(true)))

		case *ast.CodeSpan:
			builder.WriteString(r.styles.NewStyle().Foreground(r.theme.Accent).Render(r.plain(node)))

		case *ast.Link:
			label := r.inline(node, style.Foreground(r.theme.LinkForeground).Underline(true))
			builder.WriteString(label)
			if destination := string(node.Destination); destination != "" && destination != r.plain(node) {
				builder.WriteString(r.styles.NewStyle().Foreground(r.theme.FaintText).Render(" (" + destination + ")"))
			}

		case *ast.AutoLink:
			builder.WriteString(style.Foreground(r.theme.LinkForeground).Underline(true).Render(string(node.URL(r.source))))

		case *ast.Image:
			builder.WriteString(r.styles.NewStyle().Foreground(r.theme.FaintText).Render("[image: " + r.plain(node) + "]"))

		case *ast.RawHTML:
			var raw strings.Builder
			for index := 0; index < node.Segments.Len(); index++ {
				segment := node.Segments.At(index)
				raw.Write(segment.Value(r.source))
			}
			builder.WriteString(r.styles.NewStyle().Foreground(r.theme.FaintText).Render(raw.String()))

		default:
			builder.WriteString(r.inline(child, style))
		}
	}
	return builder.String()
}

// plain returns the unstyled text under node.
func (r *markdownRenderer) plain(node ast.Node) string {
	var builder strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			builder.Write(textNode.Segment.Value(r.source))
			continue
		}
		builder.WriteString(r.plain(child))
	}
	return builder.String()
}

func (r *markdownRenderer) wrap(content string, width int) []string {
	if content == "" {
		return nil
	}
	return strings.Split(ansi.Wrap(content, max(width, 10), " ,.;-+|"), "\n")
}
