// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/palaver/internal/segment"
	"github.com/morganforge/palaver/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK COMPONENT
// =============================================================================

// CodeBlock renders a fenced code segment with a language badge, optional
// line numbers, and ANSI syntax highlighting.
type CodeBlock struct {
	Segment      segment.Segment
	Width        int
	ShowLineNums bool
	HighlightOn  bool
	theme        *styles.Theme
}

// NewCodeBlock creates a code block for a code segment.
func NewCodeBlock(seg segment.Segment, theme *styles.Theme) *CodeBlock {
	return &CodeBlock{
		Segment:      seg,
		Width:        80,
		ShowLineNums: true,
		HighlightOn:  true,
		theme:        theme,
	}
}

// SetWidth updates the available render width.
func (c *CodeBlock) SetWidth(width int) {
	c.Width = width
}

// Render produces the full code block view.
func (c *CodeBlock) Render() string {
	code := strings.TrimRight(c.Segment.Text, "\n")
	if code == "" {
		return ""
	}

	lang := c.Segment.Language
	if lang == "" {
		lang = segment.DetectLanguage(code)
	}

	rendered := code
	if c.HighlightOn {
		rendered = strings.TrimRight(segment.Highlight(code, lang), "\n")
	}

	lines := strings.Split(rendered, "\n")
	if c.ShowLineNums {
		lines = c.addLineNumbers(lines)
	}

	body := strings.Join(lines, "\n")

	// Language badge in the top border area, omitted when unknown.
	var header string
	if lang != "" {
		header = c.theme.CodeLangBadge.Render(" " + lang + " ")
	}

	blockWidth := c.Width - 4
	if blockWidth < 20 {
		blockWidth = 20
	}

	box := c.theme.CodeBlock.MaxWidth(blockWidth).Render(body)

	if header != "" {
		return header + "\n" + box
	}
	return box
}

// addLineNumbers prefixes each line with a right-aligned line number.
func (c *CodeBlock) addLineNumbers(lines []string) []string {
	gutterWidth := len(strconv.Itoa(len(lines)))

	numbered := make([]string, 0, len(lines))
	for i, line := range lines {
		num := strconv.Itoa(i + 1)
		pad := strings.Repeat(" ", gutterWidth-len(num))
		gutter := c.theme.CodeLineNum.Render(pad + num + " ")
		numbered = append(numbered, gutter+line)
	}
	return numbered
}

// =============================================================================
// SEGMENT RENDERING
// =============================================================================

// RenderSegments renders a parsed message body: plain segments are word
// wrapped, code segments go through CodeBlock. Segment order is preserved.
func RenderSegments(segments []segment.Segment, width int, theme *styles.Theme) string {
	if len(segments) == 0 {
		return ""
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.IsCode {
			block := NewCodeBlock(seg, theme)
			block.SetWidth(width)
			if v := block.Render(); v != "" {
				parts = append(parts, v)
			}
			continue
		}

		text := strings.TrimRight(seg.Text, "\n")
		if text == "" {
			continue
		}
		parts = append(parts, wordWrap(text, width-4))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
