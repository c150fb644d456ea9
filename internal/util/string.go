// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Rune-aware truncation preserves multi-byte characters.
// These functions handle strings correctly regardless of character encoding,
// preventing mid-character truncation that would corrupt UTF-8 strings.

// TruncateRunes truncates a string to a maximum number of runes (characters).
// This is safe for UTF-8 strings as it counts characters, not bytes.
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateRunesNoEllipsis truncates a string to a maximum number of runes
// without appending an ellipsis.
func TruncateRunesNoEllipsis(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}

// TruncateWidth truncates a string to a maximum display width.
// Double-width characters (CJK) count as 2 columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth > 3 {
		return runewidth.Truncate(s, maxWidth, "...")
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// StringWidth returns the display width of a string.
// Double-width characters (CJK) count as 2 columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// WordWrap wraps text to the given display width, breaking on spaces
// where possible. Words longer than the width are broken mid-word.
// Existing newlines are preserved.
func WordWrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var out strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(wrapLine(line, width))
	}
	return out.String()
}

// wrapLine wraps a single line (no newlines) to the given width.
func wrapLine(line string, width int) string {
	if runewidth.StringWidth(line) <= width {
		return line
	}

	var out strings.Builder
	var cur strings.Builder
	curWidth := 0

	flush := func() {
		if out.Len() > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(cur.String())
		cur.Reset()
		curWidth = 0
	}

	for _, word := range strings.Split(line, " ") {
		w := runewidth.StringWidth(word)

		// Break words that cannot fit on any line
		for w > width {
			if curWidth > 0 {
				flush()
			}
			head := runewidth.Truncate(word, width, "")
			cur.WriteString(head)
			flush()
			word = word[len(head):]
			w = runewidth.StringWidth(word)
		}

		switch {
		case curWidth == 0:
			cur.WriteString(word)
			curWidth = w
		case curWidth+1+w <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curWidth += 1 + w
		default:
			flush()
			cur.WriteString(word)
			curWidth = w
		}
	}
	if cur.Len() > 0 || out.Len() == 0 {
		flush()
	}
	return out.String()
}
