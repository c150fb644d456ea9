// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

var (
	markdownRenderer     *glamour.TermRenderer
	markdownRendererOnce sync.Once
)

// getRenderer lazily builds the glamour renderer sized to the terminal.
// A nil renderer means glamour failed to initialize and output falls back
// to plain text.
func getRenderer() *glamour.TermRenderer {
	markdownRendererOnce.Do(func() {
		width := GetTerminalWidth()
		if width > 100 {
			width = 100
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			markdownRenderer = r
		}
	})
	return markdownRenderer
}

// renderMarkdown renders markdown for terminal display, returning the
// input unchanged when rendering is unavailable.
func renderMarkdown(content string) string {
	r := getRenderer()
	if r == nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse prints a response, rendered as markdown only when stdout
// is a TTY and plain mode is off. Piped output is always verbatim.
func displayResponse(response string, plain bool) {
	if !plain && IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
		return
	}
	fmt.Print(response)
	fmt.Println()
}
