// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/palaver/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the full chat frame.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
	}

	if m.state == StateWaiting {
		sections = append(sections, m.spinner.View())
	} else {
		sections = append(sections, "")
	}

	sections = append(sections, m.renderInput())
	m.syncStatusBar()
	sections = append(sections, m.statusBar.View())

	frame := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.showHelp {
		return m.renderHelpOverlay(frame)
	}

	if m.toasts.HasToasts() {
		overlay := components.RenderToastStack(m.toasts.Toasts(), m.width, m.height)
		if overlay != "" {
			// The toast stack is placed over the bottom-right corner; the
			// frame stays interactive underneath.
			return frame + "\n" + overlay
		}
	}

	return frame
}

// renderHeader renders the title line with the conversation name.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("palaver")
	subtitle := m.theme.HeaderSubtitle.Render(m.conversation.GetTitle())

	line := title + "  " + subtitle
	return m.theme.Header.Width(m.width).Render(line)
}

// renderInput renders the input box with its prompt.
func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

// renderHelpOverlay renders the keyboard help over a dimmed frame.
func (m Model) renderHelpOverlay(frame string) string {
	var b strings.Builder
	b.WriteString(m.theme.WelcomeTitle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")

	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(m.theme.ShortcutKey.Render(padRight(h.Key, 12)))
			b.WriteString(m.theme.ShortcutDesc.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.theme.ShortcutDesc.Render("Slash commands: /new /clear /delete /save /export /model /quit"))

	box := m.theme.WelcomeBox.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
