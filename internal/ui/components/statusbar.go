// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/palaver/internal/ui/styles"
	"github.com/morganforge/palaver/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status represents the current application state shown in the bar.
type Status int

const (
	StatusReady Status = iota
	StatusWaiting
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusWaiting:
		return "Waiting..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status so state is readable
// without color.
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusWaiting:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar: model, endpoint, message count,
// state, and keyboard hints.
type StatusBar struct {
	ModelName     string
	Endpoint      string
	MessageCount  int
	Status        Status
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a status bar with defaults.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetModel updates the model name display.
func (s *StatusBar) SetModel(name string) {
	s.ModelName = name
}

// SetEndpoint updates the endpoint display.
func (s *StatusBar) SetEndpoint(endpoint string) {
	s.Endpoint = endpoint
}

// SetMessageCount updates the conversation message count.
func (s *StatusBar) SetMessageCount(n int) {
	s.MessageCount = n
}

// View renders the status bar, picking a layout for the width.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders "model | 12 msg | [OK]" for narrow terminals.
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	if s.ModelName != "" {
		parts = append(parts, util.TruncateRunes(s.ModelName, 15))
	}
	parts = append(parts, strconv.Itoa(s.MessageCount)+" msg")
	parts = append(parts, s.statusStyle().Render(s.Status.Icon()))

	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	return s.theme.StatusBar.Width(s.Width).Render(strings.Join(parts, sep))
}

// viewWide renders the full bar with endpoint and shortcut hints.
func (s *StatusBar) viewWide() string {
	leftParts := []string{}

	if s.ModelName != "" {
		modelStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		leftParts = append(leftParts, modelStyle.Render(s.ModelName))
	}
	if s.Endpoint != "" {
		endpointStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, endpointStyle.Render(util.TruncateRunes(s.Endpoint, 36)))
	}

	countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	leftParts = append(leftParts, countStyle.Render(strconv.Itoa(s.MessageCount)+" msg"))

	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	leftSection := strings.Join(leftParts, sep)

	rightParts := []string{
		s.statusStyle().Render(s.Status.Icon() + " " + s.Status.String()),
	}
	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}
	rightSection := strings.Join(rightParts, "  ")

	spacing := s.Width - lipgloss.Width(leftSection) - lipgloss.Width(rightSection) - 4
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection
	return s.theme.StatusBar.Width(s.Width).Render(result)
}

// renderShortcuts renders the keyboard hint cluster.
func (s *StatusBar) renderShortcuts() string {
	shortcuts := []string{
		s.theme.ShortcutKey.Render("^N") + s.theme.ShortcutDesc.Render("new"),
		s.theme.ShortcutKey.Render("^Y") + s.theme.ShortcutDesc.Render("copy"),
		s.theme.ShortcutKey.Render("^C") + s.theme.ShortcutDesc.Render("quit"),
	}
	return strings.Join(shortcuts, " ")
}

func (s *StatusBar) statusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return s.theme.StatusReady
	case StatusWaiting:
		return s.theme.StatusBusy
	case StatusError:
		return s.theme.StatusError
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
