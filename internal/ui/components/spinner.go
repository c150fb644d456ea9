// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/palaver/internal/ui/styles"
)

// =============================================================================
// SPINNER
// =============================================================================

// Spinner shows an animated waiting indicator while a completion request is
// in flight. Frames are ASCII so the spinner renders on any terminal.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	active    bool
	showTimer bool
	theme     *styles.Theme
}

// NewSpinner creates a spinner with the default waiting message.
func NewSpinner(theme *styles.Theme) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	return Spinner{
		spinner:   s,
		message:   "Thinking",
		showTimer: true,
		theme:     theme,
	}
}

// SetMessage sets the text shown next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner and returns the tick command.
func (s *Spinner) Start() tea.Cmd {
	s.active = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// IsActive reports whether the spinner is running.
func (s *Spinner) IsActive() bool {
	return s.active
}

// Elapsed returns how long the spinner has been running.
func (s *Spinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner line: "| Thinking... (3s)".
func (s Spinner) View() string {
	if !s.active {
		return ""
	}

	result := s.theme.Spinner.Render(s.spinner.View()) + " " +
		s.theme.ThinkingText.Render(s.message+"...")

	if s.showTimer && !s.startTime.IsZero() {
		result += s.theme.MessageTime.Render(" (" + formatElapsed(s.Elapsed()) + ")")
	}
	return result
}

// formatElapsed formats a duration as "12s" or "1m 05s".
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return strconv.Itoa(seconds) + "s"
	}
	minutes := seconds / 60
	secs := seconds % 60
	pad := ""
	if secs < 10 {
		pad = "0"
	}
	return strconv.Itoa(minutes) + "m " + pad + strconv.Itoa(secs) + "s"
}
