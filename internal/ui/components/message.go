// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/morganforge/palaver/internal/model"
	"github.com/morganforge/palaver/internal/segment"
	"github.com/morganforge/palaver/internal/ui/styles"
	"github.com/morganforge/palaver/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE
// =============================================================================

// MessageBubble renders a single conversation message as a bordered bubble.
// Assistant messages are split on code fences so code renders highlighted.
type MessageBubble struct {
	Message  *model.Message
	Width    int
	ShowTime bool
	theme    *styles.Theme
}

// NewMessageBubble creates a bubble for the given message.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message:  msg,
		Width:    80,
		ShowTime: true,
		theme:    theme,
	}
}

// SetWidth updates the available render width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// Render produces the bubble view for the message role.
func (b *MessageBubble) Render() string {
	if b.Message == nil || b.Message.IsEmpty() {
		return ""
	}

	switch b.Message.Role {
	case model.RoleUser:
		return b.renderUser()
	case model.RoleAssistant:
		return b.renderAssistant()
	case model.RoleSystem:
		return b.renderSystem()
	default:
		return b.renderAssistant()
	}
}

func (b *MessageBubble) renderUser() string {
	header := b.renderHeader()
	body := wordWrap(b.Message.Content, b.contentWidth())

	bubble := b.theme.UserBubble.MaxWidth(b.Width - 2).Render(body)
	return header + "\n" + bubble
}

// renderAssistant splits the body into plain and code segments so code
// blocks keep their highlighting and gutter.
func (b *MessageBubble) renderAssistant() string {
	header := b.renderHeader()

	segments := segment.Parse(b.Message.Content)
	body := RenderSegments(segments, b.contentWidth(), b.theme)
	if body == "" {
		body = wordWrap(b.Message.Content, b.contentWidth())
	}

	bubble := b.theme.AssistantBubble.MaxWidth(b.Width - 2).Render(body)
	return header + "\n" + bubble
}

func (b *MessageBubble) renderSystem() string {
	body := wordWrap(b.Message.Content, b.contentWidth())
	label := b.theme.MessageRole.Render(b.Message.Role.DisplayName())

	bubble := b.theme.SystemBubble.MaxWidth(b.Width - 2).Render(body)
	return label + "\n" + bubble
}

// renderHeader renders the "You  12:04" style line above a bubble.
func (b *MessageBubble) renderHeader() string {
	role := b.theme.MessageRole.Render(b.Message.Role.DisplayName())
	if !b.ShowTime {
		return role
	}
	ts := b.theme.MessageTime.Render(formatTime(b.Message.Timestamp))
	return role + "  " + ts
}

func (b *MessageBubble) contentWidth() int {
	w := b.Width - 6
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// MESSAGE LIST
// =============================================================================

// MessageList renders a conversation's messages in order.
type MessageList struct {
	Width    int
	ShowTime bool
	theme    *styles.Theme
}

// NewMessageList creates a message list renderer.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:    80,
		ShowTime: true,
		theme:    theme,
	}
}

// SetWidth updates the available render width.
func (l *MessageList) SetWidth(width int) {
	l.Width = width
}

// Render produces the full list view, or an empty-state hint when the
// conversation has no messages yet.
func (l *MessageList) Render(messages []*model.Message) string {
	if len(messages) == 0 {
		return l.theme.WelcomeInfo.Render("No messages yet. Start a conversation!")
	}

	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		bubble := NewMessageBubble(msg, l.theme)
		bubble.Width = l.Width
		bubble.ShowTime = l.ShowTime
		if v := bubble.Render(); v != "" {
			parts = append(parts, v)
		}
	}

	return strings.Join(parts, "\n\n")
}

// =============================================================================
// HELPERS
// =============================================================================

// wordWrap wraps text to the given width, preserving existing newlines.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return util.WordWrap(text, width)
}

// formatTime formats a timestamp as HH:MM, prefixed with the date when the
// message is from an earlier day.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}
