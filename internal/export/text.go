// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/morganforge/palaver/internal/model"
	"github.com/morganforge/palaver/internal/segment"
)

// =============================================================================
// PLAIN-TEXT EXPORTER
// =============================================================================

// TextExporter exports conversations as a plain-text transcript.
// Code fences are stripped so the output reads naturally in a pager.
type TextExporter struct {
	options *Options
}

// NewTextExporter creates a new plain-text exporter.
func NewTextExporter(opts *Options) *TextExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TextExporter{options: opts}
}

// Export converts a conversation to a plain-text transcript.
func (e *TextExporter) Export(conv *model.Conversation) ([]byte, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	if len(conv.Messages) == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		sb.WriteString(conv.GetTitle())
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("=", len([]rune(conv.GetTitle()))))
		sb.WriteString("\n\n")
	}

	for _, msg := range conv.Messages {
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("%s [%s]:\n", msg.Role.DisplayName(),
				formatShortTimestamp(msg.Timestamp)))
		} else {
			sb.WriteString(msg.Role.DisplayName() + ":\n")
		}
		sb.WriteString(MessageText(msg))
		sb.WriteString("\n\n")
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for plain text.
func (e *TextExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *TextExporter) MimeType() string {
	return "text/plain"
}

// MessageText renders a single message as plain text with code fences
// removed. Used both by the transcript exporter and by the clipboard copy
// action, which wants paste-ready code.
func MessageText(msg *model.Message) string {
	segments := segment.Parse(msg.Content)
	if len(segments) == 0 {
		return strings.TrimSpace(msg.Content)
	}
	return segment.Join(segments)
}
