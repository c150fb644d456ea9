// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/palaver/internal/api"
	"github.com/morganforge/palaver/internal/export"
	"github.com/morganforge/palaver/internal/model"
	"github.com/morganforge/palaver/internal/storage"
)

// =============================================================================
// COMPLETION COMMAND
// =============================================================================

// CompleteCmd sends one completion request and delivers the result as a
// CompletionMsg tagged with seq. The request runs in its own goroutine via
// Bubble Tea; the timeout bounds the whole round trip.
func CompleteCmd(client *api.Client, req *api.ChatRequest, seq uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := client.Complete(ctx, req)
		if err != nil {
			return CompletionMsg{Seq: seq, Err: err}
		}

		return CompletionMsg{Seq: seq, Contents: resp.AssistantContents()}
	}
}

// =============================================================================
// PERSISTENCE COMMANDS
// =============================================================================

// SaveConversationCmd persists the conversation to the history store.
// The conversation is cloned first so the save goroutine never races the
// update loop.
func SaveConversationCmd(store *storage.Store, conv *model.Conversation) tea.Cmd {
	if store == nil || conv == nil {
		return nil
	}
	snapshot := conv.Clone()
	return func() tea.Msg {
		return ConversationSavedMsg{Err: store.Save(snapshot)}
	}
}

// ExportConversationCmd writes the conversation to a file in the given
// format: "markdown", "json", or "text".
func ExportConversationCmd(conv *model.Conversation, format string, opts *export.Options) tea.Cmd {
	snapshot := conv.Clone()
	return func() tea.Msg {
		var path string
		var err error
		switch format {
		case "json":
			path, err = export.ExportJSON(snapshot, opts)
		case "text", "txt":
			path, err = export.ExportText(snapshot, opts)
		default:
			path, err = export.ExportMarkdown(snapshot, opts)
		}
		return ConversationExportedMsg{Path: path, Err: err}
	}
}

// =============================================================================
// CLIPBOARD COMMAND
// =============================================================================

// CopyMessageCmd copies a message body to the system clipboard. Code fences
// are stripped so pasted code runs as-is.
func CopyMessageCmd(msg *model.Message) tea.Cmd {
	if msg == nil {
		return nil
	}
	text := export.MessageText(msg)
	return func() tea.Msg {
		return CopyResultMsg{Err: clipboard.WriteAll(text)}
	}
}
