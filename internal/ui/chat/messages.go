// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/morganforge/palaver/internal/config"
)

// =============================================================================
// COMPLETION MESSAGES
// =============================================================================

// CompletionMsg carries the result of one completion request.
//
// Seq identifies the request the result belongs to. Exactly one of
// Contents or Err is set: on success Contents holds every assistant
// choice in wire order, on failure Err holds the request error.
type CompletionMsg struct {
	Seq      uint64
	Contents []string
	Err      error
}

// =============================================================================
// PERSISTENCE MESSAGES
// =============================================================================

// ConversationSavedMsg reports the outcome of an async save.
type ConversationSavedMsg struct {
	Err error
}

// ConversationExportedMsg reports the outcome of an export command.
type ConversationExportedMsg struct {
	Path string
	Err  error
}

// =============================================================================
// CLIPBOARD MESSAGES
// =============================================================================

// CopyResultMsg reports the outcome of a clipboard copy.
type CopyResultMsg struct {
	Err error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a freshly reloaded configuration into the
// running session. Sent by the config file watcher via Program.Send.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// StatusMsg displays a transient status line message.
type StatusMsg struct {
	Text string
	Time time.Time
}
