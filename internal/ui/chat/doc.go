// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive chat view for the palaver TUI.
//
// The package follows the Bubble Tea model/update/view split:
//
//   - model.go holds the Model struct and constructor
//   - messages.go defines the message types delivered to Update
//   - commands.go creates the async tea.Cmd values (completion requests,
//     persistence, clipboard)
//   - update.go routes messages through the state machine
//   - view.go renders the full frame
//
// Exactly one completion request may be in flight at a time. Each request
// carries a sequence number; a result whose sequence does not match the
// current in-flight sequence is stale and is discarded without touching
// the conversation.
package chat
