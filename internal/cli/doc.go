// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the palaver command line surface.
//
// The binary defaults to the TUI; subcommands cover one-shot questions
// (ask), a line-based REPL (chat), configuration management (config),
// and persisted conversation history (history).
package cli
