// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks for the palaver
// TUI: message bubbles, syntax-highlighted code blocks, the status bar,
// loading spinners, and non-blocking toast notifications.
//
// Components are pure render helpers where possible. Stateful components
// (Spinner, ToastManager) follow the bubbletea update/view convention so
// the chat model can compose them.
package components
