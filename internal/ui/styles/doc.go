// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the palaver TUI.
//
// All colors use Lip Gloss AdaptiveColor so the palette adjusts to light
// and dark terminal backgrounds automatically. The Theme type bundles the
// configured lipgloss styles for every UI element; construct one with
// NewTheme at startup and share it across components.
package styles
