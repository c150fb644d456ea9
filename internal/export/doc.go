// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export provides conversation export functionality.
// Supports Markdown, JSON, and plain-text output with optional metadata.
package export
