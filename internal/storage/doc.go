// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides SQLite-backed conversation persistence.
//
// Conversations and their messages live in two tables joined by
// conversation ID, with message order preserved through an explicit
// sequence column. The store uses the pure Go SQLite driver so no cgo
// toolchain is needed.
package storage
