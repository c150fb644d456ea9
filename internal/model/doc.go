// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// A Conversation owns an ordered list of Messages. Insertion order is
// display order, message IDs are unique and stable for the lifetime of
// the message, and deletion by ID removes exactly one entry while
// preserving the relative order of the rest.
package model
