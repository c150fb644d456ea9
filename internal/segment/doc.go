// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package segment splits assistant responses into ordered plain-text and
// code segments on triple-backtick fences, and applies terminal syntax
// highlighting to the code segments via chroma.
package segment
