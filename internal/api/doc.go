// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for OpenAI-compatible chat
// completion endpoints.
//
// The package is split into three concerns:
//
//   - builder.go constructs ChatRequest payloads from a prompt and an
//     optional conversation history.
//   - client.go performs the POST /chat/completions round trip and maps
//     every failure mode to a typed ClientError.
//   - types.go defines the wire types shared by both.
//
// All errors returned by this package are *ClientError values and can be
// inspected with errors.As or the Is* helpers in errors.go.
package api
