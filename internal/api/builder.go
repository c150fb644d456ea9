// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"strings"

	"github.com/morganforge/palaver/internal/model"
)

// =============================================================================
// REQUEST BUILDER
// =============================================================================

// Default request parameters. Temperature is kept low so answers stay
// deterministic across retries of the same prompt.
const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 2048
)

// DefaultSystemPrompt instructs the assistant to answer as a coding helper.
const DefaultSystemPrompt = "You are a helpful coding assistant. Answer concisely and format code in fenced blocks."

// BuildOptions controls how a ChatRequest is assembled.
type BuildOptions struct {
	// Model name sent on the wire. Empty means DefaultModel.
	Model string

	// SystemPrompt prepended as the first message. Empty means no system
	// message at all, not an empty one.
	SystemPrompt string

	// Temperature for sampling. The zero value means DefaultTemperature,
	// so an explicit 0 must be requested via config validation upstream.
	Temperature float64

	// MaxTokens caps the completion length. Zero means DefaultMaxTokens.
	MaxTokens int

	// IncludeHistory replays prior conversation turns before the new
	// prompt. When false the request carries only the system message and
	// the new user message.
	IncludeHistory bool
}

// BuildRequest assembles the wire request for one prompt.
//
// The prompt is rejected with ErrEmptyInput when it is empty after trimming
// whitespace, but an accepted prompt is sent verbatim, untrimmed. History is
// replayed in conversation order when opts.IncludeHistory is set; system
// messages stored in the history are skipped because the system prompt is
// already the first wire message.
func BuildRequest(prompt string, history []*model.Message, opts BuildOptions) (*ChatRequest, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyInput
	}

	messages := make([]Message, 0, len(history)+2)
	if opts.SystemPrompt != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: opts.SystemPrompt})
	}

	if opts.IncludeHistory {
		for _, msg := range history {
			if msg.Role == model.RoleSystem {
				continue
			}
			messages = append(messages, Message{Role: msg.Role.String(), Content: msg.Content})
		}
	}

	messages = append(messages, Message{Role: RoleUser, Content: prompt})

	req := &ChatRequest{
		Model:       opts.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Stream:      false,
	}
	if req.Model == "" {
		req.Model = DefaultModel
	}
	if req.Temperature == 0 {
		req.Temperature = DefaultTemperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = DefaultMaxTokens
	}

	return req, nil
}
