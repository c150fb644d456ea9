// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the chat client.
type ClientConfig struct {
	// BaseURL of the OpenAI-compatible server, without the
	// /chat/completions suffix (default: http://127.0.0.1:8080)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6
	// resolution issues on Windows
	BaseURL string

	// APIKey sent as a bearer token when non-empty.
	APIKey string

	// Timeout for the full request round trip (default: 60s)
	Timeout time.Duration
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8080",
		Timeout: 60 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with an OpenAI-compatible chat server.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client, err := api.NewClient(&api.ClientConfig{BaseURL: "https://api.example.com/v1"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := client.Complete(ctx, req)
type Client struct {
	config     *ClientConfig
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a chat client. The base URL is validated eagerly so a
// misconfigured endpoint fails at startup rather than on the first send.
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8080"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	endpoint, err := completionsURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		config:   config,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// completionsURL validates the base URL and joins the completions path.
func completionsURL(baseURL string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidEndpoint, Message: "invalid base URL " + baseURL, Cause: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &ClientError{Type: ErrTypeInvalidEndpoint, Message: "base URL must be http or https: " + baseURL}
	}
	if parsed.Host == "" {
		return "", &ClientError{Type: ErrTypeInvalidEndpoint, Message: "base URL has no host: " + baseURL}
	}
	return strings.TrimRight(baseURL, "/") + "/chat/completions", nil
}

// Endpoint returns the resolved completions URL, for logging.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// Complete sends a chat request and returns the decoded response.
//
// Every failure mode maps to a *ClientError: marshalling problems to
// ErrTypeEncode, network failures to ErrTypeTransport, any non-200 status
// to ErrTypeHTTPStatus with the code attached, an empty or choice-less
// payload to ErrTypeEmptyBody, and malformed JSON to ErrTypeDecode.
func (c *Client) Complete(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeEncode, Message: "failed to encode request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidEndpoint, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "request to " + c.endpoint + " failed", Cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeTransport, Message: "failed to read response body", Cause: err}
	}

	// Only 200 counts as success; the protocol never uses other 2xx codes.
	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:       ErrTypeHTTPStatus,
			Message:    "server returned " + resp.Status + ": " + errorSnippet(payload),
			StatusCode: resp.StatusCode,
		}
	}

	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, ErrEmptyBody
	}

	var result ChatResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, &ClientError{Type: ErrTypeDecode, Message: "failed to decode response", Cause: err}
	}

	if len(result.Choices) == 0 {
		return nil, &ClientError{Type: ErrTypeEmptyBody, Message: "response contained no choices"}
	}

	return &result, nil
}

// errorSnippet extracts a short, single-line excerpt of an error payload
// for inclusion in status error messages.
func errorSnippet(payload []byte) string {
	const maxLen = 200

	// Prefer the server's own error message when the payload carries one.
	var wrapped struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	snippet := string(bytes.TrimSpace(payload))
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.Error.Message != "" {
		snippet = wrapped.Error.Message
	}

	snippet = strings.ReplaceAll(snippet, "\n", " ")
	if len(snippet) > maxLen {
		snippet = snippet[:maxLen] + "..."
	}
	if snippet == "" {
		snippet = "(no body)"
	}
	return snippet
}
