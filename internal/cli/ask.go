// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/palaver/internal/api"
	"github.com/morganforge/palaver/internal/config"
	"github.com/morganforge/palaver/internal/ui/styles"
)

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAsk sends one question to the endpoint and prints the answer.
// The question comes from the command line, or from stdin when piped.
func HandleAsk(args Args) error {
	cfg := config.Global()
	applyOverrides(cfg, args)

	question := args.Query
	if question == "" {
		question = readStdinQuestion(args.Quiet)
	}
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("no question provided. Usage: palaver ask \"your question\"")
	}

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	req, err := api.BuildRequest(question, nil, buildOptions(cfg))
	if err != nil {
		return err
	}

	if args.Verbose {
		fmt.Fprintf(os.Stderr, "%s %s (model %s)\n",
			lipgloss.NewStyle().Foreground(styles.Cyan).Render("Endpoint:"),
			client.Endpoint(), req.Model)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout(cfg))
	defer cancel()

	start := time.Now()
	resp, err := client.Complete(ctx, req)
	if err != nil {
		return describeError(err)
	}

	for _, content := range resp.AssistantContents() {
		displayResponse(content, args.Plain)
	}

	if !args.Quiet {
		elapsed := time.Since(start).Round(10 * time.Millisecond)
		fmt.Fprintf(os.Stderr, "%s %s in %s\n",
			lipgloss.NewStyle().Foreground(styles.TextMuted).Render("Answered by"),
			req.Model, elapsed)
	}
	return nil
}

// readStdinQuestion reads a piped question from stdin. Returns "" when
// stdin is a terminal.
func readStdinQuestion(quiet bool) string {
	stat, err := os.Stdin.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
		return ""
	}

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil || len(data) == 0 {
		return ""
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "Read question from stdin (%d bytes)\n", len(data))
	}
	return strings.TrimSpace(string(data))
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// applyOverrides folds command line flags into the loaded config.
func applyOverrides(cfg *config.Config, args Args) {
	if args.Model != "" {
		cfg.API.Model = args.Model
	}
	if args.BaseURL != "" {
		cfg.API.BaseURL = args.BaseURL
	}
	if args.System != "" {
		cfg.API.SystemPrompt = args.System
	}
}

// newClient builds the API client from config.
func newClient(cfg *config.Config) (*api.Client, error) {
	return api.NewClient(&api.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.APIKey,
		Timeout: requestTimeout(cfg),
	})
}

// buildOptions maps config onto request build options.
func buildOptions(cfg *config.Config) api.BuildOptions {
	return api.BuildOptions{
		Model:          cfg.API.Model,
		SystemPrompt:   cfg.API.SystemPrompt,
		Temperature:    cfg.API.Temperature,
		MaxTokens:      cfg.API.MaxTokens,
		IncludeHistory: cfg.API.IncludeHistory,
	}
}

func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.API.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(cfg.API.TimeoutSecs) * time.Second
}

// describeError wraps client errors with actionable hints.
func describeError(err error) error {
	if ok, code := api.IsHTTPStatus(err); ok {
		return fmt.Errorf("server returned HTTP %d: %w", code, err)
	}
	if api.IsTransport(err) {
		return fmt.Errorf("could not reach the server (is it running?): %w", err)
	}
	return err
}
