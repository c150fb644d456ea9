// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/morganforge/palaver/internal/api"
	"github.com/morganforge/palaver/internal/config"
	"github.com/morganforge/palaver/internal/export"
	"github.com/morganforge/palaver/internal/model"
	"github.com/morganforge/palaver/internal/storage"
	"github.com/morganforge/palaver/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	replErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// lineReader wraps liner with persistent input history, so arrow keys
// recall prompts across sessions.
type lineReader struct {
	line        *liner.State
	historyFile string
}

func newLineReader() *lineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	r := &lineReader{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	r.loadHistory()
	return r
}

func (r *lineReader) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line. Non-empty lines are added to history.
func (r *lineReader) ReadInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close persists the history file with owner-only permissions.
func (r *lineReader) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChat runs the line-based interactive chat loop.
func HandleChat(args Args) error {
	if !IsTTY() {
		return fmt.Errorf("chat requires an interactive terminal; use 'palaver ask' for piped input")
	}

	cfg := config.Global()
	applyOverrides(cfg, args)

	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	var store *storage.Store
	if cfg.History.Enabled {
		if dbPath, err := cfg.HistoryDBPath(); err == nil {
			if s, err := storage.Open(dbPath); err == nil {
				store = s
				defer store.Close()
			}
		}
	}

	conv := model.NewConversationWithModel(cfg.API.Model)
	conv.SystemPrompt = cfg.API.SystemPrompt

	reader := newLineReader()
	defer reader.Close()

	if !args.Quiet {
		printWelcome(cfg, client)
	}

	for {
		input, err := reader.ReadInput(promptStyle.Render("> "))
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println(infoStyle.Render("Goodbye."))
				saveIfEnabled(store, conv)
				return nil
			}
			return err
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(input), "/") {
			quit := runReplCommand(strings.TrimSpace(input), cfg, conv, store)
			if quit {
				saveIfEnabled(store, conv)
				return nil
			}
			continue
		}

		if err := runTurn(client, cfg, conv, input, args); err != nil {
			fmt.Fprintln(os.Stderr, replErrorStyle.Render("Error: ")+describeError(err).Error())
			continue
		}
		saveIfEnabled(store, conv)
	}
}

// runTurn sends one prompt and appends the exchange to the conversation.
func runTurn(client *api.Client, cfg *config.Config, conv *model.Conversation, input string, args Args) error {
	req, err := api.BuildRequest(input, conv.GetHistory(), buildOptions(cfg))
	if err != nil {
		return err
	}

	conv.AddUserMessage(input)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout(cfg))
	defer cancel()

	start := time.Now()
	resp, err := client.Complete(ctx, req)
	if err != nil {
		// The user message stays: a retry of the same question after a
		// transient failure should still read as one thread.
		return err
	}

	contents := resp.AssistantContents()
	for _, content := range contents {
		conv.AddAssistantMessage(content)
		fmt.Println()
		displayResponse(content, args.Plain)
	}

	if !args.Quiet {
		fmt.Fprintln(os.Stderr, infoStyle.Render(
			fmt.Sprintf("(%s, %s)", req.Model, time.Since(start).Round(10*time.Millisecond))))
	}
	return nil
}

// runReplCommand executes a slash command. Returns true when the loop
// should exit.
func runReplCommand(line string, cfg *config.Config, conv *model.Conversation, store *storage.Store) bool {
	parts := strings.Fields(line)
	name := strings.TrimPrefix(parts[0], "/")
	rest := parts[1:]

	switch name {
	case "help", "h":
		fmt.Println(infoStyle.Render(`Commands:
  /help             Show this help
  /clear            Clear the conversation
  /model [name]     Show or switch the model
  /history          Print the conversation so far
  /export [format]  Export (markdown, json, text)
  /quit             Exit`))

	case "clear", "c":
		conv.ClearHistory()
		fmt.Println(infoStyle.Render("Conversation cleared."))

	case "model":
		if len(rest) == 0 {
			fmt.Println(infoStyle.Render("Model: " + cfg.API.Model))
		} else {
			cfg.API.Model = rest[0]
			conv.Model = rest[0]
			fmt.Println(infoStyle.Render("Switched model to " + rest[0]))
		}

	case "history":
		for _, msg := range conv.GetHistory() {
			fmt.Printf("%s %s\n",
				promptStyle.Render("["+msg.Role.DisplayName()+"]"),
				msg.Preview(100))
		}

	case "export":
		format := "markdown"
		if len(rest) > 0 {
			format = rest[0]
		}
		opts := export.DefaultOptions()
		if cfg.Export.OutputDir != "" {
			opts.OutputDir = cfg.Export.OutputDir
		}
		path, err := exportAs(conv, format, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, replErrorStyle.Render("Export failed: ")+err.Error())
		} else {
			fmt.Println(infoStyle.Render("Exported to " + path))
		}

	case "quit", "q", "exit":
		fmt.Println(infoStyle.Render("Goodbye."))
		return true

	default:
		fmt.Fprintln(os.Stderr, replErrorStyle.Render("Unknown command: /"+name))
	}
	return false
}

// exportAs writes the conversation in the requested format.
func exportAs(conv *model.Conversation, format string, opts *export.Options) (string, error) {
	switch format {
	case "json":
		return export.ExportJSON(conv, opts)
	case "text", "txt":
		return export.ExportText(conv, opts)
	default:
		return export.ExportMarkdown(conv, opts)
	}
}

// saveIfEnabled persists the conversation when history is on and there is
// something worth keeping.
func saveIfEnabled(store *storage.Store, conv *model.Conversation) {
	if store == nil || conv.IsEmpty() {
		return
	}
	if err := store.Save(conv); err != nil {
		fmt.Fprintln(os.Stderr, replErrorStyle.Render("Could not save conversation: ")+err.Error())
	}
}

// printWelcome prints the session banner.
func printWelcome(cfg *config.Config, client *api.Client) {
	fmt.Println(welcomeStyle.Render("palaver chat"))
	fmt.Println(infoStyle.Render("Model: " + cfg.API.Model + "  Endpoint: " + client.Endpoint()))
	fmt.Println(infoStyle.Render("Type /help for commands, Ctrl+D to exit."))
	fmt.Println()
}
