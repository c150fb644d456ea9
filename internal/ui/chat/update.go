// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/palaver/internal/api"
	"github.com/morganforge/palaver/internal/export"
	"github.com/morganforge/palaver/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages through the chat state machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		return next, cmd

	case CompletionMsg:
		next, cmd := m.handleCompletion(msg)
		return next, cmd

	case ConfigReloadedMsg:
		next, cmd := m.handleConfigReloaded(msg)
		return next, cmd

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case ConversationSavedMsg:
		if msg.Err != nil {
			m.logger.Errorf("save failed: %v", msg.Err)
			m.toasts.AddError("Could not save conversation: " + msg.Err.Error())
		}
		return m, nil

	case ConversationExportedMsg:
		if msg.Err != nil {
			m.toasts.AddError("Export failed: " + msg.Err.Error())
		} else {
			m.toasts.AddSuccess("Exported to " + msg.Path)
		}
		return m, nil

	case CopyResultMsg:
		if msg.Err != nil {
			m.toasts.AddError("Copy failed: " + msg.Err.Error())
		} else {
			m.toasts.AddStatus("Copied to clipboard")
		}
		return m, nil
	}

	// Remaining messages drive the component animations.
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// resize recomputes the layout for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	// Header, spinner line, input, and status bar take fixed rows.
	viewportHeight := height - 7
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	m.viewport.Width = width
	m.viewport.Height = viewportHeight
	m.input.Width = width - 6
	m.statusBar.SetWidth(width)
	m.theme.SetSize(width, height)
	m.refreshViewport()
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.NewConv):
		m.startNewConversation()
		m.toasts.AddStatus("Started a new conversation")
		return m, nil

	case key.Matches(msg, m.keyMap.Clear):
		m.conversation.ClearHistory()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.CopyLast):
		last := m.conversation.GetLastAssistantMessage()
		if last == nil {
			m.toasts.AddStatus("Nothing to copy yet")
			return m, nil
		}
		return m, CopyMessageCmd(last)

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Up),
		key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp),
		key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Home),
		key.Matches(msg, m.keyMap.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMIT PATH
// =============================================================================

// handleSubmit validates the input line and either runs a slash command or
// starts a completion request.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	content := m.input.Value()

	if strings.HasPrefix(strings.TrimSpace(content), "/") {
		m.input.Reset()
		return m.handleSlashCommand(strings.TrimSpace(content))
	}

	if m.state == StateWaiting {
		m.toasts.AddStatus("Still waiting for the previous reply")
		return m, nil
	}

	// Build against the history as it stands; the prompt itself becomes the
	// final wire message.
	req, err := api.BuildRequest(content, m.conversation.GetHistory(), m.buildOptions())
	if err != nil {
		if api.IsEmptyInput(err) {
			m.toasts.AddStatus("Type a message first")
		} else {
			m.toasts.AddError(humanizeError(err))
		}
		return m, nil
	}

	m.conversation.AddUserMessage(content)
	m.input.Reset()

	seq := m.nextSeq
	m.nextSeq++
	m.inFlightSeq = seq
	m.state = StateWaiting
	m.lastErr = nil

	m.refreshViewport()
	m.syncStatusBar()
	m.logger.Infof("request %d: %d wire messages", seq, len(req.Messages))

	return m, tea.Batch(
		CompleteCmd(m.client, req, seq, m.requestTimeout()),
		m.spinner.Start(),
	)
}

// handleCompletion applies a finished request to the conversation.
//
// Stale results are dropped: only the result matching the in-flight
// sequence may touch the conversation. The waiting state is cleared
// unconditionally for a matching result, success or failure.
func (m Model) handleCompletion(msg CompletionMsg) (Model, tea.Cmd) {
	if msg.Seq != m.inFlightSeq {
		m.logger.Infof("discarding stale completion %d (in flight: %d)", msg.Seq, m.inFlightSeq)
		return m, nil
	}

	m.inFlightSeq = 0
	m.spinner.Stop()

	if msg.Err != nil {
		m.state = StateError
		m.lastErr = msg.Err
		m.logger.Errorf("completion %d failed: %v", msg.Seq, msg.Err)
		m.toasts.AddError(humanizeError(msg.Err))
		m.syncStatusBar()
		return m, nil
	}

	m.state = StateReady
	for _, content := range msg.Contents {
		m.conversation.AddAssistantMessage(content)
	}
	m.refreshViewport()
	m.syncStatusBar()

	if m.store != nil {
		return m, SaveConversationCmd(m.store, m.conversation)
	}
	return m, nil
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// handleConfigReloaded adopts a config reloaded from disk. The live HTTP
// client keeps its endpoint; a base URL change only takes effect on
// restart and gets a warning toast instead of a silent partial apply.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (Model, tea.Cmd) {
	if msg.Cfg == nil {
		return m, nil
	}

	endpointChanged := msg.Cfg.API.BaseURL != m.cfg.API.BaseURL
	m.cfg = msg.Cfg

	m.conversation.Model = m.cfg.API.Model
	m.msgList.ShowTime = m.cfg.UI.ShowTimestamps
	m.statusBar.SetModel(m.cfg.API.Model)
	m.refreshViewport()

	if endpointChanged {
		m.toasts.AddError("Endpoint changed in config. Restart to apply.")
	} else {
		m.toasts.AddStatus("Configuration reloaded")
	}
	m.logger.Info("configuration reloaded into session")
	return m, nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand dispatches "/name args" commands typed in the input.
func (m Model) handleSlashCommand(line string) (Model, tea.Cmd) {
	parts := strings.Fields(line)
	name := strings.TrimPrefix(parts[0], "/")
	args := parts[1:]

	switch name {
	case "help":
		m.showHelp = !m.showHelp
		return m, nil

	case "new":
		m.startNewConversation()
		return m, nil

	case "clear":
		m.conversation.ClearHistory()
		m.refreshViewport()
		return m, nil

	case "delete":
		last := m.conversation.GetLastMessage()
		if last == nil {
			m.toasts.AddStatus("Conversation is empty")
			return m, nil
		}
		m.conversation.RemoveMessage(last.ID)
		m.refreshViewport()
		m.syncStatusBar()
		m.toasts.AddStatus("Removed last message")
		return m, nil

	case "save":
		if m.store == nil {
			m.toasts.AddStatus("History is disabled")
			return m, nil
		}
		return m, SaveConversationCmd(m.store, m.conversation)

	case "export":
		format := "markdown"
		if len(args) > 0 {
			format = args[0]
		}
		opts := export.DefaultOptions()
		if m.cfg.Export.OutputDir != "" {
			opts.OutputDir = m.cfg.Export.OutputDir
		}
		return m, ExportConversationCmd(m.conversation, format, opts)

	case "model":
		if len(args) == 0 {
			m.toasts.AddStatus("Model: " + m.cfg.API.Model)
			return m, nil
		}
		m.cfg.API.Model = args[0]
		m.conversation.Model = args[0]
		m.statusBar.SetModel(args[0])
		m.toasts.AddSuccess("Switched model to " + args[0])
		return m, nil

	case "quit", "exit":
		return m, tea.Quit
	}

	m.toasts.AddError("Unknown command: /" + name)
	return m, nil
}

// =============================================================================
// ERROR TEXT
// =============================================================================

// humanizeError turns client errors into short user-facing messages.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	if ok, code := api.IsHTTPStatus(err); ok {
		return "Server returned HTTP " + strconv.Itoa(code)
	}
	switch {
	case api.IsTransport(err):
		return "Could not reach the server. Is it running?"
	case api.IsEmptyBody(err):
		return "Server returned an empty response"
	case api.IsDecode(err):
		return "Server response could not be decoded"
	case api.IsInvalidEndpoint(err):
		return "Endpoint URL is invalid. Check your configuration."
	}
	return err.Error()
}
