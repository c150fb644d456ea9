// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/palaver/internal/api"
	"github.com/morganforge/palaver/internal/config"
	"github.com/morganforge/palaver/internal/logging"
	"github.com/morganforge/palaver/internal/model"
	"github.com/morganforge/palaver/internal/storage"
	"github.com/morganforge/palaver/internal/ui/components"
	"github.com/morganforge/palaver/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // Completion request in flight
	StateError                // Last request failed
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	conversation *model.Conversation

	// Single-flight tracking. nextSeq is the sequence assigned to the next
	// request; inFlightSeq is the sequence of the request currently out, or
	// zero when idle. A CompletionMsg with any other sequence is stale.
	nextSeq     uint64
	inFlightSeq uint64

	// Dependencies
	client *api.Client
	cfg    *config.Config
	logger *logging.Logger
	store  *storage.Store

	// UI components
	viewport  viewport.Model
	input     textinput.Model
	spinner   components.Spinner
	statusBar *components.StatusBar
	toasts    *components.ToastManager
	msgList   *components.MessageList

	// Key bindings
	keyMap KeyMap

	// Help overlay
	showHelp bool

	// Last error for the status bar
	lastErr error
}

// New creates a chat model wired to the given client and configuration.
// store may be nil when history persistence is disabled. A nil logger is
// replaced with a discard logger.
func New(client *api.Client, cfg *config.Config, store *storage.Store, logger *logging.Logger, theme *styles.Theme) Model {
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 8192
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	bar := components.NewStatusBar(theme)
	bar.SetModel(cfg.API.Model)
	if client != nil {
		bar.SetEndpoint(client.Endpoint())
	}

	conv := model.NewConversationWithModel(cfg.API.Model)
	conv.SystemPrompt = cfg.API.SystemPrompt

	list := components.NewMessageList(theme)
	list.ShowTime = cfg.UI.ShowTimestamps

	return Model{
		state:        StateReady,
		theme:        theme,
		conversation: conv,
		nextSeq:      1,
		client:       client,
		cfg:          cfg,
		logger:       logger,
		store:        store,
		viewport:     vp,
		input:        ti,
		spinner:      components.NewSpinner(theme),
		statusBar:    bar,
		toasts:       components.NewToastManager(),
		msgList:      list,
		keyMap:       DefaultKeyMap(),
	}
}

// Init starts the toast ticker.
func (m Model) Init() tea.Cmd {
	return components.ToastTickCmd()
}

// Conversation returns the active conversation.
func (m Model) Conversation() *model.Conversation {
	return m.conversation
}

// State returns the current view state.
func (m Model) State() State {
	return m.state
}

// buildOptions assembles request options from config.
func (m *Model) buildOptions() api.BuildOptions {
	return api.BuildOptions{
		Model:          m.cfg.API.Model,
		SystemPrompt:   m.cfg.API.SystemPrompt,
		Temperature:    m.cfg.API.Temperature,
		MaxTokens:      m.cfg.API.MaxTokens,
		IncludeHistory: m.cfg.API.IncludeHistory,
	}
}

// requestTimeout returns the configured round-trip timeout.
func (m *Model) requestTimeout() time.Duration {
	if m.cfg.API.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(m.cfg.API.TimeoutSecs) * time.Second
}

// startNewConversation replaces the active conversation with an empty one.
func (m *Model) startNewConversation() {
	m.conversation = model.NewConversationWithModel(m.cfg.API.Model)
	m.conversation.SystemPrompt = m.cfg.API.SystemPrompt
	m.inFlightSeq = 0
	m.state = StateReady
	m.lastErr = nil
	m.spinner.Stop()
	m.refreshViewport()
}

// refreshViewport re-renders the message list into the viewport and keeps
// the view pinned to the newest message.
func (m *Model) refreshViewport() {
	m.msgList.SetWidth(m.viewport.Width)
	m.viewport.SetContent(m.msgList.Render(m.conversation.GetHistory()))
	m.viewport.GotoBottom()
}

// syncStatusBar mirrors the model state into the status bar.
func (m *Model) syncStatusBar() {
	m.statusBar.SetMessageCount(m.conversation.MessageCount())
	switch m.state {
	case StateWaiting:
		m.statusBar.SetStatus(components.StatusWaiting)
	case StateError:
		m.statusBar.SetStatus(components.StatusError)
	default:
		m.statusBar.SetStatus(components.StatusReady)
	}
}
