// palaver - a terminal chat client for OpenAI-compatible endpoints.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/palaver/internal/api"
	"github.com/morganforge/palaver/internal/cli"
	"github.com/morganforge/palaver/internal/config"
	"github.com/morganforge/palaver/internal/logging"
	"github.com/morganforge/palaver/internal/storage"
	"github.com/morganforge/palaver/internal/ui/chat"
	"github.com/morganforge/palaver/internal/ui/styles"
)

func main() {
	cmd, args := cli.Parse()

	// Load config once; Global() serves it to every handler.
	cfg, err := config.Load()
	if err != nil {
		// A broken config file should not make the binary unusable.
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.Default()
	}
	config.SetGlobal(cfg)

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion()

	case cli.CmdHelp:
		cli.PrintUsage()

	case cli.CmdAsk:
		exitOnError(cli.HandleAsk(args))

	case cli.CmdChat:
		exitOnError(cli.HandleChat(args))

	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))

	case cli.CmdHistory:
		exitOnError(cli.HandleHistory(args))

	case cli.CmdTUI:
		exitOnError(runTUI(cfg, args))

	default:
		cli.PrintUsage()
		os.Exit(1)
	}
}

// runTUI wires the pieces together and hands control to bubbletea.
func runTUI(cfg *config.Config, args cli.Args) error {
	applyTUIOverrides(cfg, args)

	logger := logging.Discard()
	if cfg.Log.Enabled {
		if path, err := cfg.LogPath(); err == nil {
			if l, lerr := logging.New(path); lerr == nil {
				logger = l
			}
		}
	}

	client, err := api.NewClient(&api.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.APIKey,
		Timeout: requestTimeout(cfg),
	})
	if err != nil {
		return fmt.Errorf("invalid endpoint configuration: %w", err)
	}

	var store *storage.Store
	if cfg.History.Enabled {
		if dbPath, err := cfg.HistoryDBPath(); err == nil {
			if s, serr := storage.Open(dbPath); serr == nil {
				store = s
				defer store.Close()
			} else {
				logger.Errorf("history database unavailable: %v", serr)
			}
		}
	}

	m := chat.New(client, cfg, store, logger, styles.NewTheme())
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Pick up config edits while the TUI runs. The watcher installs the
	// reloaded config globally and pushes it into the session; the chat
	// model decides which fields apply live.
	watcher, werr := config.Watch(func(next *config.Config) {
		p.Send(chat.ConfigReloadedMsg{Cfg: next})
	}, func(werr error) {
		logger.Errorf("config reload failed: %v", werr)
	})
	if werr == nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

// applyTUIOverrides maps command line flags onto the loaded config.
func applyTUIOverrides(cfg *config.Config, args cli.Args) {
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

// requestTimeout converts the configured timeout, falling back to the
// client default for unset or invalid values.
func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.API.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(cfg.API.TimeoutSecs) * time.Second
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
