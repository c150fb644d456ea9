// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/morganforge/palaver/internal/config"
	"github.com/morganforge/palaver/internal/model"
	"github.com/morganforge/palaver/internal/storage"
	"github.com/morganforge/palaver/internal/util"
)

// =============================================================================
// HISTORY COMMAND
// =============================================================================

// HandleHistory dispatches the history subcommands: list, search, show,
// delete, clear.
func HandleHistory(args Args) error {
	cfg := config.Global()
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled; set history.enabled = true in the config")
	}

	dbPath, err := cfg.HistoryDBPath()
	if err != nil {
		return fmt.Errorf("resolving history database path: %w", err)
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	sub := args.Subcommand
	if sub == "" {
		sub = "list"
	}

	switch sub {
	case "list", "ls":
		return historyList(store)
	case "search":
		if len(args.Raw) == 0 {
			return fmt.Errorf("usage: palaver history search <query>")
		}
		return historySearch(store, strings.Join(args.Raw, " "))
	case "show":
		if len(args.Raw) == 0 {
			return fmt.Errorf("usage: palaver history show <id>")
		}
		return historyShow(store, args.Raw[0], args)
	case "delete", "rm":
		if len(args.Raw) == 0 {
			return fmt.Errorf("usage: palaver history delete <id>")
		}
		return historyDelete(store, args.Raw[0])
	case "clear":
		return historyClear(store)
	default:
		return fmt.Errorf("unknown history subcommand %q (try list, search, show, delete, clear)", sub)
	}
}

func historyList(store *storage.Store) error {
	metas, err := store.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Println("No saved conversations.")
		return nil
	}
	printMetaTable(metas)
	return nil
}

func historySearch(store *storage.Store, query string) error {
	metas, err := store.Search(query)
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Printf("No conversations matching %q.\n", query)
		return nil
	}
	printMetaTable(metas)
	return nil
}

func historyShow(store *storage.Store, id string, args Args) error {
	conv, err := store.Load(id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s, %d messages)\n\n", conv.GetTitle(), conv.Model, conv.MessageCount())
	for _, msg := range conv.GetHistory() {
		fmt.Printf("--- %s ---\n", msg.Role.DisplayName())
		if msg.Role == model.RoleAssistant {
			displayResponse(msg.Content, args.Plain)
		} else {
			fmt.Println(msg.Content)
		}
		fmt.Println()
	}
	return nil
}

func historyDelete(store *storage.Store, id string) error {
	if err := store.Delete(id); err != nil {
		return err
	}
	fmt.Printf("Deleted conversation %s.\n", id)
	return nil
}

func historyClear(store *storage.Store) error {
	count, err := store.Count()
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("History is already empty.")
		return nil
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Printf("Deleted %d conversation(s).\n", count)
	return nil
}

// printMetaTable writes a fixed-width listing to stdout.
func printMetaTable(metas []model.ConversationMeta) {
	w := os.Stdout
	fmt.Fprintf(w, "%-36s  %-28s  %5s  %-16s\n", "ID", "TITLE", "MSGS", "UPDATED")
	for _, m := range metas {
		fmt.Fprintf(w, "%-36s  %-28s  %5d  %-16s\n",
			m.ID,
			util.TruncateRunes(m.Title, 28),
			m.MessageCount,
			m.UpdatedAt.Format("2006-01-02 15:04"))
	}
}
