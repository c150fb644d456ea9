// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/morganforge/palaver/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig dispatches the config subcommands: show, init, path.
func HandleConfig(args Args) error {
	sub := args.Subcommand
	if sub == "" {
		sub = "show"
	}

	switch sub {
	case "show":
		// String() redacts the API key.
		fmt.Println(config.Global().String())
		return nil

	case "init":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}
		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Printf("Wrote default config to %s\n", path)
		return nil

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	default:
		return fmt.Errorf("unknown config subcommand %q (try show, init, path)", sub)
	}
}
