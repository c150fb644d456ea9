// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information, overwritten at build time by the linker.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMANDS
// =============================================================================

// Command identifies the subcommand selected on the command line.
type Command int

const (
	CmdTUI Command = iota // default when no subcommand is given
	CmdAsk
	CmdChat
	CmdConfig
	CmdHistory
	CmdVersion
	CmdHelp
)

// Args holds parsed command line arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Plain   bool // disable markdown rendering even on a TTY
	Model   string
	BaseURL string
	System  string

	// Command-specific
	Query      string
	Subcommand string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `palaver - terminal chat client for OpenAI-compatible endpoints

Usage:
  palaver                    Start the TUI (default)
  palaver ask "question"     Ask a single question and print the answer
  palaver chat               Line-based interactive chat
  palaver config [show|init|path]
                             Configuration management
  palaver history [list|search|show|delete|clear]
                             Saved conversation management
  palaver version            Print version information
  palaver help               Show this help

Global flags:
  -m, --model NAME     Override the configured model
  --base-url URL       Override the configured endpoint
  --system PROMPT      Override the configured system prompt
  --plain              Disable markdown rendering
  -q, --quiet          Minimal output
  -v, --verbose        Verbose output

Configuration is read from ~/.palaver/config.toml (or config.json) and
can be overridden with PALAVER_* environment variables.
`

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("palaver %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse reads os.Args and returns the selected command plus its arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split out from Parse for tests.
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := remaining[0]
	rest := remaining[1:]

	switch cmd {
	case "ask":
		args.Query = strings.Join(rest, " ")
		args.Raw = rest
		return CmdAsk, args

	case "chat":
		args.Raw = rest
		return CmdChat, args

	case "config":
		if len(rest) > 0 {
			args.Subcommand = rest[0]
			args.Raw = rest[1:]
		}
		return CmdConfig, args

	case "history", "sessions":
		if len(rest) > 0 {
			args.Subcommand = rest[0]
			args.Raw = rest[1:]
		}
		return CmdHistory, args

	case "version", "--version", "-V":
		return CmdVersion, args

	case "help", "--help", "-h":
		return CmdHelp, args
	}

	// Unknown word: treat the whole line as an ask query. This makes
	// `palaver "why is the sky blue"` do the obvious thing.
	args.Query = strings.Join(remaining, " ")
	args.Raw = remaining
	return CmdAsk, args
}

// parseGlobalFlags strips global flags from argv and returns what is left.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	var remaining []string

	i := 0
	for i < len(argv) {
		arg := argv[i]

		// --flag=value form
		if strings.HasPrefix(arg, "--") && strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			if consumeFlagValue(&args, parts[0], parts[1]) {
				i++
				continue
			}
		}

		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--plain":
			args.Plain = true
		case "-m", "--model", "--base-url", "--system":
			if i+1 < len(argv) {
				consumeFlagValue(&args, arg, argv[i+1])
				i++
			}
		default:
			remaining = append(remaining, arg)
		}
		i++
	}

	return remaining, args
}

// consumeFlagValue assigns a value-carrying global flag. Returns false for
// unknown flags so they fall through as positional arguments.
func consumeFlagValue(args *Args, flag, value string) bool {
	switch flag {
	case "-m", "--model":
		args.Model = value
	case "--base-url":
		args.BaseURL = value
	case "--system":
		args.System = value
	default:
		return false
	}
	return true
}
