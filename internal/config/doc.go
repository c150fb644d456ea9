// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management
// for palaver.
//
// Supports both TOML and JSON configuration formats, with sensible
// defaults, environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.palaver/config.toml
//   - ~/.palaver/config.json
//   - Built-in defaults
//
// Environment variables with the PALAVER_ prefix override file values,
// see ApplyEnvOverrides for the full list.
package config
