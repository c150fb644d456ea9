// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/morganforge/palaver/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete palaver configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// API configuration for the chat completion server
	API APIConfig `toml:"api" json:"api"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`

	// History configuration for conversation persistence
	History HistoryConfig `toml:"history" json:"history"`

	// Export configuration
	Export ExportConfig `toml:"export" json:"export"`
}

// APIConfig contains the chat server connection settings.
type APIConfig struct {
	// BaseURL is the OpenAI-compatible server base URL, without the
	// /chat/completions suffix
	BaseURL string `toml:"base_url" json:"base_url"`
	// APIKey is sent as a bearer token when non-empty
	APIKey string `toml:"api_key" json:"api_key"`
	// Model name sent with every request
	Model string `toml:"model" json:"model"`
	// Temperature for sampling, valid range 0.0-2.0
	Temperature float64 `toml:"temperature" json:"temperature"`
	// MaxTokens caps the completion length
	MaxTokens int `toml:"max_tokens" json:"max_tokens"`
	// TimeoutSecs is the request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// SystemPrompt prepended to every request. Empty disables the
	// system message entirely.
	SystemPrompt string `toml:"system_prompt" json:"system_prompt"`
	// IncludeHistory replays prior conversation turns with each request.
	// Off by default so each prompt stands alone.
	IncludeHistory bool `toml:"include_history" json:"include_history"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// SyntaxStyle is the chroma style used for code highlighting
	SyntaxStyle string `toml:"syntax_style" json:"syntax_style"`
	// ShowTimestamps displays message timestamps in the transcript
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// LogConfig contains client log settings.
type LogConfig struct {
	// Enabled turns file logging on
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the log file location (empty = ~/.palaver/palaver.log)
	Path string `toml:"path" json:"path"`
}

// HistoryConfig contains conversation persistence settings.
type HistoryConfig struct {
	// Enabled turns conversation persistence on
	Enabled bool `toml:"enabled" json:"enabled"`
	// DBPath is the SQLite database location (empty = ~/.palaver/history.db)
	DBPath string `toml:"db_path" json:"db_path"`
}

// ExportConfig contains transcript export settings.
type ExportConfig struct {
	// OutputDir is where exported transcripts are written (empty = cwd)
	OutputDir string `toml:"output_dir" json:"output_dir"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		API: APIConfig{
			BaseURL:        "http://127.0.0.1:8080",
			Model:          "gpt-3.5-turbo",
			Temperature:    0.1,
			MaxTokens:      2048,
			TimeoutSecs:    60,
			SystemPrompt:   "You are a helpful coding assistant. Answer concisely and format code in fenced blocks.",
			IncludeHistory: false,
		},

		UI: UIConfig{
			Theme:          "dark",
			SyntaxStyle:    "monokai",
			ShowTimestamps: true,
			CompactMode:    false,
		},

		Log: LogConfig{
			Enabled: false,
			Path:    "",
		},

		History: HistoryConfig{
			Enabled: true,
			DBPath:  "",
		},

		Export: ExportConfig{
			OutputDir: "",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the palaver configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".palaver"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only) to protect API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// LogPath resolves the log file path, falling back to the default location.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "palaver.log"), nil
}

// HistoryDBPath resolves the history database path, falling back to the
// default location.
func (c *Config) HistoryDBPath() (string, error) {
	if c.History.DBPath != "" {
		return c.History.DBPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// finishLoad applies env overrides, defaults, and validation to a loaded config.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
// SECURITY: Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The extension selects the format, defaulting to TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# palaver configuration file")
	fmt.Fprintln(file, "# Generated by palaver - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Base URL must parse and carry an http(s) scheme with a host
	if c.API.BaseURL == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: "must not be empty",
		})
	} else {
		parsed, err := url.Parse(c.API.BaseURL)
		switch {
		case err != nil:
			errs = append(errs, ValidationError{
				Field:   "api.base_url",
				Message: fmt.Sprintf("invalid URL: %v", err),
			})
		case parsed.Scheme != "http" && parsed.Scheme != "https":
			errs = append(errs, ValidationError{
				Field:   "api.base_url",
				Message: fmt.Sprintf("scheme must be http or https, got '%s'", parsed.Scheme),
			})
		case parsed.Host == "":
			errs = append(errs, ValidationError{
				Field:   "api.base_url",
				Message: "URL has no host",
			})
		}
	}

	if c.API.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "api.model",
			Message: "must not be empty",
		})
	}

	if c.API.Temperature < 0 || c.API.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "api.temperature",
			Message: fmt.Sprintf("must be between 0.0 and 2.0, got %v", c.API.Temperature),
		})
	}

	if c.API.MaxTokens <= 0 {
		errs = append(errs, ValidationError{
			Field:   "api.max_tokens",
			Message: fmt.Sprintf("must be positive, got %d", c.API.MaxTokens),
		})
	}

	if c.API.TimeoutSecs <= 0 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: fmt.Sprintf("must be positive, got %d", c.API.TimeoutSecs),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Model == "" {
		c.API.Model = defaults.API.Model
	}
	if c.API.Temperature == 0 {
		c.API.Temperature = defaults.API.Temperature
	}
	if c.API.MaxTokens == 0 {
		c.API.MaxTokens = defaults.API.MaxTokens
	}
	if c.API.TimeoutSecs == 0 {
		c.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.SyntaxStyle == "" {
		c.UI.SyntaxStyle = defaults.UI.SyntaxStyle
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - PALAVER_BASE_URL: overrides api.base_url
//   - PALAVER_API_KEY: overrides api.api_key
//   - PALAVER_MODEL: overrides api.model
//   - PALAVER_SYSTEM_PROMPT: overrides api.system_prompt
//   - PALAVER_INCLUDE_HISTORY: "1" or "true" to replay history
//   - PALAVER_TIMEOUT_SECS: overrides api.timeout_secs
//   - PALAVER_LOG: "1" or "true" to enable file logging
//   - PALAVER_LOG_PATH: overrides log.path
//   - PALAVER_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if baseURL := os.Getenv("PALAVER_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}

	if key := os.Getenv("PALAVER_API_KEY"); key != "" {
		c.API.APIKey = key
	}

	if model := os.Getenv("PALAVER_MODEL"); model != "" {
		c.API.Model = model
	}

	if prompt := os.Getenv("PALAVER_SYSTEM_PROMPT"); prompt != "" {
		c.API.SystemPrompt = prompt
	}

	if includeHistory := os.Getenv("PALAVER_INCLUDE_HISTORY"); includeHistory != "" {
		c.API.IncludeHistory = envBool(includeHistory)
	}

	if timeout := os.Getenv("PALAVER_TIMEOUT_SECS"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			c.API.TimeoutSecs = secs
		}
	}

	if logEnabled := os.Getenv("PALAVER_LOG"); logEnabled != "" {
		c.Log.Enabled = envBool(logEnabled)
	}

	if logPath := os.Getenv("PALAVER_LOG_PATH"); logPath != "" {
		c.Log.Path = logPath
	}

	if theme := os.Getenv("PALAVER_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

func envBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// =============================================================================
// CLONE AND STRING
// =============================================================================

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for debugging.
// SECURITY: Redacts the API key to prevent accidental exposure in logs.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.API.APIKey != "" {
		safe.API.APIKey = "[REDACTED]"
	}

	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
// Marks the lazy load as done so a later Global() cannot clobber the
// explicitly installed config.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
