// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.API.IncludeHistory {
		t.Error("IncludeHistory should default to false")
	}
	if cfg.API.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want 0.1", cfg.API.Temperature)
	}
	if cfg.API.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d, want 2048", cfg.API.MaxTokens)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url"},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }, "api.base_url"},
		{"no host", func(c *Config) { c.API.BaseURL = "http://" }, "api.base_url"},
		{"empty model", func(c *Config) { c.API.Model = "" }, "api.model"},
		{"negative temperature", func(c *Config) { c.API.Temperature = -0.5 }, "api.temperature"},
		{"temperature too high", func(c *Config) { c.API.Temperature = 2.5 }, "api.temperature"},
		{"zero max tokens", func(c *Config) { c.API.MaxTokens = 0 }, "api.max_tokens"},
		{"negative max tokens", func(c *Config) { c.API.MaxTokens = -1 }, "api.max_tokens"},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }, "api.timeout_secs"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("error type = %T, want ValidateErrors", err)
			}
			found := false
			for _, ve := range verrs {
				if ve.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %q in %v", tc.field, verrs)
			}
		})
	}
}

func TestValidate_BoundaryTemperatures(t *testing.T) {
	for _, temp := range []float64{0, 2} {
		cfg := Default()
		cfg.API.Temperature = temp
		if err := cfg.Validate(); err != nil {
			t.Errorf("temperature %v should be valid: %v", temp, err)
		}
	}
}

func TestSetDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.API.BaseURL == "" {
		t.Error("BaseURL not filled")
	}
	if cfg.API.Model == "" {
		t.Error("Model not filled")
	}
	if cfg.API.MaxTokens == 0 {
		t.Error("MaxTokens not filled")
	}
	if cfg.UI.SyntaxStyle == "" {
		t.Error("SyntaxStyle not filled")
	}
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.API.Model = "local-model"
	cfg.SetDefaults()

	if cfg.API.Model != "local-model" {
		t.Errorf("Model = %q, want local-model", cfg.API.Model)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PALAVER_BASE_URL", "http://example.com/v1")
	t.Setenv("PALAVER_API_KEY", "sk-env")
	t.Setenv("PALAVER_MODEL", "env-model")
	t.Setenv("PALAVER_INCLUDE_HISTORY", "true")
	t.Setenv("PALAVER_TIMEOUT_SECS", "30")
	t.Setenv("PALAVER_LOG", "1")
	t.Setenv("PALAVER_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.BaseURL != "http://example.com/v1" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.APIKey != "sk-env" {
		t.Errorf("APIKey = %q", cfg.API.APIKey)
	}
	if cfg.API.Model != "env-model" {
		t.Errorf("Model = %q", cfg.API.Model)
	}
	if !cfg.API.IncludeHistory {
		t.Error("IncludeHistory not overridden")
	}
	if cfg.API.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", cfg.API.TimeoutSecs)
	}
	if !cfg.Log.Enabled {
		t.Error("Log.Enabled not overridden")
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
}

func TestApplyEnvOverrides_BadTimeoutIgnored(t *testing.T) {
	t.Setenv("PALAVER_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.TimeoutSecs != Default().API.TimeoutSecs {
		t.Errorf("TimeoutSecs = %d, want default", cfg.API.TimeoutSecs)
	}
}

func TestSaveTOMLAndLoadTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	want := Default()
	want.API.Model = "round-trip-model"
	want.API.IncludeHistory = true
	want.UI.Theme = "light"

	if err := SaveTOML(want, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	got := Default()
	if err := LoadTOML(got, path); err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}

	if got.API.Model != "round-trip-model" {
		t.Errorf("Model = %q", got.API.Model)
	}
	if !got.API.IncludeHistory {
		t.Error("IncludeHistory lost in round trip")
	}
	if got.UI.Theme != "light" {
		t.Errorf("Theme = %q", got.UI.Theme)
	}
}

func TestSaveTOML_RestrictivePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}
}

func TestSaveJSONAndLoadJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	want := Default()
	want.API.BaseURL = "https://api.example.com/v1"

	if err := SaveJSON(want, path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	got := Default()
	if err := LoadJSON(got, path); err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}

	if got.API.BaseURL != "https://api.example.com/v1" {
		t.Errorf("BaseURL = %q", got.API.BaseURL)
	}
}

func TestLoadFromPath_ValidatesAfterLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	bad := `[api]
base_url = "ftp://nope"
`
	if err := os.WriteFile(path, []byte(bad), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("expected validation error for bad base_url")
	}
	if !strings.Contains(err.Error(), "api.base_url") {
		t.Errorf("error = %v, want mention of api.base_url", err)
	}
}

func TestString_RedactsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.API.APIKey = "sk-secret-value"

	s := cfg.String()
	if strings.Contains(s, "sk-secret-value") {
		t.Error("String() leaked the API key")
	}
	if !strings.Contains(s, "[REDACTED]") {
		t.Error("String() should mark the key as redacted")
	}
}

func TestSetGlobal_SurvivesFirstGlobalCall(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	cfg := Default()
	cfg.API.Model = "pinned-model"
	SetGlobal(cfg)

	if got := Global().API.Model; got != "pinned-model" {
		t.Errorf("Global().API.Model = %q, want the installed config", got)
	}
}
