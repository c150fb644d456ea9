// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchDir_ReloadsOnWrite(t *testing.T) {
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	dir := t.TempDir()
	reloaded := make(chan *Config, 1)

	w, err := WatchDir(dir, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, func(err error) {
		t.Logf("reload error: %v", err)
	})
	if err != nil {
		t.Fatalf("WatchDir failed: %v", err)
	}
	defer w.Close()

	cfg := Default()
	cfg.API.Model = "reloaded-model"
	if err := SaveTOML(cfg, filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	select {
	case got := <-reloaded:
		if got.API.Model != "reloaded-model" {
			t.Errorf("reloaded Model = %q, want %q", got.API.Model, "reloaded-model")
		}
		if Global().API.Model != "reloaded-model" {
			t.Errorf("Global().API.Model = %q, want the reloaded value", Global().API.Model)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed after config write")
	}
}

func TestWatchDir_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	reloaded := make(chan *Config, 1)

	w, err := WatchDir(dir, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("WatchDir failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case <-reloaded:
		t.Error("unrelated file triggered a reload")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatchDir_InvalidConfigReportsError(t *testing.T) {
	dir := t.TempDir()
	errs := make(chan error, 1)
	reloaded := make(chan *Config, 1)

	w, err := WatchDir(dir, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	}, func(err error) {
		select {
		case errs <- err:
		default:
		}
	})
	if err != nil {
		t.Fatalf("WatchDir failed: %v", err)
	}
	defer w.Close()

	bad := []byte("api]\nthis is not toml")
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), bad, 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case err := <-errs:
		if err == nil {
			t.Error("expected a non-nil reload error")
		}
	case <-reloaded:
		t.Error("invalid config should not reload")
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported for invalid config")
	}
}
