// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// Watcher reloads the global configuration when the config file changes
// on disk.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the default config directory for changes. onReload
// is called after each successful reload; onError is called when a reload
// fails. Either callback may be nil.
//
// The watcher runs until Close is called.
func Watch(onReload func(*Config), onError func(error)) (*Watcher, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return WatchDir(dir, onReload, onError)
}

// WatchDir watches dir for config.toml/config.json changes. A changed file
// is reloaded with full validation and installed as the global config
// before onReload fires.
func WatchDir(dir string, onReload func(*Config), onError func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory rather than the files themselves: editors that
	// rename-over or atomic writers break per-file watches.
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:  fsw,
		done: make(chan struct{}),
	}
	go w.loop(onReload, onError)
	return w, nil
}

func (w *Watcher) loop(onReload func(*Config), onError func(error)) {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isConfigFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cfg, err := LoadFromPath(event.Name)
			if err != nil {
				if onError != nil {
					onError(err)
				}
				continue
			}
			SetGlobal(cfg)
			if onReload != nil {
				onReload(cfg)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	return base == "config.toml" || base == "config.json"
}
