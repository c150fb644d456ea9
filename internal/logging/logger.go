// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// LEVELS
// =============================================================================

// Level classifies a log line.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// =============================================================================
// LOGGER
// =============================================================================

// Logger appends timestamped diagnostic lines to a file.
//
// The file handle is acquired per write and released before the write
// returns. A disabled Logger (or the zero value) discards everything,
// which keeps call sites free of nil checks.
type Logger struct {
	mu      sync.Mutex
	path    string
	enabled bool
}

// New creates a Logger writing to path, creating the parent directory
// if needed.
func New(path string) (*Logger, error) {
	if path == "" {
		return nil, fmt.Errorf("log path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &Logger{path: path, enabled: true}, nil
}

// Discard returns a Logger that drops all writes.
func Discard() *Logger {
	return &Logger{}
}

// Path returns the log file path, or "" for a discarding logger.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// =============================================================================
// WRITING
// =============================================================================

// Log writes one timestamped line at the given level.
func (l *Logger) Log(level Level, msg string) {
	if l == nil || !l.enabled {
		return
	}

	// Keep the log one line per entry
	msg = strings.ReplaceAll(msg, "\n", " ")
	line := fmt.Sprintf("%s [%s] %s\n", time.Now().Format(time.RFC3339), level, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		// The diagnostic log must never take the application down
		return
	}
	defer f.Close()

	_, _ = f.WriteString(line)
}

// Info writes an informational line.
func (l *Logger) Info(msg string) {
	l.Log(LevelInfo, msg)
}

// Infof writes a formatted informational line.
func (l *Logger) Infof(format string, args ...any) {
	l.Log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn writes a warning line.
func (l *Logger) Warn(msg string) {
	l.Log(LevelWarn, msg)
}

// Error writes an error line.
func (l *Logger) Error(msg string) {
	l.Log(LevelError, msg)
}

// Errorf writes a formatted error line.
func (l *Logger) Errorf(format string, args ...any) {
	l.Log(LevelError, fmt.Sprintf(format, args...))
}
