// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLogger_WritesTimestampedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palaver.log")

	logger, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Error("request failed")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	line := strings.TrimSpace(string(data))
	if !strings.HasSuffix(line, "[ERROR] request failed") {
		t.Errorf("line = %q, want suffix '[ERROR] request failed'", line)
	}

	// Line starts with a parseable RFC3339 timestamp
	ts := strings.SplitN(line, " ", 2)[0]
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("timestamp %q not RFC3339: %v", ts, err)
	}
}

func TestLogger_AppendsAcrossWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palaver.log")

	logger, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("first")
	logger.Info("second")

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "first") || !strings.Contains(lines[1], "second") {
		t.Errorf("lines out of order: %v", lines)
	}
}

func TestLogger_FlattensNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palaver.log")

	logger, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("multi\nline\nmessage")

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Errorf("line count = %d, want 1 (newlines flattened)", len(lines))
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palaver.log")

	logger, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("concurrent entry")
		}()
	}
	wg.Wait()

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 20 {
		t.Errorf("line count = %d, want 20", len(lines))
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, "[INFO] concurrent entry") {
			t.Errorf("malformed line: %q", line)
		}
	}
}

func TestDiscard_DropsWrites(t *testing.T) {
	logger := Discard()
	// Must not panic or create files
	logger.Info("dropped")
	logger.Errorf("dropped %d", 1)

	if logger.Path() != "" {
		t.Errorf("Path() = %q, want empty", logger.Path())
	}
}

func TestNew_EmptyPath(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("New(\"\") should fail")
	}
}
