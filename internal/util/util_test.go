// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// TRUNCATION TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		s    string
		max  int
		want string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"negative max", "hello", -1, ""},
		{"tiny max no ellipsis", "hello", 2, "he"},
		{"unicode safe", "héllo wörld", 8, "héllo..."},
		{"cjk safe", "你好世界你好世界", 5, "你好..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateRunes(tc.s, tc.max)
			if got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.s, tc.max, got, tc.want)
			}
		})
	}
}

func TestTruncateRunesNoEllipsis(t *testing.T) {
	got := TruncateRunesNoEllipsis("hello world", 5)
	if got != "hello" {
		t.Errorf("TruncateRunesNoEllipsis = %q, want 'hello'", got)
	}
}

func TestTruncateWidth_CJK(t *testing.T) {
	// Each CJK character is 2 columns wide
	got := TruncateWidth("你好世界", 4)
	if StringWidth(got) > 4 {
		t.Errorf("TruncateWidth result width = %d, want <= 4", StringWidth(got))
	}

	// Short strings are unchanged
	if got := TruncateWidth("hi", 10); got != "hi" {
		t.Errorf("TruncateWidth('hi', 10) = %q, want 'hi'", got)
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"hello", 5},
		{"", 0},
		{"你好", 4},
	}

	for _, tc := range tests {
		if got := StringWidth(tc.s); got != tc.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tc.s, got, tc.want)
		}
	}
}

// =============================================================================
// WORD WRAP TESTS
// =============================================================================

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{"fits on one line", "hello world", 20, "hello world"},
		{"wraps at space", "hello world", 6, "hello\nworld"},
		{"preserves newlines", "a\nb", 10, "a\nb"},
		{"zero width unchanged", "hello", 0, "hello"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WordWrap(tc.s, tc.width)
			if got != tc.want {
				t.Errorf("WordWrap(%q, %d) = %q, want %q", tc.s, tc.width, got, tc.want)
			}
		})
	}
}

func TestWordWrap_LongWord(t *testing.T) {
	got := WordWrap("abcdefghij", 4)
	for _, line := range strings.Split(got, "\n") {
		if StringWidth(line) > 4 {
			t.Errorf("line %q exceeds width 4", line)
		}
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "out.txt")

	if err := AtomicWriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("content = %q, want 'content'", string(data))
	}

	// Overwrite leaves only the new content
	if err := AtomicWriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "updated" {
		t.Errorf("content after overwrite = %q, want 'updated'", string(data))
	}
}
