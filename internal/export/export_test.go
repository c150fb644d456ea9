// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/morganforge/palaver/internal/model"
)

func testConversation() *model.Conversation {
	conv := model.NewConversationWithModel("gpt-3.5-turbo")
	conv.AddUserMessage("show me hello world in go")
	conv.AddAssistantMessage("Sure:\n```go\nfmt.Println(\"hello\")\n```\nThat prints hello.")
	return conv
}

func TestMarkdownExporter(t *testing.T) {
	content, err := NewMarkdownExporter(nil).Export(testConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	out := string(content)
	for _, want := range []string{
		"[User]",
		"[Assistant]",
		"```go",
		"show me hello world in go",
		"model: gpt-3.5-turbo",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestMarkdownExporter_NoMetadata(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeMetadata = false
	opts.IncludeTimestamps = false

	content, err := NewMarkdownExporter(opts).Export(testConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	out := string(content)
	if strings.Contains(out, "Session Information") {
		t.Error("metadata section present despite IncludeMetadata=false")
	}
	if strings.Contains(out, "<sub>") {
		t.Error("timestamps present despite IncludeTimestamps=false")
	}
}

func TestMarkdownExporter_EmptyConversation(t *testing.T) {
	if _, err := NewMarkdownExporter(nil).Export(model.NewConversation()); err == nil {
		t.Error("expected error for empty conversation")
	}
	if _, err := NewMarkdownExporter(nil).Export(nil); err == nil {
		t.Error("expected error for nil conversation")
	}
}

func TestJSONExporter_RoundTrip(t *testing.T) {
	conv := testConversation()
	content, err := NewJSONExporter().Export(conv)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var decoded model.Conversation
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if decoded.ID != conv.ID {
		t.Errorf("ID = %q, want %q", decoded.ID, conv.ID)
	}
	if len(decoded.Messages) != 2 {
		t.Errorf("len(Messages) = %d, want 2", len(decoded.Messages))
	}
}

func TestTextExporter_StripsFences(t *testing.T) {
	content, err := NewTextExporter(nil).Export(testConversation())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	out := string(content)
	if strings.Contains(out, "```") {
		t.Errorf("text output still contains fences:\n%s", out)
	}
	if !strings.Contains(out, "fmt.Println(\"hello\")") {
		t.Error("text output lost the code")
	}
	if !strings.Contains(out, "You") || !strings.Contains(out, "Assistant") {
		t.Error("text output missing role labels")
	}
}

func TestMessageText_PlainMessage(t *testing.T) {
	msg := model.NewUserMessage("  plain prompt  ")
	if got := MessageText(msg); got != "plain prompt" {
		t.Errorf("MessageText = %q, want trimmed text", got)
	}
}

func TestExportToFile(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	opts.OpenAfterExport = false

	path, err := ExportMarkdown(testConversation(), opts)
	if err != nil {
		t.Fatalf("ExportMarkdown: %v", err)
	}

	if !strings.HasSuffix(path, ".md") {
		t.Errorf("path = %q, want .md suffix", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading exported file: %v", err)
	}
	if len(data) == 0 {
		t.Error("exported file is empty")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"how do I sort?", "how_do_I_sort-"},
		{"a/b\\c", "a-b-c"},
		{"", "conversation"},
		{"tabs\there", "tabs_here"},
	}

	for _, tc := range tests {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
