// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package segment

import (
	"strings"
	"testing"
)

func TestParse_MixedPlainAndCode(t *testing.T) {
	input := "before ```python\nprint(1)\n``` after"
	segments := Parse(input)

	if len(segments) != 3 {
		t.Fatalf("len(segments) = %d, want 3", len(segments))
	}

	if segments[0].IsCode || segments[0].Text != "before " {
		t.Errorf("segments[0] = %+v, want plain 'before '", segments[0])
	}
	if !segments[1].IsCode || segments[1].Text != "print(1)\n" {
		t.Errorf("segments[1] = %+v, want code 'print(1)\\n'", segments[1])
	}
	if segments[1].Language != "python" {
		t.Errorf("segments[1].Language = %q, want 'python'", segments[1].Language)
	}
	if segments[2].IsCode || segments[2].Text != " after" {
		t.Errorf("segments[2] = %+v, want plain ' after'", segments[2])
	}
}

func TestParse_NoFences(t *testing.T) {
	segments := Parse("  just some text  ")

	if len(segments) != 1 {
		t.Fatalf("len(segments) = %d, want 1", len(segments))
	}
	if segments[0].IsCode {
		t.Error("segment should be plain")
	}
	if segments[0].Text != "just some text" {
		t.Errorf("Text = %q, want trimmed input", segments[0].Text)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		if segments := Parse(input); segments != nil {
			t.Errorf("Parse(%q) = %v, want nil", input, segments)
		}
	}
}

func TestParse_OnlyCodeBlock(t *testing.T) {
	segments := Parse("```go\nfmt.Println(1)\n```")

	if len(segments) != 1 {
		t.Fatalf("len(segments) = %d, want 1", len(segments))
	}
	if !segments[0].IsCode {
		t.Error("segment should be code")
	}
	if segments[0].Language != "go" {
		t.Errorf("Language = %q, want 'go'", segments[0].Language)
	}
	if segments[0].Text != "fmt.Println(1)\n" {
		t.Errorf("Text = %q", segments[0].Text)
	}
}

func TestParse_UnterminatedFence(t *testing.T) {
	segments := Parse("look: ```go\nx := 1")

	if len(segments) != 2 {
		t.Fatalf("len(segments) = %d, want 2", len(segments))
	}
	if segments[0].IsCode {
		t.Error("segments[0] should be plain")
	}
	if !segments[1].IsCode || segments[1].Text != "x := 1" || segments[1].Language != "go" {
		t.Errorf("segments[1] = %+v, want trailing code", segments[1])
	}
}

func TestParse_NoLanguageTag(t *testing.T) {
	segments := Parse("```\nsome code\n```")

	if len(segments) != 1 {
		t.Fatalf("len(segments) = %d, want 1", len(segments))
	}
	if segments[0].Language != "" {
		t.Errorf("Language = %q, want empty", segments[0].Language)
	}
	if segments[0].Text != "some code\n" {
		t.Errorf("Text = %q", segments[0].Text)
	}
}

func TestParse_OrderPreserved(t *testing.T) {
	input := "a\n```go\none\n```\nb\n```py\ntwo\n```\nc"
	segments := Parse(input)

	wantCode := []bool{false, true, false, true, false}
	if len(segments) != len(wantCode) {
		t.Fatalf("len(segments) = %d, want %d", len(segments), len(wantCode))
	}
	for i, seg := range segments {
		if seg.IsCode != wantCode[i] {
			t.Errorf("segments[%d].IsCode = %v, want %v", i, seg.IsCode, wantCode[i])
		}
	}
	if segments[1].Text != "one\n" || segments[3].Text != "two\n" {
		t.Error("code segments out of order")
	}
}

func TestParse_EmptySegmentsDropped(t *testing.T) {
	// Adjacent fences and blank parts must not produce empty segments.
	segments := Parse("``````\ntext")
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) == "" {
			t.Errorf("empty segment survived: %+v", seg)
		}
	}
}

func TestParse_UniqueSegmentIDs(t *testing.T) {
	segments := Parse("a\n```go\nb\n```\nc")
	seen := make(map[string]bool)
	for _, seg := range segments {
		if seg.ID == "" {
			t.Fatal("segment without ID")
		}
		if seen[seg.ID] {
			t.Fatalf("duplicate segment ID %q", seg.ID)
		}
		seen[seg.ID] = true
	}
}

func TestHasCode(t *testing.T) {
	if HasCode(Parse("plain only")) {
		t.Error("HasCode = true for plain text")
	}
	if !HasCode(Parse("```go\nx\n```")) {
		t.Error("HasCode = false for a code block")
	}
}

func TestJoin(t *testing.T) {
	segments := Parse("before ```go\ncode()\n``` after")
	joined := Join(segments)

	if strings.Contains(joined, Fence) {
		t.Errorf("Join output still contains fences: %q", joined)
	}
	if !strings.Contains(joined, "code()") {
		t.Errorf("Join output lost code text: %q", joined)
	}
}

func TestHighlight_KnownLanguage(t *testing.T) {
	out := Highlight("print(1)", "python")
	if out == "" {
		t.Fatal("Highlight returned empty output")
	}
	if !strings.Contains(out, "print") {
		t.Errorf("highlighted output lost source text: %q", out)
	}
}

func TestHighlight_UnknownLanguageFallsBack(t *testing.T) {
	code := "completely unknown ~~ stuff"
	out := Highlight(code, "definitely-not-a-language")
	if out == "" {
		t.Fatal("Highlight returned empty output")
	}
}

func TestHighlightWithStyle_BadStyleStillRenders(t *testing.T) {
	out := HighlightWithStyle("x := 1", "go", "no-such-style")
	if out == "" {
		t.Fatal("HighlightWithStyle returned empty output")
	}
}
