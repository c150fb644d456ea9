// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/morganforge/palaver/internal/model"
	"github.com/morganforge/palaver/internal/segment"
	"github.com/morganforge/palaver/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

// ===== TOASTS =====

func TestToastManagerAddAndRemove(t *testing.T) {
	m := NewToastManager()

	id := m.AddError("request failed")
	if !m.HasToasts() {
		t.Fatal("expected an active toast")
	}

	m.Remove(id)
	if m.HasToasts() {
		t.Error("expected toast removed")
	}
}

func TestToastManagerNewestFirst(t *testing.T) {
	m := NewToastManager()
	m.AddStatus("first")
	m.AddStatus("second")

	toasts := m.Toasts()
	if len(toasts) != 2 {
		t.Fatalf("len = %d, want 2", len(toasts))
	}
	if toasts[0].Message != "second" {
		t.Errorf("toasts[0].Message = %q, want %q", toasts[0].Message, "second")
	}
}

func TestToastManagerTrimsToMax(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.AddStatus("toast")
	}
	if got := len(m.Toasts()); got != 4 {
		t.Errorf("len = %d, want 4", got)
	}
}

func TestToastTickDropsExpired(t *testing.T) {
	m := NewToastManager()
	m.Add(Toast{
		Message:   "old",
		Kind:      ToastKindStatus,
		CreatedAt: time.Now().Add(-time.Minute),
		Duration:  DefaultToastDuration,
	})
	m.AddStatus("fresh")

	remaining := m.Tick()
	if len(remaining) != 1 {
		t.Fatalf("len = %d, want 1", len(remaining))
	}
	if remaining[0].Message != "fresh" {
		t.Errorf("remaining[0].Message = %q, want %q", remaining[0].Message, "fresh")
	}
}

func TestRenderToastStackEmpty(t *testing.T) {
	if got := RenderToastStack(nil, 80, 24); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

// ===== STATUS BAR =====

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusWaiting, "Waiting..."},
		{StatusError, "Error"},
		{Status(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusBarWideShowsModel(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(120)
	bar.SetModel("gpt-3.5-turbo")
	bar.SetMessageCount(3)

	view := bar.View()
	if !strings.Contains(view, "gpt-3.5-turbo") {
		t.Error("wide view missing model name")
	}
	if !strings.Contains(view, "3 msg") {
		t.Error("wide view missing message count")
	}
	if !strings.Contains(view, "Ready") {
		t.Error("wide view missing status text")
	}
}

func TestStatusBarNarrowTruncates(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(40)
	bar.SetModel("a-very-long-model-name-that-overflows")

	view := bar.View()
	if strings.Contains(view, "a-very-long-model-name-that-overflows") {
		t.Error("narrow view should truncate long model names")
	}
}

// ===== MESSAGE BUBBLE =====

func TestMessageBubbleUserShowsRoleAndContent(t *testing.T) {
	msg := model.NewUserMessage("hello there")
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(80)

	view := bubble.Render()
	if !strings.Contains(view, "You") {
		t.Error("user bubble missing role label")
	}
	if !strings.Contains(view, "hello there") {
		t.Error("user bubble missing content")
	}
}

func TestMessageBubbleEmptyMessage(t *testing.T) {
	msg := model.NewUserMessage("")
	bubble := NewMessageBubble(msg, testTheme())

	if got := bubble.Render(); got != "" {
		t.Errorf("empty message render = %q, want empty", got)
	}
}

func TestMessageBubbleAssistantRendersCode(t *testing.T) {
	msg := model.NewAssistantMessage("look:\n```go\nfmt.Println(1)\n```\ndone")
	bubble := NewMessageBubble(msg, testTheme())
	bubble.SetWidth(100)

	view := bubble.Render()
	if !strings.Contains(view, "Assistant") {
		t.Error("assistant bubble missing role label")
	}
	if !strings.Contains(view, "look:") {
		t.Error("assistant bubble missing plain segment")
	}
	if !strings.Contains(view, "done") {
		t.Error("assistant bubble missing trailing segment")
	}
}

func TestMessageListEmptyState(t *testing.T) {
	list := NewMessageList(testTheme())
	view := list.Render(nil)
	if !strings.Contains(view, "No messages yet") {
		t.Error("empty list missing hint text")
	}
}

func TestMessageListOrder(t *testing.T) {
	list := NewMessageList(testTheme())
	list.SetWidth(100)

	msgs := []*model.Message{
		model.NewUserMessage("question one"),
		model.NewAssistantMessage("answer one"),
	}

	view := list.Render(msgs)
	qi := strings.Index(view, "question one")
	ai := strings.Index(view, "answer one")
	if qi < 0 || ai < 0 {
		t.Fatal("list missing message content")
	}
	if qi > ai {
		t.Error("messages rendered out of order")
	}
}

// ===== CODE BLOCK =====

func TestCodeBlockLineNumbers(t *testing.T) {
	seg := segment.Segment{
		Text:     "line one\nline two\nline three\n",
		IsCode:   true,
		Language: "",
	}
	block := NewCodeBlock(seg, testTheme())
	block.HighlightOn = false
	block.SetWidth(80)

	view := block.Render()
	for _, want := range []string{"1 ", "2 ", "3 ", "line one", "line three"} {
		if !strings.Contains(view, want) {
			t.Errorf("code block missing %q", want)
		}
	}
}

func TestCodeBlockLanguageBadge(t *testing.T) {
	seg := segment.Segment{Text: "print(1)\n", IsCode: true, Language: "python"}
	block := NewCodeBlock(seg, testTheme())
	block.HighlightOn = false

	if view := block.Render(); !strings.Contains(view, "python") {
		t.Error("code block missing language badge")
	}
}

func TestCodeBlockEmpty(t *testing.T) {
	block := NewCodeBlock(segment.Segment{IsCode: true}, testTheme())
	if got := block.Render(); got != "" {
		t.Errorf("empty code block render = %q, want empty", got)
	}
}

// ===== HELPERS =====

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{3 * time.Second, "3s"},
		{59 * time.Second, "59s"},
		{65 * time.Second, "1m 05s"},
		{130 * time.Second, "2m 10s"},
	}

	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatTimeZero(t *testing.T) {
	if got := formatTime(time.Time{}); got != "" {
		t.Errorf("formatTime(zero) = %q, want empty", got)
	}
}
