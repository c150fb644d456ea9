// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage_Roles(t *testing.T) {
	tests := []struct {
		name    string
		msg     *Message
		role    Role
		content string
	}{
		{"user", NewUserMessage("hi"), RoleUser, "hi"},
		{"assistant", NewAssistantMessage("hello"), RoleAssistant, "hello"},
		{"system", NewSystemMessage("be brief"), RoleSystem, "be brief"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.msg.Role != tc.role {
				t.Errorf("Role = %q, want %q", tc.msg.Role, tc.role)
			}
			if tc.msg.Content != tc.content {
				t.Errorf("Content = %q, want %q", tc.msg.Content, tc.content)
			}
			if tc.msg.ID == "" {
				t.Error("ID should not be empty")
			}
			if tc.msg.Timestamp.IsZero() {
				t.Error("Timestamp should be set")
			}
		})
	}
}

func TestMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewUserMessage("x")
		if seen[msg.ID] {
			t.Fatalf("duplicate message ID %q", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestRole_DisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Assistant"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}

	for _, tc := range tests {
		if got := tc.role.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}

func TestMessage_Preview(t *testing.T) {
	msg := NewUserMessage("a very long message that should be truncated somewhere")
	got := msg.Preview(10)
	if len([]rune(got)) > 10 {
		t.Errorf("Preview(10) = %q, too long", got)
	}

	short := NewUserMessage("short")
	if got := short.Preview(50); got != "short" {
		t.Errorf("Preview(50) = %q, want 'short'", got)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_InsertionOrderIsDisplayOrder(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("first")
	conv.AddAssistantMessage("second")
	conv.AddUserMessage("third")

	want := []string{"first", "second", "third"}
	history := conv.GetHistory()
	if len(history) != len(want) {
		t.Fatalf("MessageCount = %d, want %d", len(history), len(want))
	}
	for i, msg := range history {
		if msg.Content != want[i] {
			t.Errorf("Messages[%d].Content = %q, want %q", i, msg.Content, want[i])
		}
	}
}

func TestConversation_RemoveMessage(t *testing.T) {
	conv := NewConversation()
	a := conv.AddUserMessage("a")
	b := conv.AddAssistantMessage("b")
	c := conv.AddUserMessage("c")

	if !conv.RemoveMessage(b.ID) {
		t.Fatal("RemoveMessage should return true for existing ID")
	}

	// Exactly one entry removed, relative order preserved
	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.Messages[0].ID != a.ID || conv.Messages[1].ID != c.ID {
		t.Error("remaining messages out of order after removal")
	}

	// Unknown ID removes nothing
	if conv.RemoveMessage("missing") {
		t.Error("RemoveMessage should return false for unknown ID")
	}
	if conv.MessageCount() != 2 {
		t.Errorf("MessageCount = %d after no-op removal, want 2", conv.MessageCount())
	}
}

func TestConversation_GetMessageByID(t *testing.T) {
	conv := NewConversation()
	msg := conv.AddUserMessage("find me")

	if got := conv.GetMessageByID(msg.ID); got == nil || got.Content != "find me" {
		t.Errorf("GetMessageByID returned %v", got)
	}
	if got := conv.GetMessageByID("missing"); got != nil {
		t.Errorf("GetMessageByID(missing) = %v, want nil", got)
	}
}

func TestConversation_LastMessageHelpers(t *testing.T) {
	conv := NewConversation()
	if conv.GetLastMessage() != nil {
		t.Error("GetLastMessage on empty conversation should be nil")
	}
	if conv.GetLastAssistantMessage() != nil {
		t.Error("GetLastAssistantMessage on empty conversation should be nil")
	}

	conv.AddUserMessage("q1")
	conv.AddAssistantMessage("a1")
	conv.AddUserMessage("q2")

	if got := conv.GetLastMessage().Content; got != "q2" {
		t.Errorf("GetLastMessage = %q, want 'q2'", got)
	}
	if got := conv.GetLastAssistantMessage().Content; got != "a1" {
		t.Errorf("GetLastAssistantMessage = %q, want 'a1'", got)
	}
	if got := conv.GetLastUserMessage().Content; got != "q2" {
		t.Errorf("GetLastUserMessage = %q, want 'q2'", got)
	}
}

func TestConversation_TitleFromFirstUserMessage(t *testing.T) {
	conv := NewConversation()
	if conv.GetTitle() != "New Conversation" {
		t.Errorf("GetTitle = %q, want 'New Conversation'", conv.GetTitle())
	}

	conv.AddSystemMessage("system stuff")
	conv.AddUserMessage("how do I sort a slice in Go?")

	if conv.GetTitle() != "how do I sort a slice in Go?" {
		t.Errorf("GetTitle = %q, want first user message", conv.GetTitle())
	}

	// Explicit title wins
	conv.SetTitle("sorting")
	if conv.GetTitle() != "sorting" {
		t.Errorf("GetTitle = %q, want 'sorting'", conv.GetTitle())
	}
}

func TestConversation_ClearHistory(t *testing.T) {
	conv := NewConversation()
	conv.AddUserMessage("a")
	conv.AddAssistantMessage("b")

	conv.ClearHistory()

	if !conv.IsEmpty() {
		t.Error("conversation should be empty after ClearHistory")
	}
}

func TestConversation_Clone(t *testing.T) {
	conv := NewConversationWithModel("gpt-3.5-turbo")
	conv.SystemPrompt = "be helpful"
	conv.AddUserMessage("original")

	clone := conv.Clone()
	clone.Messages[0].Content = "mutated"

	if conv.Messages[0].Content != "original" {
		t.Error("mutating clone affected the original conversation")
	}
	if clone.Model != "gpt-3.5-turbo" || clone.SystemPrompt != "be helpful" {
		t.Error("clone lost configuration fields")
	}
}

func TestConversation_GetMeta(t *testing.T) {
	conv := NewConversationWithModel("gpt-3.5-turbo")
	conv.AddUserMessage("hello there")

	meta := conv.GetMeta()
	if meta.ID != conv.ID {
		t.Errorf("meta.ID = %q, want %q", meta.ID, conv.ID)
	}
	if meta.MessageCount != 1 {
		t.Errorf("meta.MessageCount = %d, want 1", meta.MessageCount)
	}
	if meta.Model != "gpt-3.5-turbo" {
		t.Errorf("meta.Model = %q", meta.Model)
	}
	if meta.Preview != "hello there" {
		t.Errorf("meta.Preview = %q", meta.Preview)
	}
}
