// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/morganforge/palaver/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrConversationNotFound is returned when a conversation doesn't exist.
// Use errors.Is(err, ErrConversationNotFound) to check for this error.
var ErrConversationNotFound = errors.New("conversation not found")

// =============================================================================
// STORE
// =============================================================================

// Store handles conversation persistence in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the conversation database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save persists a conversation and all its messages. An existing
// conversation with the same ID is replaced wholesale, which keeps the
// stored message list identical to the in-memory one after deletions.
func (s *Store) Save(conv *model.Conversation) error {
	conv.UpdatedAt = time.Now()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = conv.UpdatedAt
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO conversations (id, title, model, system_prompt, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			model = excluded.model,
			system_prompt = excluded.system_prompt,
			updated_at = excluded.updated_at`,
		conv.ID, conv.GetTitle(), conv.Model, conv.SystemPrompt, conv.CreatedAt, conv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM messages WHERE conversation_id = ?`, conv.ID); err != nil {
		return fmt.Errorf("failed to clear old messages: %w", err)
	}

	insert, err := tx.Prepare(`
		INSERT INTO messages (id, conversation_id, seq, role, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare message insert: %w", err)
	}
	defer insert.Close()

	for seq, msg := range conv.Messages {
		if _, err := insert.Exec(msg.ID, conv.ID, seq, msg.Role.String(), msg.Content, msg.Timestamp); err != nil {
			return fmt.Errorf("failed to save message %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load retrieves a conversation with its messages in stored order.
func (s *Store) Load(id string) (*model.Conversation, error) {
	conv := &model.Conversation{}
	err := s.db.QueryRow(`
		SELECT id, title, model, system_prompt, created_at, updated_at
		FROM conversations WHERE id = ?`, id).
		Scan(&conv.ID, &conv.Title, &conv.Model, &conv.SystemPrompt, &conv.CreatedAt, &conv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, role, content, created_at
		FROM messages WHERE conversation_id = ?
		ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		msg := &model.Message{}
		var role string
		if err := rows.Scan(&msg.ID, &role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = model.Role(role)
		conv.Messages = append(conv.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	return conv, nil
}

// LoadMostRecent loads the conversation with the newest updated_at.
func (s *Store) LoadMostRecent() (*model.Conversation, error) {
	var id string
	err := s.db.QueryRow(`
		SELECT id FROM conversations ORDER BY updated_at DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recent conversation: %w", err)
	}
	return s.Load(id)
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

// List returns metadata for all conversations, most recent first.
func (s *Store) List() ([]model.ConversationMeta, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.title, c.model, c.created_at, c.updated_at,
		       COUNT(m.id),
		       COALESCE((SELECT content FROM messages
		                 WHERE conversation_id = c.id AND role = 'user'
		                 ORDER BY seq LIMIT 1), '')
		FROM conversations c
		LEFT JOIN messages m ON m.conversation_id = c.id
		GROUP BY c.id
		ORDER BY c.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var metas []model.ConversationMeta
	for rows.Next() {
		var meta model.ConversationMeta
		if err := rows.Scan(&meta.ID, &meta.Title, &meta.Model, &meta.CreatedAt,
			&meta.UpdatedAt, &meta.MessageCount, &meta.Preview); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		metas = append(metas, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversations: %w", err)
	}

	return metas, nil
}

// Search finds conversations whose title or any message content contains
// the query, case-insensitively. Empty query returns everything.
func (s *Store) Search(query string) ([]model.ConversationMeta, error) {
	if query == "" {
		return s.List()
	}

	rows, err := s.db.Query(`
		SELECT DISTINCT c.id FROM conversations c
		LEFT JOIN messages m ON m.conversation_id = c.id
		WHERE c.title LIKE '%' || ? || '%' COLLATE NOCASE
		   OR m.content LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY c.updated_at DESC`, query, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search conversations: %w", err)
	}
	defer rows.Close()

	matched := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		matched[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read search results: %w", err)
	}

	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var results []model.ConversationMeta
	for _, meta := range all {
		if matched[meta.ID] {
			results = append(results, meta)
		}
	}
	return results, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes a conversation and its messages.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// Clear removes all conversations.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM conversations`); err != nil {
		return fmt.Errorf("failed to clear conversations: %w", err)
	}
	return nil
}

// Count returns the number of stored conversations.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM conversations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	return n, nil
}
