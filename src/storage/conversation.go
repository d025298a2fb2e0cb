package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// GetConversationByID retrieves a conversation by its ID
func GetConversationByID(ctx context.Context, db sqlscan.Querier, conversationID string) (*Conversation, error) {
	query := `SELECT id, user_id, title, created_at, updated_at FROM conversations WHERE id = ?`
	var conv Conversation
	err := sqlscan.Get(ctx, db, &conv, query, conversationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, err
	}
	return &conv, nil
}

// GetConversationsByUserID retrieves a user's conversations, most recently
// active first.
func GetConversationsByUserID(ctx context.Context, db sqlscan.Querier, userID string) ([]Conversation, error) {
	query := `SELECT id, user_id, title, created_at, updated_at FROM conversations WHERE user_id = ? ORDER BY updated_at DESC`
	var conversations []Conversation
	err := sqlscan.Select(ctx, db, &conversations, query, userID)
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

// CreateConversation creates a new conversation in the database
func CreateConversation(ctx context.Context, db Execer, conversation *Conversation) error {
	if conversation.UserID == "" {
		return fmt.Errorf("conversation user id is required")
	}
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}
	if conversation.CreatedAt.IsZero() {
		conversation.CreatedAt = time.Now().UTC()
	}
	if conversation.UpdatedAt.IsZero() {
		conversation.UpdatedAt = conversation.CreatedAt
	}

	query := `INSERT INTO conversations (id, user_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, conversation.ID, conversation.UserID, conversation.Title, conversation.CreatedAt, conversation.UpdatedAt)
	return err
}

// TouchConversation bumps the conversation's last-activity timestamp.
func TouchConversation(ctx context.Context, db Execer, conversationID string) error {
	query := `UPDATE conversations SET updated_at = ? WHERE id = ?`
	_, err := db.ExecContext(ctx, query, time.Now().UTC(), conversationID)
	return err
}

// GetMessagesByConversationID retrieves all messages for a conversation
// ordered by creation time, insertion order breaking ties.
func GetMessagesByConversationID(ctx context.Context, db sqlscan.Querier, conversationID string) ([]Message, error) {
	query := `SELECT id, conversation_id, user_id, role, content, tool_calls, created_at FROM messages WHERE conversation_id = ? ORDER BY created_at, rowid`
	var messages []Message
	err := sqlscan.Select(ctx, db, &messages, query, conversationID)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateMessage creates a new message in the database
func CreateMessage(ctx context.Context, db Execer, message *Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO messages (id, conversation_id, user_id, role, content, tool_calls, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, message.ID, message.ConversationID, message.UserID, message.Role, message.Content, message.ToolCalls, message.CreatedAt)
	return err
}

// AppendTurn writes the user message, the paired assistant message, and the
// conversation's updated_at bump in one transaction. History can therefore
// never show a user message without its assistant reply.
func AppendTurn(ctx context.Context, db *sql.DB, userMsg, assistantMsg *Message) error {
	if userMsg.ConversationID == "" || userMsg.ConversationID != assistantMsg.ConversationID {
		return fmt.Errorf("turn messages must share a conversation id")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := CreateMessage(ctx, tx, userMsg); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to write user message: %w", err)
	}

	// Assistant timestamp must never precede the user's.
	if assistantMsg.CreatedAt.IsZero() || assistantMsg.CreatedAt.Before(userMsg.CreatedAt) {
		assistantMsg.CreatedAt = userMsg.CreatedAt
	}
	if err := CreateMessage(ctx, tx, assistantMsg); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to write assistant message: %w", err)
	}

	if err := TouchConversation(ctx, tx, userMsg.ConversationID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to touch conversation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit turn: %w", err)
	}
	return nil
}
