package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndGetConversation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	conv := &Conversation{UserID: "u1", Title: "groceries"}
	require.NoError(t, CreateConversation(ctx, db.DB(), conv))
	assert.NotEmpty(t, conv.ID)
	assert.False(t, conv.CreatedAt.IsZero())
	assert.False(t, conv.UpdatedAt.Before(conv.CreatedAt))

	loaded, err := GetConversationByID(ctx, db.DB(), conv.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u1", loaded.UserID)
	assert.Equal(t, "groceries", loaded.Title)
}

func TestCreateConversationRequiresUser(t *testing.T) {
	db := openTestDB(t)

	err := CreateConversation(context.Background(), db.DB(), &Conversation{})
	assert.Error(t, err)
}

func TestGetConversationByIDNotFound(t *testing.T) {
	db := openTestDB(t)

	loaded, err := GetConversationByID(context.Background(), db.DB(), "missing")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMessagesOrdered(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	conv := &Conversation{UserID: "u1"}
	require.NoError(t, CreateConversation(ctx, db.DB(), conv))

	for i, content := range []string{"first", "second", "third"} {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		msg := &Message{ConversationID: conv.ID, UserID: "u1", Role: role, Content: content}
		require.NoError(t, CreateMessage(ctx, db.DB(), msg))
	}

	messages, err := GetMessagesByConversationID(ctx, db.DB(), conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)
	assert.Equal(t, "third", messages[2].Content)
}

func TestAppendTurnWritesPair(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	conv := &Conversation{UserID: "u1"}
	require.NoError(t, CreateConversation(ctx, db.DB(), conv))
	createdAt := conv.UpdatedAt

	userMsg := &Message{ConversationID: conv.ID, UserID: "u1", Role: RoleUser, Content: "add milk"}
	assistantMsg := &Message{ConversationID: conv.ID, UserID: "u1", Role: RoleAssistant, Content: "Added."}
	require.NoError(t, AppendTurn(ctx, db.DB(), userMsg, assistantMsg))

	messages, err := GetMessagesByConversationID(ctx, db.DB(), conv.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, RoleUser, messages[0].Role)
	assert.Equal(t, RoleAssistant, messages[1].Role)
	assert.False(t, messages[1].CreatedAt.Before(messages[0].CreatedAt))

	// AppendTurn also bumps the conversation's last-activity timestamp.
	loaded, err := GetConversationByID(ctx, db.DB(), conv.ID)
	require.NoError(t, err)
	assert.False(t, loaded.UpdatedAt.Before(createdAt))
}

func TestAppendTurnRejectsMismatchedConversations(t *testing.T) {
	db := openTestDB(t)

	userMsg := &Message{ConversationID: "a", UserID: "u1", Role: RoleUser, Content: "x"}
	assistantMsg := &Message{ConversationID: "b", UserID: "u1", Role: RoleAssistant, Content: "y"}
	err := AppendTurn(context.Background(), db.DB(), userMsg, assistantMsg)
	assert.Error(t, err)
}

func TestTouchConversation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	conv := &Conversation{UserID: "u1"}
	conv.CreatedAt = time.Now().UTC().Add(-time.Hour)
	conv.UpdatedAt = conv.CreatedAt
	require.NoError(t, CreateConversation(ctx, db.DB(), conv))

	require.NoError(t, TouchConversation(ctx, db.DB(), conv.ID))

	loaded, err := GetConversationByID(ctx, db.DB(), conv.ID)
	require.NoError(t, err)
	assert.True(t, loaded.UpdatedAt.After(conv.CreatedAt))
}

func TestGetConversationsByUserID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, user := range []string{"u1", "u1", "u2"} {
		require.NoError(t, CreateConversation(ctx, db.DB(), &Conversation{UserID: user}))
	}

	conversations, err := GetConversationsByUserID(ctx, db.DB(), "u1")
	require.NoError(t, err)
	assert.Len(t, conversations, 2)
	for _, conv := range conversations {
		assert.Equal(t, "u1", conv.UserID)
	}
}
