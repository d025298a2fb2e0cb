package chat

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/elee1766/taskchat/src/aisdk"
	"github.com/elee1766/taskchat/src/runner"
	"github.com/elee1766/taskchat/src/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner satisfies RunExecutor and records the history it was given.
type fakeRunner struct {
	result  *runner.Result
	err     error
	history []*aisdk.Message
	owner   string
}

func (f *fakeRunner) Execute(ctx context.Context, history []*aisdk.Message, ownerID string) (*runner.Result, error) {
	f.history = history
	f.owner = ownerID
	if f.result == nil {
		f.result = &runner.Result{Response: "ok", Phase: runner.PhaseCompleted}
	}
	return f.result, f.err
}

func newTestService(t *testing.T, r RunExecutor) (*Service, *storage.DB) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc, err := NewService(ServiceConfig{Store: store, Runner: r})
	require.NoError(t, err)
	return svc, store
}

func messageCount(t *testing.T, store *storage.DB, conversationID string) int {
	t.Helper()
	messages, err := storage.GetMessagesByConversationID(context.Background(), store.DB(), conversationID)
	require.NoError(t, err)
	return len(messages)
}

func TestTurnCreatesConversationAndPersistsPair(t *testing.T) {
	fake := &fakeRunner{
		result: &runner.Result{
			Response:  "Added buy milk.",
			ToolCalls: []runner.ToolCallRecord{{Tool: "add_task", Success: true}},
			Phase:     runner.PhaseCompleted,
		},
	}
	svc, store := newTestService(t, fake)

	result, err := svc.Turn(context.Background(), TurnRequest{UserID: "u1", Message: "Add buy milk"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.ConversationID)
	assert.Equal(t, "Added buy milk.", result.Response)
	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "add_task", result.ToolCalls[0].Tool)

	assert.Equal(t, "u1", fake.owner)
	require.Len(t, fake.history, 1)
	assert.Equal(t, "Add buy milk", fake.history[0].Content)

	messages, err := storage.GetMessagesByConversationID(context.Background(), store.DB(), result.ConversationID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, storage.RoleUser, messages[0].Role)
	assert.Equal(t, "Add buy milk", messages[0].Content)
	assert.Equal(t, storage.RoleAssistant, messages[1].Role)
	assert.Equal(t, "Added buy milk.", messages[1].Content)
	assert.False(t, messages[1].CreatedAt.Before(messages[0].CreatedAt))
	require.NotNil(t, messages[1].ToolCalls)
	assert.Contains(t, *messages[1].ToolCalls, "add_task")
}

func TestTurnReusesConversation(t *testing.T) {
	fake := &fakeRunner{}
	svc, store := newTestService(t, fake)
	ctx := context.Background()

	first, err := svc.Turn(ctx, TurnRequest{UserID: "u1", Message: "hello"})
	require.NoError(t, err)

	second, err := svc.Turn(ctx, TurnRequest{UserID: "u1", ConversationID: first.ConversationID, Message: "again"})
	require.NoError(t, err)
	assert.Equal(t, first.ConversationID, second.ConversationID)

	// Two successful turns leave exactly four messages.
	assert.Equal(t, 4, messageCount(t, store, first.ConversationID))

	// The second run saw the full prior history plus the new message.
	require.Len(t, fake.history, 3)
	assert.Equal(t, "again", fake.history[2].Content)

	conversations, err := storage.GetConversationsByUserID(ctx, store.DB(), "u1")
	require.NoError(t, err)
	assert.Len(t, conversations, 1)
}

func TestTurnEmptyMessageWritesNothing(t *testing.T) {
	fake := &fakeRunner{}
	svc, store := newTestService(t, fake)
	ctx := context.Background()

	existing, err := svc.Turn(ctx, TurnRequest{UserID: "u1", Message: "hello"})
	require.NoError(t, err)
	before := messageCount(t, store, existing.ConversationID)

	_, err = svc.Turn(ctx, TurnRequest{UserID: "u1", ConversationID: existing.ConversationID, Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Equal(t, before, messageCount(t, store, existing.ConversationID))
}

func TestTurnMissingOwner(t *testing.T) {
	svc, _ := newTestService(t, &fakeRunner{})

	_, err := svc.Turn(context.Background(), TurnRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTurnForeignConversationForbidden(t *testing.T) {
	fake := &fakeRunner{}
	svc, store := newTestService(t, fake)
	ctx := context.Background()

	owned, err := svc.Turn(ctx, TurnRequest{UserID: "u1", Message: "mine"})
	require.NoError(t, err)
	before := messageCount(t, store, owned.ConversationID)

	_, err = svc.Turn(ctx, TurnRequest{UserID: "u2", ConversationID: owned.ConversationID, Message: "hi"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, before, messageCount(t, store, owned.ConversationID))
}

func TestTurnUnknownConversationNotFound(t *testing.T) {
	svc, _ := newTestService(t, &fakeRunner{})

	_, err := svc.Turn(context.Background(), TurnRequest{UserID: "u1", ConversationID: "missing", Message: "hi"})
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestTurnPersistsFallbackWhenRunFails(t *testing.T) {
	fake := &fakeRunner{
		result: &runner.Result{Response: runner.FallbackResponse, Phase: runner.PhaseFailed},
		err:    errors.New("backend exploded"),
	}
	svc, store := newTestService(t, fake)

	result, err := svc.Turn(context.Background(), TurnRequest{UserID: "u1", Message: "Complete task 3"})
	require.NoError(t, err)
	assert.Equal(t, runner.FallbackResponse, result.Response)

	// The turn is still a complete persisted pair.
	messages, err := storage.GetMessagesByConversationID(context.Background(), store.DB(), result.ConversationID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, runner.FallbackResponse, messages[1].Content)
	assert.NotContains(t, messages[1].Content, "exploded")
}

func TestTurnTruncatesTitle(t *testing.T) {
	fake := &fakeRunner{}
	svc, store := newTestService(t, fake)
	ctx := context.Background()

	long := "This is a very long opening message that should be cut down for the conversation title"
	result, err := svc.Turn(ctx, TurnRequest{UserID: "u1", Message: long})
	require.NoError(t, err)

	conv, err := storage.GetConversationByID(ctx, store.DB(), result.ConversationID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(conv.Title)), 48)
	assert.NotEmpty(t, conv.Title)
}
