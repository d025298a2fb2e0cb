// Package chat coordinates a single conversational turn: conversation
// lookup or creation, history loading, run execution, and durable
// persistence of the resulting message pair.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/elee1766/taskchat/src/aisdk"
	"github.com/elee1766/taskchat/src/runner"
	"github.com/elee1766/taskchat/src/storage"
)

const (
	// maxMessageLen bounds the accepted user message length in runes.
	maxMessageLen = 4000

	// titleLen is how much of the first message becomes the conversation title.
	titleLen = 48
)

// RunExecutor is the contract the service needs from the run state machine.
type RunExecutor interface {
	Execute(ctx context.Context, history []*aisdk.Message, ownerID string) (*runner.Result, error)
}

// Service handles chat turns. Safe for concurrent use; turns share no
// mutable state beyond the store.
type Service struct {
	store  *storage.DB
	runner RunExecutor
	logger *slog.Logger
}

// ServiceConfig holds configuration for creating a new Service
type ServiceConfig struct {
	Store  *storage.DB
	Runner RunExecutor
	Logger *slog.Logger
}

// NewService creates a chat service.
func NewService(config ServiceConfig) (*Service, error) {
	if config.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if config.Runner == nil {
		return nil, fmt.Errorf("runner is required")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Service{
		store:  config.Store,
		runner: config.Runner,
		logger: config.Logger.With("component", "chat"),
	}, nil
}

// TurnRequest is one inbound chat turn.
type TurnRequest struct {
	UserID         string
	ConversationID string // empty means start a new conversation
	Message        string
}

// TurnResult is the response to one completed turn.
type TurnResult struct {
	ConversationID string                  `json:"conversation_id"`
	Response       string                  `json:"response"`
	ToolCalls      []runner.ToolCallRecord `json:"tool_calls"`
}

// Turn performs one complete user-message-in, assistant-message-out cycle.
// A turn that passes validation always persists the user message and an
// assistant reply as a pair, even when the run itself failed.
func (s *Service) Turn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	if req.UserID == "" {
		return nil, ErrUnauthorized
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > maxMessageLen {
		return nil, fmt.Errorf("%w: message exceeds %d characters", ErrEmptyMessage, maxMessageLen)
	}

	conversation, err := s.resolveConversation(ctx, req.UserID, req.ConversationID, text)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With("user", req.UserID, "conversation", conversation.ID)

	stored, err := storage.GetMessagesByConversationID(ctx, s.store.DB(), conversation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	history := make([]*aisdk.Message, 0, len(stored)+1)
	for _, msg := range stored {
		history = append(history, &aisdk.Message{Role: msg.Role, Content: msg.Content})
	}
	history = append(history, &aisdk.Message{Role: storage.RoleUser, Content: text})

	result, runErr := s.runner.Execute(ctx, history, req.UserID)
	if result == nil {
		result = &runner.Result{Response: runner.FallbackResponse, Phase: runner.PhaseFailed}
	}
	if runErr != nil {
		// The result still carries the safe fallback text; the turn is
		// persisted like any other so history never shows a dangling
		// unanswered message.
		logger.Error("run failed", "error", runErr, "phase", result.Phase)
	}

	userMsg := &storage.Message{
		ConversationID: conversation.ID,
		UserID:         req.UserID,
		Role:           storage.RoleUser,
		Content:        text,
	}
	assistantMsg := &storage.Message{
		ConversationID: conversation.ID,
		UserID:         req.UserID,
		Role:           storage.RoleAssistant,
		Content:        result.Response,
	}
	if len(result.ToolCalls) > 0 {
		encoded, err := json.Marshal(result.ToolCalls)
		if err == nil {
			toolCalls := string(encoded)
			assistantMsg.ToolCalls = &toolCalls
		}
	}

	if err := storage.AppendTurn(ctx, s.store.DB(), userMsg, assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to persist turn: %w", err)
	}

	logger.Info("turn completed", "phase", result.Phase, "tool_calls", len(result.ToolCalls))

	return &TurnResult{
		ConversationID: conversation.ID,
		Response:       result.Response,
		ToolCalls:      result.ToolCalls,
	}, nil
}

// resolveConversation loads an owned conversation or creates a fresh one
// before anything is persisted for the turn.
func (s *Service) resolveConversation(ctx context.Context, userID, conversationID, firstMessage string) (*storage.Conversation, error) {
	if conversationID != "" {
		conversation, err := storage.GetConversationByID(ctx, s.store.DB(), conversationID)
		if err != nil {
			return nil, fmt.Errorf("failed to load conversation: %w", err)
		}
		if conversation == nil {
			return nil, ErrConversationNotFound
		}
		if conversation.UserID != userID {
			return nil, ErrForbidden
		}
		return conversation, nil
	}

	conversation := &storage.Conversation{
		UserID: userID,
		Title:  makeTitle(firstMessage),
	}
	if err := storage.CreateConversation(ctx, s.store.DB(), conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conversation, nil
}

// makeTitle derives a short conversation title from the opening message.
func makeTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= titleLen {
		return text
	}
	return string(runes[:titleLen])
}
