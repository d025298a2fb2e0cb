// Package httpapi exposes the chat service over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/elee1766/taskchat/src/chat"
	"github.com/elee1766/taskchat/src/storage"
)

const maxRequestBodyBytes = 1 << 20

// TurnService is the part of the chat service the server needs.
type TurnService interface {
	Turn(ctx context.Context, req chat.TurnRequest) (*chat.TurnResult, error)
}

type Server struct {
	chat     TurnService
	store    *storage.DB
	verifier *TokenVerifier
	srv      *http.Server
	logger   *slog.Logger
}

func NewServer(addr string, chatSvc TurnService, store *storage.DB, verifier *TokenVerifier, logger *slog.Logger) *Server {
	s := &Server{
		chat:     chatSvc,
		store:    store,
		verifier: verifier,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("POST /api/{userID}/chat", s.handleChat)
	mux.HandleFunc("GET /api/{userID}/conversations", s.handleListConversations)
	mux.HandleFunc("GET /api/{userID}/conversations/{conversationID}/messages", s.handleListMessages)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      withLogging(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("http server starting", "addr", s.srv.Addr)
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.srv.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Handler returns the server's HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authorize validates the bearer token and checks it matches the path user.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := s.verifier.UserID(r)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "missing or invalid token")
		return "", false
	}
	if pathUser := r.PathValue("userID"); pathUser != userID {
		writeErr(w, http.StatusForbidden, "access denied: user id mismatch")
		return "", false
	}
	return userID, true
}

type chatBody struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r)
	if !ok {
		return
	}

	var body chatBody
	if err := decodeJSONBody(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	result, err := s.chat.Turn(r.Context(), chat.TurnRequest{
		UserID:         userID,
		ConversationID: body.ConversationID,
		Message:        body.Message,
	})
	if err != nil {
		s.writeChatErr(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r)
	if !ok {
		return
	}

	conversations, err := storage.GetConversationsByUserID(r.Context(), s.store.DB(), userID)
	if err != nil {
		s.logger.Error("failed to list conversations", "error", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"conversations": conversations})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authorize(w, r)
	if !ok {
		return
	}

	conversationID := r.PathValue("conversationID")
	conversation, err := storage.GetConversationByID(r.Context(), s.store.DB(), conversationID)
	if err != nil {
		s.logger.Error("failed to load conversation", "error", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	if conversation == nil {
		writeErr(w, http.StatusNotFound, "conversation not found")
		return
	}
	if conversation.UserID != userID {
		writeErr(w, http.StatusForbidden, "access denied")
		return
	}

	messages, err := storage.GetMessagesByConversationID(r.Context(), s.store.DB(), conversationID)
	if err != nil {
		s.logger.Error("failed to list messages", "error", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// writeChatErr maps chat service errors onto HTTP statuses.
func (s *Server) writeChatErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrUnauthorized):
		writeErr(w, http.StatusUnauthorized, "missing owner identity")
	case errors.Is(err, chat.ErrForbidden):
		writeErr(w, http.StatusForbidden, "conversation not owned by caller")
	case errors.Is(err, chat.ErrConversationNotFound):
		writeErr(w, http.StatusNotFound, "conversation not found")
	case errors.Is(err, chat.ErrEmptyMessage):
		writeErr(w, http.StatusBadRequest, "message text is required")
	default:
		s.logger.Error("turn failed", "error", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

// withLogging logs each request with its status and duration.
func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
