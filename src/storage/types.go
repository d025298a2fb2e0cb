package storage

import "time"

// Message roles. The system role is reserved; this service only writes
// user and assistant messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Conversation is one chat thread owned by a single user. UserID is fixed
// at creation and never changes.
type Conversation struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Message is one turn entry. Messages are append-only; they are never
// mutated or deleted once written.
type Message struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	UserID         string    `json:"user_id" db:"user_id"`
	Role           string    `json:"role" db:"role"`
	Content        string    `json:"content" db:"content"`
	ToolCalls      *string   `json:"tool_calls,omitempty" db:"tool_calls"` // JSON array of tool calls
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
