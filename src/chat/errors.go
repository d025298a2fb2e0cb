package chat

import "errors"

var (
	// ErrUnauthorized means no validated owner identity was supplied.
	ErrUnauthorized = errors.New("owner identity is required")

	// ErrForbidden means the conversation exists but belongs to someone else.
	ErrForbidden = errors.New("conversation not owned by caller")

	// ErrConversationNotFound means the supplied conversation id resolves to nothing.
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrEmptyMessage means the message text was empty or whitespace only.
	ErrEmptyMessage = errors.New("message text is empty")
)
