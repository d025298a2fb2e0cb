package aisdk

import "context"

// RunStatus is the lifecycle status reported by the run backend for a run.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusExpired        RunStatus = "expired"
)

// Terminal reports whether the status is a final state of the run.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// Thread is a backend-side container holding the messages of one run attempt.
type Thread struct {
	ID string `json:"id"`
}

// Run represents one reasoning attempt against a thread.
type Run struct {
	ID             string          `json:"id"`
	ThreadID       string          `json:"thread_id"`
	Status         RunStatus       `json:"status"`
	RequiredAction *RequiredAction `json:"required_action,omitempty"`
	LastError      *RunError       `json:"last_error,omitempty"`
}

// RequiredAction describes what the backend needs before the run can continue.
type RequiredAction struct {
	Type              string                   `json:"type"` // "submit_tool_outputs"
	SubmitToolOutputs *SubmitToolOutputsAction `json:"submit_tool_outputs,omitempty"`
}

// SubmitToolOutputsAction lists the tool calls awaiting results.
type SubmitToolOutputsAction struct {
	ToolCalls []ToolCall `json:"tool_calls"`
}

// ToolOutput is the result of a single tool call, submitted back to the run.
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

// RunError carries the backend's description of a failed run.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateRunRequest configures a new run on an existing thread.
type CreateRunRequest struct {
	Model        string      `json:"model,omitempty"`
	Instructions string      `json:"instructions,omitempty"`
	Tools        []*ChatTool `json:"tools,omitempty"`
}

// ThreadMessage is a message as stored on the backend thread. Content is a
// sequence of typed segments; only "text" segments carry response text.
type ThreadMessage struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"`
	Content   []MessageSegment `json:"content"`
	CreatedAt int64            `json:"created_at"`
}

// MessageSegment is one content part of a thread message.
type MessageSegment struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// RunClient is the contract the run state machine needs from the reasoning
// backend. Implementations must be safe for concurrent use.
type RunClient interface {
	// CreateThread creates a thread seeded with the given message history.
	CreateThread(ctx context.Context, messages []*Message) (*Thread, error)

	// CreateRun starts a run against a thread.
	CreateRun(ctx context.Context, threadID string, req *CreateRunRequest) (*Run, error)

	// RetrieveRun fetches the current state of a run.
	RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error)

	// SubmitToolOutputs submits all pending tool results for a run as one batch.
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) (*Run, error)

	// ListThreadMessages returns the thread's messages in ascending creation order.
	ListThreadMessages(ctx context.Context, threadID string) ([]*ThreadMessage, error)

	// DeleteThread removes a thread. Callers treat failures as best-effort.
	DeleteThread(ctx context.Context, threadID string) error
}
