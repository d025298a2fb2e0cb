// Package runner drives a single conversational run to completion: it
// creates a run on the reasoning backend, polls its state, dispatches
// requested tool calls through the toolbox, submits results back, and
// extracts the final assistant text.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/aisdk"
)

const (
	defaultPollInterval = 500 * time.Millisecond
	defaultMaxPolls     = 120

	// FallbackResponse is what the caller persists when a run fails.
	// Internal error detail never reaches the user.
	FallbackResponse = "Sorry, I ran into a problem handling that request. Please try again."
)

// Config holds the dependencies and tuning knobs for a Runner.
type Config struct {
	Client       aisdk.RunClient
	Toolbox      *agent.DefaultToolbox
	SystemPrompt string
	PollInterval time.Duration
	MaxPolls     int
	Logger       *slog.Logger
}

// Runner executes runs. It is stateless across calls and safe for
// concurrent use; all per-run state lives on the Execute stack.
type Runner struct {
	client       aisdk.RunClient
	toolbox      *agent.DefaultToolbox
	systemPrompt string
	pollInterval time.Duration
	maxPolls     int
	logger       *slog.Logger
}

// Result is the outcome of one run.
type Result struct {
	// Response is the final assistant text. When the run failed this is
	// the safe fallback text, never empty.
	Response string
	// ToolCalls is the log of tool invocations performed during the run.
	ToolCalls []ToolCallRecord
	// Phase is the terminal phase the run reached.
	Phase Phase
}

// New creates a Runner.
func New(config Config) (*Runner, error) {
	if config.Client == nil {
		return nil, ErrClientRequired
	}
	if config.Toolbox == nil {
		return nil, ErrToolboxRequired
	}
	if config.SystemPrompt == "" {
		config.SystemPrompt = DefaultSystemPrompt
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaultPollInterval
	}
	if config.MaxPolls <= 0 {
		config.MaxPolls = defaultMaxPolls
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Runner{
		client:       config.Client,
		toolbox:      config.Toolbox,
		systemPrompt: config.SystemPrompt,
		pollInterval: config.PollInterval,
		maxPolls:     config.MaxPolls,
		logger:       config.Logger.With("component", "runner"),
	}, nil
}

// Execute runs the reasoning backend over the given ordered history on
// behalf of ownerID and returns the final assistant response.
//
// On failure the returned Result still carries the safe fallback response
// and the tool call log so the caller can persist a complete turn; the
// error holds the structured cause for logging.
func (r *Runner) Execute(ctx context.Context, history []*aisdk.Message, ownerID string) (*Result, error) {
	if ownerID == "" {
		return r.failed(nil), ErrOwnerRequired
	}

	logger := r.logger.With("owner", ownerID)

	thread, err := r.client.CreateThread(ctx, history)
	if err != nil {
		logger.Error("failed to create thread", "error", err)
		return r.failed(nil), fmt.Errorf("failed to create thread: %w", err)
	}
	defer func() {
		// Best-effort cleanup; the thread has no value past this call.
		if derr := r.client.DeleteThread(context.WithoutCancel(ctx), thread.ID); derr != nil {
			logger.Debug("failed to delete thread", "thread", thread.ID, "error", derr)
		}
	}()

	run, err := r.client.CreateRun(ctx, thread.ID, &aisdk.CreateRunRequest{
		Instructions: r.systemPrompt,
		Tools:        agent.ToChatTools(r.toolbox.Tools()),
	})
	if err != nil {
		logger.Error("failed to create run", "error", err)
		return r.failed(nil), fmt.Errorf("failed to create run: %w", err)
	}

	logger = logger.With("thread", thread.ID, "run", run.ID)

	var toolLog []ToolCallRecord
	for polls := 0; polls < r.maxPolls; polls++ {
		phase := phaseFromStatus(run.Status)
		logger.Debug("run polled", "status", run.Status, "phase", phase, "poll", polls)

		switch phase {
		case PhaseCompleted:
			text, err := r.extractResponse(ctx, thread.ID, len(history))
			if err != nil {
				logger.Error("failed to read run output", "error", err)
				return r.failed(toolLog), err
			}
			return &Result{Response: text, ToolCalls: toolLog, Phase: PhaseCompleted}, nil

		case PhaseFailed:
			err := runError(run)
			logger.Error("run ended in failure", "error", err)
			return r.failed(toolLog), err

		case PhaseAwaitingToolResults:
			outputs, records := r.resolveToolCalls(ctx, ownerID, pendingToolCalls(run))
			toolLog = append(toolLog, records...)

			// All outcomes go back in a single batch; partial submission
			// is not permitted.
			run, err = r.client.SubmitToolOutputs(ctx, thread.ID, run.ID, outputs)
			if err != nil {
				logger.Error("failed to submit tool outputs", "error", err)
				return r.failed(toolLog), fmt.Errorf("failed to submit tool outputs: %w", err)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return r.failed(toolLog), ctx.Err()
		case <-time.After(r.pollInterval):
		}

		run, err = r.client.RetrieveRun(ctx, thread.ID, run.ID)
		if err != nil {
			logger.Error("failed to retrieve run", "error", err)
			return r.failed(toolLog), fmt.Errorf("failed to retrieve run: %w", err)
		}
	}

	logger.Error("run did not finish within polling ceiling", "max_polls", r.maxPolls)
	return r.failed(toolLog), fmt.Errorf("%w after %d polls", ErrRunTimeout, r.maxPolls)
}

// failed builds the user-safe result for a run that did not complete.
func (r *Runner) failed(toolLog []ToolCallRecord) *Result {
	return &Result{Response: FallbackResponse, ToolCalls: toolLog, Phase: PhaseFailed}
}

// extractResponse joins the text segments of the assistant messages the run
// emitted, skipping the seeded history. No text is an empty success.
func (r *Runner) extractResponse(ctx context.Context, threadID string, seeded int) (string, error) {
	messages, err := r.client.ListThreadMessages(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("failed to list thread messages: %w", err)
	}
	if len(messages) > seeded {
		messages = messages[seeded:]
	} else {
		messages = nil
	}
	return extractAssistantText(messages), nil
}

// pendingToolCalls returns the tool calls the run is blocked on.
func pendingToolCalls(run *aisdk.Run) []aisdk.ToolCall {
	if run.RequiredAction == nil || run.RequiredAction.SubmitToolOutputs == nil {
		return nil
	}
	return run.RequiredAction.SubmitToolOutputs.ToolCalls
}

// runError converts a terminal backend failure into an error value.
func runError(run *aisdk.Run) error {
	if run.LastError != nil {
		return fmt.Errorf("%w: %s: %s", ErrRunFailed, run.LastError.Code, run.LastError.Message)
	}
	return fmt.Errorf("%w: status %s", ErrRunFailed, run.Status)
}
