package runner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elee1766/taskchat/src/aisdk"
)

// ToolCallRecord is one entry of the tool call log returned to the caller.
type ToolCallRecord struct {
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Success   bool            `json:"success"`
}

// toolFailure is the structured error outcome submitted back to the run
// when a tool cannot be resolved or its execution fails.
type toolFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// resolveToolCalls executes every pending tool call and returns the full
// batch of outputs. A single failing call never aborts the batch; its
// outcome is a structured error result like any other.
func (r *Runner) resolveToolCalls(ctx context.Context, ownerID string, calls []aisdk.ToolCall) ([]aisdk.ToolOutput, []ToolCallRecord) {
	outputs := make([]aisdk.ToolOutput, 0, len(calls))
	records := make([]ToolCallRecord, 0, len(calls))

	for _, call := range calls {
		name := call.Function.Name

		// The owner always comes from the authenticated caller, whatever
		// the model put in the arguments.
		call.Function.Arguments = injectOwner(call.Function.Arguments, ownerID)

		var output string
		var success bool

		switch {
		case !r.toolbox.HasTool(name):
			r.logger.Warn("run requested unknown tool", "tool", name)
			output = marshalFailure("ValidationError", fmt.Sprintf("unknown tool: %s", name))

		default:
			resp, err := r.toolbox.ExecuteTool(ctx, &call)
			switch {
			case err != nil:
				r.logger.Error("tool execution failed", "tool", name, "error", err)
				output = marshalFailure("DependencyError", "The tool could not be executed. Please try again.")
			case resp.IsError:
				output = marshalFailure("ValidationError", string(resp.Content))
			default:
				output = string(resp.Content)
				success = outcomeSucceeded(resp.Content)
			}
		}

		outputs = append(outputs, aisdk.ToolOutput{ToolCallID: call.ID, Output: output})
		records = append(records, ToolCallRecord{Tool: name, Arguments: call.Function.Arguments, Success: success})
	}

	return outputs, records
}

// injectOwner forces user_id to the authenticated owner in the argument
// mapping. Unparseable arguments are replaced with just the owner field so
// the tool's own validation reports the rest.
func injectOwner(args json.RawMessage, ownerID string) json.RawMessage {
	parsed := map[string]interface{}{}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &parsed); err != nil {
			parsed = map[string]interface{}{}
		}
	}
	parsed["user_id"] = ownerID

	out, err := json.Marshal(parsed)
	if err != nil {
		return args
	}
	return out
}

// marshalFailure builds the JSON for a structured error outcome.
func marshalFailure(kind, message string) string {
	out, err := json.Marshal(toolFailure{Success: false, Error: kind, Message: message})
	if err != nil {
		return `{"success":false,"error":"InternalError"}`
	}
	return string(out)
}

// outcomeSucceeded reads the success flag out of a tool outcome payload.
func outcomeSucceeded(content []byte) bool {
	var outcome struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(content, &outcome); err != nil {
		return false
	}
	return outcome.Success
}
