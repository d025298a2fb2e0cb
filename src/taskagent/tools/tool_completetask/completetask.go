package tool_completetask

import (
	"context"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/taskclient"
)

// Tool name constant
const Name = "complete_task"

const completeTaskPrompt = `Mark a task as complete.

Usage:
- The task_id parameter is the id of the task to complete
- The user_id parameter identifies the task's owner
- The task must exist and belong to the user, otherwise an error outcome is returned`

// CompleteTaskInput represents the parameters for complete_task
type CompleteTaskInput struct {
	TaskID string `json:"task_id" required:"true" description:"The ID of the task to complete"`
	UserID string `json:"user_id" required:"true" description:"The user ID"`
}

// Tool returns the complete_task tool definition
func Tool(client *taskclient.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, completeTaskPrompt, makeCompleteTaskHandler(client))
}

func makeCompleteTaskHandler(client *taskclient.Client) func(ctx context.Context, input CompleteTaskInput) (taskclient.Outcome, error) {
	return func(ctx context.Context, input CompleteTaskInput) (taskclient.Outcome, error) {
		return *client.CompleteTask(ctx, input.TaskID, input.UserID), nil
	}
}
