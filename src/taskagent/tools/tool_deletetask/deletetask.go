package tool_deletetask

import (
	"context"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/taskclient"
)

// Tool name constant
const Name = "delete_task"

const deleteTaskPrompt = `Delete a task from the user's task list.

Usage:
- The task_id parameter is the id of the task to delete
- The user_id parameter identifies the task's owner
- The task must exist and belong to the user, otherwise an error outcome is returned`

// DeleteTaskInput represents the parameters for delete_task
type DeleteTaskInput struct {
	TaskID string `json:"task_id" required:"true" description:"The ID of the task to delete"`
	UserID string `json:"user_id" required:"true" description:"The user ID"`
}

// Tool returns the delete_task tool definition
func Tool(client *taskclient.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, deleteTaskPrompt, makeDeleteTaskHandler(client))
}

func makeDeleteTaskHandler(client *taskclient.Client) func(ctx context.Context, input DeleteTaskInput) (taskclient.Outcome, error) {
	return func(ctx context.Context, input DeleteTaskInput) (taskclient.Outcome, error) {
		return *client.DeleteTask(ctx, input.TaskID, input.UserID), nil
	}
}
