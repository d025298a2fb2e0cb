package tool_updatetask

import (
	"context"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/taskclient"
)

// Tool name constant
const Name = "update_task"

const updateTaskPrompt = `Update a task's content.

Usage:
- The task_id parameter is the id of the task to update
- The new_content parameter is the replacement text for the task
- The user_id parameter identifies the task's owner
- The task must exist and belong to the user, otherwise an error outcome is returned`

// UpdateTaskInput represents the parameters for update_task
type UpdateTaskInput struct {
	TaskID     string `json:"task_id" required:"true" description:"The ID of the task to update"`
	NewContent string `json:"new_content" required:"true" description:"The new content for the task"`
	UserID     string `json:"user_id" required:"true" description:"The user ID"`
}

// Tool returns the update_task tool definition
func Tool(client *taskclient.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, updateTaskPrompt, makeUpdateTaskHandler(client))
}

func makeUpdateTaskHandler(client *taskclient.Client) func(ctx context.Context, input UpdateTaskInput) (taskclient.Outcome, error) {
	return func(ctx context.Context, input UpdateTaskInput) (taskclient.Outcome, error) {
		return *client.UpdateTask(ctx, input.TaskID, input.NewContent, input.UserID), nil
	}
}
