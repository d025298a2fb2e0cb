package tool_listtasks

import (
	"context"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/taskclient"
)

// Tool name constant
const Name = "list_tasks"

const listTasksPrompt = `List all current tasks for a user.

Usage:
- The user_id parameter identifies whose tasks are listed
- Returns the user's tasks with their ids, content, and completion state`

// ListTasksInput represents the parameters for list_tasks
type ListTasksInput struct {
	UserID string `json:"user_id" required:"true" description:"The user ID"`
}

// Tool returns the list_tasks tool definition
func Tool(client *taskclient.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, listTasksPrompt, makeListTasksHandler(client))
}

func makeListTasksHandler(client *taskclient.Client) func(ctx context.Context, input ListTasksInput) (taskclient.Outcome, error) {
	return func(ctx context.Context, input ListTasksInput) (taskclient.Outcome, error) {
		return *client.ListTasks(ctx, input.UserID), nil
	}
}
