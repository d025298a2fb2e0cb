package tool_addtask

import (
	"context"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/taskclient"
)

// Tool name constant
const Name = "add_task"

const addTaskPrompt = `Add a new task to the user's task list.

Usage:
- The task parameter is the text of the task to add
- The user_id parameter identifies whose list the task is added to
- Returns the created task's id and its content`

// AddTaskInput represents the parameters for add_task
type AddTaskInput struct {
	Task   string `json:"task" required:"true" description:"The task to add"`
	UserID string `json:"user_id" required:"true" description:"The user ID"`
}

// Tool returns the add_task tool definition
func Tool(client *taskclient.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, addTaskPrompt, makeAddTaskHandler(client))
}

func makeAddTaskHandler(client *taskclient.Client) func(ctx context.Context, input AddTaskInput) (taskclient.Outcome, error) {
	return func(ctx context.Context, input AddTaskInput) (taskclient.Outcome, error) {
		return *client.AddTask(ctx, input.Task, input.UserID), nil
	}
}
