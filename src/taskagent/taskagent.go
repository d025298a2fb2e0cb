// Package taskagent assembles the fixed task-management toolbox.
package taskagent

import (
	"fmt"

	"github.com/elee1766/taskchat/src/agent"
	"github.com/elee1766/taskchat/src/taskagent/tools/tool_addtask"
	"github.com/elee1766/taskchat/src/taskagent/tools/tool_completetask"
	"github.com/elee1766/taskchat/src/taskagent/tools/tool_deletetask"
	"github.com/elee1766/taskchat/src/taskagent/tools/tool_listtasks"
	"github.com/elee1766/taskchat/src/taskagent/tools/tool_updatetask"
	"github.com/elee1766/taskchat/src/taskclient"
)

// NewToolbox builds the toolbox holding the five task tools. The set is
// fixed; there is no plugin surface.
func NewToolbox(client *taskclient.Client) (*agent.DefaultToolbox, error) {
	toolbox := agent.NewToolbox[agent.Tool]()

	constructors := []func(*taskclient.Client) (agent.Tool, error){
		tool_addtask.Tool,
		tool_listtasks.Tool,
		tool_completetask.Tool,
		tool_deletetask.Tool,
		tool_updatetask.Tool,
	}

	for _, construct := range constructors {
		tool, err := construct(client)
		if err != nil {
			return nil, fmt.Errorf("failed to build tool: %w", err)
		}
		if err := toolbox.RegisterTool(tool); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", tool.GetName(), err)
		}
	}

	return toolbox, nil
}
