package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/elee1766/taskchat/src/aisdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingInput struct {
	Value string `json:"value" required:"true"`
}

type pingOutput struct {
	Echo string `json:"echo"`
}

func newPingTool(t *testing.T) Tool {
	t.Helper()
	tool, err := NewGenericTool("ping", "echoes its input",
		func(ctx context.Context, input pingInput) (pingOutput, error) {
			return pingOutput{Echo: input.Value}, nil
		})
	require.NoError(t, err)
	return tool
}

func TestRegisterAndExecuteTool(t *testing.T) {
	toolbox := NewToolbox[Tool]()
	require.NoError(t, toolbox.RegisterTool(newPingTool(t)))
	assert.True(t, toolbox.HasTool("ping"))

	resp, err := toolbox.ExecuteTool(context.Background(), &aisdk.ToolCall{
		ID:   "c1",
		Type: "function",
		Function: aisdk.FunctionCall{
			Name:      "ping",
			Arguments: json.RawMessage(`{"value":"hello"}`),
		},
	})
	require.NoError(t, err)
	assert.False(t, resp.IsError)

	var out pingOutput
	require.NoError(t, json.Unmarshal(resp.Content, &out))
	assert.Equal(t, "hello", out.Echo)
}

func TestRegisterDuplicateToolFails(t *testing.T) {
	toolbox := NewToolbox[Tool]()
	require.NoError(t, toolbox.RegisterTool(newPingTool(t)))
	assert.Error(t, toolbox.RegisterTool(newPingTool(t)))
}

func TestExecuteUnknownToolFails(t *testing.T) {
	toolbox := NewToolbox[Tool]()

	_, err := toolbox.ExecuteTool(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: "nope"},
	})
	assert.Error(t, err)
}

func TestGenericToolMissingRequiredField(t *testing.T) {
	tool := newPingTool(t)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{
			Name:      "ping",
			Arguments: json.RawMessage(`{}`),
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "required")
}

func TestGenericToolMalformedArguments(t *testing.T) {
	tool := newPingTool(t)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{
			Name:      "ping",
			Arguments: json.RawMessage(`not json`),
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsError)
}

func TestToChatTools(t *testing.T) {
	toolbox := NewToolbox[Tool]()
	require.NoError(t, toolbox.RegisterTool(newPingTool(t)))

	chatTools := ToChatTools(toolbox.Tools())
	require.Len(t, chatTools, 1)
	assert.Equal(t, "function", chatTools[0].Type)
	assert.Equal(t, "ping", chatTools[0].Function.Name)
	assert.NotNil(t, chatTools[0].Function.Parameters)
}
