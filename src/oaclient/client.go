// Package oaclient implements the run backend contract against an
// assistants-style threads/runs HTTP API.
package oaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/elee1766/taskchat/src/aisdk"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 30 * time.Second
)

var _ aisdk.RunClient = (*Client)(nil)

// Config holds the run backend client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *slog.Logger
}

// Client is the threads/runs API client.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new run backend client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "run_client")

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// Model returns the model the client is configured to run with.
func (c *Client) Model() string {
	return c.config.Model
}

type createThreadRequest struct {
	Messages []*aisdk.Message `json:"messages,omitempty"`
}

// CreateThread creates a thread seeded with the given message history.
func (c *Client) CreateThread(ctx context.Context, messages []*aisdk.Message) (*aisdk.Thread, error) {
	var thread aisdk.Thread
	err := c.do(ctx, http.MethodPost, "/threads", createThreadRequest{Messages: messages}, &thread)
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// CreateRun starts a run against a thread.
func (c *Client) CreateRun(ctx context.Context, threadID string, req *aisdk.CreateRunRequest) (*aisdk.Run, error) {
	if req.Model == "" {
		req.Model = c.config.Model
	}
	var run aisdk.Run
	err := c.do(ctx, http.MethodPost, "/threads/"+threadID+"/runs", req, &run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// RetrieveRun fetches the current state of a run.
func (c *Client) RetrieveRun(ctx context.Context, threadID, runID string) (*aisdk.Run, error) {
	var run aisdk.Run
	err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+runID, nil, &run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

type submitToolOutputsRequest struct {
	ToolOutputs []aisdk.ToolOutput `json:"tool_outputs"`
}

// SubmitToolOutputs submits all pending tool results for a run as one batch.
func (c *Client) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []aisdk.ToolOutput) (*aisdk.Run, error) {
	var run aisdk.Run
	path := "/threads/" + threadID + "/runs/" + runID + "/submit_tool_outputs"
	err := c.do(ctx, http.MethodPost, path, submitToolOutputsRequest{ToolOutputs: outputs}, &run)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

type listMessagesResponse struct {
	Data []*aisdk.ThreadMessage `json:"data"`
}

// ListThreadMessages returns the thread's messages in ascending creation order.
func (c *Client) ListThreadMessages(ctx context.Context, threadID string) ([]*aisdk.ThreadMessage, error) {
	var resp listMessagesResponse
	err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/messages?order=asc", nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DeleteThread removes a thread.
func (c *Client) DeleteThread(ctx context.Context, threadID string) error {
	return c.do(ctx, http.MethodDelete, "/threads/"+threadID, nil, nil)
}

// do performs one API request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	logger := c.logger.With("method", method, "path", path)

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", "error", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("received error response", "status_code", resp.StatusCode)
		return c.handleError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error("failed to decode response", "error", err)
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// handleError processes error responses from the API.
func (c *Client) handleError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var errResp aisdk.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return fmt.Errorf("api error: status %d", resp.StatusCode)
	}
	return fmt.Errorf("api error: %s (status %d)", errResp.Error.Message, resp.StatusCode)
}
