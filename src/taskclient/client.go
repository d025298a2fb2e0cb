// Package taskclient is the HTTP client for the external task service.
// Every call returns a structured Outcome; transport failures, timeouts,
// and malformed responses are folded into the outcome instead of escaping
// as errors, so the run loop can hand them straight back to the model.
package taskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 30 * time.Second
)

// Config holds the task service client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client talks to the task service. It performs no retries; the service
// applies its own idempotent semantics.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new task service client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_client")

	return &Client{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}
}

// AddTask creates a new task for the user.
func (c *Client) AddTask(ctx context.Context, task, userID string) *Outcome {
	return c.call(ctx, http.MethodPost, "/api/add_task", map[string]string{
		"task":    task,
		"user_id": userID,
	})
}

// ListTasks returns all tasks for the user.
func (c *Client) ListTasks(ctx context.Context, userID string) *Outcome {
	path := "/api/list_tasks?user_id=" + url.QueryEscape(userID)
	return c.call(ctx, http.MethodGet, path, nil)
}

// CompleteTask marks a task as complete.
func (c *Client) CompleteTask(ctx context.Context, taskID, userID string) *Outcome {
	return c.call(ctx, http.MethodPost, "/api/complete_task", map[string]string{
		"task_id": taskID,
		"user_id": userID,
	})
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID, userID string) *Outcome {
	return c.call(ctx, http.MethodDelete, "/api/delete_task", map[string]string{
		"task_id": taskID,
		"user_id": userID,
	})
}

// UpdateTask replaces a task's content.
func (c *Client) UpdateTask(ctx context.Context, taskID, newContent, userID string) *Outcome {
	return c.call(ctx, http.MethodPut, "/api/update_task", map[string]string{
		"task_id":     taskID,
		"new_content": newContent,
		"user_id":     userID,
	})
}

// call performs one request and normalizes every failure mode into an Outcome.
func (c *Client) call(ctx context.Context, method, path string, body map[string]string) *Outcome {
	logger := c.logger.With("method", method, "path", path)

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return dependencyFailure(fmt.Errorf("failed to marshal request: %w", err))
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return dependencyFailure(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("task service unreachable", "error", err)
		return dependencyFailure(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		logger.Warn("failed to read task service response", "error", err)
		return dependencyFailure(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("task service returned error status", "status", resp.StatusCode)
		return dependencyFailure(fmt.Errorf("task service returned status %d", resp.StatusCode))
	}

	var outcome Outcome
	if err := json.Unmarshal(respBody, &outcome); err != nil {
		logger.Warn("malformed task service response", "error", err)
		return dependencyFailure(fmt.Errorf("malformed response: %w", err))
	}

	return &outcome
}
