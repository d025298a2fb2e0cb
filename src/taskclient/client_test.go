package taskclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTaskSuccess(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/add_task", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(Outcome{
			Success: true,
			TaskID:  "t1",
			Content: "buy milk",
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	outcome := client.AddTask(context.Background(), "buy milk", "u1")

	assert.True(t, outcome.Success)
	assert.Equal(t, "t1", outcome.TaskID)
	assert.Equal(t, "buy milk", outcome.Content)
	assert.Equal(t, "buy milk", gotBody["task"])
	assert.Equal(t, "u1", gotBody["user_id"])
}

func TestListTasksPassesUserID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/list_tasks", r.URL.Path)
		assert.Equal(t, "u1", r.URL.Query().Get("user_id"))

		json.NewEncoder(w).Encode(Outcome{
			Success: true,
			Tasks:   []Task{{ID: "t1", Content: "buy milk"}},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	outcome := client.ListTasks(context.Background(), "u1")

	assert.True(t, outcome.Success)
	require.Len(t, outcome.Tasks, 1)
	assert.Equal(t, "t1", outcome.Tasks[0].ID)
}

func TestServiceErrorPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Outcome{
			Success: false,
			Error:   "not_found",
			Message: "Could not find that task.",
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	outcome := client.CompleteTask(context.Background(), "nope", "u1")

	assert.False(t, outcome.Success)
	assert.Equal(t, "not_found", outcome.Error)
}

func TestUnreachableServiceIsDependencyError(t *testing.T) {
	// Port 1 is never listening.
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	outcome := client.DeleteTask(context.Background(), "t1", "u1")

	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindDependency, outcome.Error)
	assert.NotEmpty(t, outcome.Message)
}

func TestErrorStatusIsDependencyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	outcome := client.UpdateTask(context.Background(), "t1", "new", "u1")

	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindDependency, outcome.Error)
}

func TestMalformedResponseIsDependencyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	outcome := client.ListTasks(context.Background(), "u1")

	assert.False(t, outcome.Success)
	assert.Equal(t, ErrorKindDependency, outcome.Error)
}
