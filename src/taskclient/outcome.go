package taskclient

// ErrorKindDependency marks outcomes produced by transport failures,
// timeouts, or malformed responses rather than by the service itself.
const ErrorKindDependency = "DependencyError"

// Task is a single task as reported by the task service.
type Task struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
}

// Outcome is the uniform result shape for every task service call. Success
// payload fields are populated per operation; on failure Error holds the
// error kind and Message a user-safe description.
type Outcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`

	TaskID    string `json:"task_id,omitempty"`
	Content   string `json:"content,omitempty"`
	Completed bool   `json:"completed,omitempty"`
	Deleted   bool   `json:"deleted,omitempty"`
	Tasks     []Task `json:"tasks,omitempty"`
}

// dependencyFailure wraps a transport-level error into a failed outcome.
// The raw error text stays out of Message; it is for logs only.
func dependencyFailure(err error) *Outcome {
	return &Outcome{
		Success: false,
		Error:   ErrorKindDependency,
		Message: "The task service is currently unavailable. Please try again.",
	}
}
