package config

// Config represents the complete configuration for taskchat
type Config struct {
	// Version of the configuration format
	Version string `json:"version"`

	// Server configures the HTTP API surface.
	Server ServerConfig `json:"server"`

	// API configures the reasoning backend.
	API APIConfig `json:"api"`

	// TaskService configures the external task service.
	TaskService TaskServiceConfig `json:"task_service"`

	// Runner configures the run polling loop.
	Runner RunnerConfig `json:"runner"`

	// Data directory configuration
	Data DataConfig `json:"data,omitempty"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	Addr string `json:"addr" validate:"required"`
	// JWTSecret signs and verifies the bearer tokens identifying users.
	JWTSecret string `json:"jwt_secret" validate:"required,min=16"`
}

// APIConfig defines reasoning backend settings.
type APIConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url" validate:"omitempty,url"`
	Model   string `json:"model" validate:"required"`
}

// TaskServiceConfig defines task service settings.
type TaskServiceConfig struct {
	BaseURL   string `json:"base_url" validate:"required,url"`
	APIKey    string `json:"api_key"`
	TimeoutMS int    `json:"timeout_ms" validate:"omitempty,min=100"`
}

// RunnerConfig defines run polling settings.
type RunnerConfig struct {
	PollIntervalMS int    `json:"poll_interval_ms" validate:"omitempty,min=50"`
	MaxPolls       int    `json:"max_polls" validate:"omitempty,min=1"`
	SystemPrompt   string `json:"system_prompt,omitempty"`
}

// DataConfig defines data directory configuration
type DataConfig struct {
	// Directory where application data is stored
	Directory string `json:"directory,omitempty"`
}
