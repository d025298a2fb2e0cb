package config

// DefaultConfig returns a default configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr: ":8080",
		},
		API: APIConfig{
			Model: "gpt-4-turbo-preview",
		},
		TaskService: TaskServiceConfig{
			BaseURL:   "http://localhost:8000",
			TimeoutMS: 30000,
		},
		Runner: RunnerConfig{
			PollIntervalMS: 500,
			MaxPolls:       120,
		},
	}
}
