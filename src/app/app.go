// Package app wires the application's services together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/elee1766/taskchat/src/chat"
	"github.com/elee1766/taskchat/src/config"
	"github.com/elee1766/taskchat/src/oaclient"
	"github.com/elee1766/taskchat/src/runner"
	"github.com/elee1766/taskchat/src/storage"
	"github.com/elee1766/taskchat/src/taskagent"
	"github.com/elee1766/taskchat/src/taskclient"
)

// App holds the constructed services. Clients are explicit dependencies,
// never process-wide globals, so tests can substitute fakes.
type App struct {
	Store  *storage.DB
	Chat   *chat.Service
	Runner *runner.Runner
	Logger *slog.Logger
	Config *config.Config
}

// New creates a new App instance with all services initialized
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	dbPath := cfg.Data.Directory
	if dbPath == "" {
		dbPath = config.GetDefaultStoragePaths().DatabasePath
	} else {
		dbPath = filepath.Join(dbPath, "conversations.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	tasks := taskclient.NewClient(taskclient.Config{
		BaseURL: cfg.TaskService.BaseURL,
		APIKey:  cfg.TaskService.APIKey,
		Timeout: time.Duration(cfg.TaskService.TimeoutMS) * time.Millisecond,
		Logger:  logger,
	})

	toolbox, err := taskagent.NewToolbox(tasks)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to build toolbox: %w", err)
	}

	runClient := oaclient.NewClient(oaclient.Config{
		APIKey:  cfg.API.APIKey,
		BaseURL: cfg.API.BaseURL,
		Model:   cfg.API.Model,
		Logger:  logger,
	})

	runnerSvc, err := runner.New(runner.Config{
		Client:       runClient,
		Toolbox:      toolbox,
		SystemPrompt: cfg.Runner.SystemPrompt,
		PollInterval: time.Duration(cfg.Runner.PollIntervalMS) * time.Millisecond,
		MaxPolls:     cfg.Runner.MaxPolls,
		Logger:       logger,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to build runner: %w", err)
	}

	chatSvc, err := chat.NewService(chat.ServiceConfig{
		Store:  store,
		Runner: runnerSvc,
		Logger: logger,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		Store:  store,
		Chat:   chatSvc,
		Runner: runnerSvc,
		Logger: logger,
		Config: cfg,
	}, nil
}

// Close closes all resources held by the app
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
