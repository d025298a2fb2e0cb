package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elee1766/taskchat/src/app"
	"github.com/elee1766/taskchat/src/config"
	"github.com/elee1766/taskchat/src/httpapi"
)

// ServeCmd starts the HTTP API.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

func (s *ServeCmd) Run(cli *CLI) error {
	logger := createLogger(cli.LogLevel)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appInstance, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	verifier := httpapi.NewTokenVerifier(cfg.Server.JWTSecret)
	server := httpapi.NewServer(cfg.Server.Addr, appInstance.Chat, appInstance.Store, verifier, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
