package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/elee1766/taskchat/src/app"
	"github.com/elee1766/taskchat/src/chat"
	"github.com/elee1766/taskchat/src/config"
	"github.com/elee1766/taskchat/src/httpapi"
)

// ChatCmd sends one chat turn directly through the service, bypassing HTTP.
type ChatCmd struct {
	Text           []string `arg:"" help:"The message to send"`
	User           string   `short:"u" required:"" help:"User id to act as"`
	ConversationID string   `help:"Continue an existing conversation"`
}

func (c *ChatCmd) Run(cli *CLI) error {
	logger := createLogger(cli.LogLevel)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	ctx := context.Background()
	appInstance, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	result, err := appInstance.Chat.Turn(ctx, chat.TurnRequest{
		UserID:         c.User,
		ConversationID: c.ConversationID,
		Message:        strings.Join(c.Text, " "),
	})
	if err != nil {
		return err
	}

	fmt.Println(result.Response)
	fmt.Printf("\nconversation: %s\n", result.ConversationID)
	for _, call := range result.ToolCalls {
		fmt.Printf("tool: %s success=%v\n", call.Tool, call.Success)
	}
	return nil
}

// TokenCmd mints a bearer token for calling the HTTP API.
type TokenCmd struct {
	User string        `short:"u" required:"" help:"User id to issue the token for"`
	TTL  time.Duration `default:"24h" help:"Token lifetime"`
}

func (t *TokenCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}

	token, err := httpapi.NewTokenVerifier(cfg.Server.JWTSecret).MintToken(t.User, t.TTL)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
