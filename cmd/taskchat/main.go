package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	Config   string `short:"c" help:"Path to config file"`
	LogLevel string `default:"info" help:"Log level"`

	Serve ServeCmd `cmd:"" help:"Start the chat HTTP server"`
	Chat  ChatCmd  `cmd:"" help:"Send a single chat turn from the terminal"`
	Token TokenCmd `cmd:"" help:"Mint a bearer token for a user"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("taskchat"),
		kong.Description("Conversational task assistant"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
