package main

import (
	"context"
	"io"
	"log/slog"

	"errkb/internal/chat"
	"errkb/internal/config"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.AppConfig
	Logger  *slog.Logger
	Service chat.Service
	Handler *chat.Handler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" env:"ERRKB_CONFIG" help:"Path to YAML config file (default ./config.yaml, then ~/.config/errkb/config.yaml)"`
	LogJSON bool   `name:"log-json" help:"Write logs as JSON"`

	Lookup LookupCmd `cmd:"" help:"Look up an error code"`
	Search SearchCmd `cmd:"" help:"Search codes and explanations by keyword"`
	Reload ReloadCmd `cmd:"" help:"Rebuild the knowledge base from the source document"`
	Chat   ChatCmd   `cmd:"" help:"Chat with the knowledge base as the bot would"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Code string `arg:"" help:"Error code, e.g. ORA-00904"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Keyword []string `arg:"" help:"Keyword to search for"`
	Limit   int      `short:"n" default:"0" help:"Maximum results to print (0 prints all)"`
}

// ReloadCmd is the "reload" subcommand.
type ReloadCmd struct {
	As string `name:"as" env:"ERRKB_CALLER" help:"Caller ID to authorize as (defaults to the configured operator)"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	As      string `name:"as" env:"ERRKB_CALLER" help:"Sender ID for messages (defaults to the configured operator)"`
	Message string `short:"m" help:"Send one message, print the reply and exit"`
}

// callerID resolves the identity a local command acts as.
func callerID(as string, cfg *config.AppConfig) string {
	if as != "" {
		return as
	}
	return cfg.Operator.ID
}
