package main

import (
	"context"
	"fmt"
	"os"

	"bar-inventory/internal/adapters/cli"
	"bar-inventory/internal/ai"
	"bar-inventory/internal/app"
	"bar-inventory/internal/config"
	"bar-inventory/internal/core"
	"bar-inventory/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	// The CLI prints to stdout; service logs go to stderr at warn and above by default.
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	log := config.NewLogger(level, "text")
	log.SetOutput(os.Stderr)

	ctx := context.Background()
	repo, closeRepo, err := store.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: %v\n", err)
		os.Exit(1)
	}
	defer closeRepo()

	var capturer core.OrderCapturer
	if cfg.OpenAIKey != "" {
		capturer = ai.NewAgent(cfg.OpenAIKey, cfg.OpenAIModel)
	}
	svc := app.New(repo, capturer, log)

	if err := cli.Run(ctx, svc, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeRepo()
		os.Exit(1)
	}
}
