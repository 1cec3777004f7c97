package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/crimson-sun/actionlog/internal/config"

	// Register connector implementations.
	_ "github.com/crimson-sun/actionlog/internal/connector/file"
	_ "github.com/crimson-sun/actionlog/internal/connector/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "actionlog: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := newCLIApp(cfg)
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "actionlog: %v\n", err)
		stop()
		os.Exit(1)
	}
}
