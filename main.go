package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"photogrip/internal/cli"
)

func main() {
	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "photogrip: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
