package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"shopify-template-sync/internal/infrastructure/console"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Execute(ctx)
	stop()
	if err != nil {
		console.NewReporter(os.Stderr).Failure("Error: %v", err)
		os.Exit(1)
	}
}
