package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/axondata/panelctl/cmd/panelctl/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		commands.PrintErr("Error: %v", err)
		os.Exit(1)
	}
}
