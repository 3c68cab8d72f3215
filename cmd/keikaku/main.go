// Package main provides the keikaku command.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/keikaku/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd()
	root.SetContext(ctx)
	if err := cli.ExecuteWith(root, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}
