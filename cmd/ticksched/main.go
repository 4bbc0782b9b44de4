package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"ticksched/internal/cli"
)

func main() {
	// Ctrl-C stops the tick driver; the report is still printed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
