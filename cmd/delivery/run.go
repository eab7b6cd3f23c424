package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run starts the graph, waits for a signal or an fx shutdown, then stops it.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "delivery: start: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "delivery: stop: %v\n", err)
		os.Exit(1)
	}
}
