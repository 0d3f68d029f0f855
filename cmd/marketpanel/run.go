package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

const stopTimeout = 15 * time.Second

type application interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
}

func run(ctx context.Context, app application) int {
	return runWith(ctx, app, os.Stderr)
}

func runWith(ctx context.Context, app application, stderr io.Writer) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to start marketpanel: %v\n", err)
		return 1
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(stderr, "failed to stop marketpanel: %v\n", err)
		return 1
	}
	return 0
}
