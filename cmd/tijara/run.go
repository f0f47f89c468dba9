package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"
)

// run drives the fx application: start, wait for a shutdown signal or an
// internal shutdown, then stop with a fresh context since the signal
// context is already cancelled by then.
func run(ctx context.Context, app *fx.App) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}
