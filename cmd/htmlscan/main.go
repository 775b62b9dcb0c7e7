// Command htmlscan tokenizes HTML documents.
//
// Logging:
//   - The logger is created here and passed to every command
//   - No global slog configuration (no slog.SetDefault)
//   - Scanner warnings are reported through the logger, output goes to stdout
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
)

var version = "dev"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd(logger).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
