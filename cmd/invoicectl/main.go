package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		logger.Error("invoicectl failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
