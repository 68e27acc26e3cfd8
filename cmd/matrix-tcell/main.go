// Command matrix-tcell renders digital rain through a tcell screen.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"matrix_rain/internal/rain"
	"matrix_rain/internal/terminal"
)

func main() {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(logger); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if logs.Len() > 0 {
			fmt.Fprintln(os.Stderr, "logs:")
			fmt.Fprint(os.Stderr, logs.String())
		}
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	surface, err := terminal.OpenTcell()
	if err != nil {
		return fmt.Errorf("cannot open screen: %w", err)
	}
	defer surface.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rows, cols := surface.Size()
	cfg := rain.DefaultConfig(rows, cols)
	cfg.Logger = logger

	scheduler, err := rain.New(surface, cfg)
	if err != nil {
		return err
	}
	return scheduler.Run(ctx)
}
