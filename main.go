package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var c CLI
	kctx := kong.Parse(&c,
		kong.Name("focus-widget"),
		kong.Description("Tracks time spent in front of the camera."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
	)

	// stdout belongs to the terminal UI in tui mode.
	var logFallback io.Writer = os.Stdout
	if kctx.Command() == "tui" {
		logFallback = io.Discard
	}
	g := NewGlobals(&c, logFallback)

	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(g)
	if err != nil {
		g.Logger.Error("command failed", "command", kctx.Command(), "error", err)
	}
	_ = g.Close()
	if err != nil {
		stop()
		os.Exit(1)
	}
}
