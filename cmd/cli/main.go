package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/uiprobe/internal/app"
	"github.com/specialistvlad/uiprobe/internal/cli"
	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/hcl_adapter"
)

// main is the entrypoint for the uiprobe application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailed)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Results go to outW, logs to logW.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := hcl_adapter.NewLoader()
	uiprobeApp := app.NewApp(outW, logW, appConfig, loader)

	summary, err := uiprobeApp.Run(ctx)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			return &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
		}
		return &cli.ExitError{Code: cli.ExitFailed, Message: err.Error()}
	}
	if !summary.OK() {
		_, failed := summary.Counts()
		return &cli.ExitError{Code: cli.ExitFailed, Message: fmt.Sprintf("%d scenario(s) failed", failed)}
	}
	return nil
}
