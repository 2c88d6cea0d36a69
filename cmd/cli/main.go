package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/cleangrid/internal/app"
	"github.com/specialistvlad/cleangrid/internal/cli"
	"github.com/specialistvlad/cleangrid/internal/hcl"
)

// main is the entrypoint for the cleangrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, logW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// A panic means a broken simulation invariant; report it as a failed run.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simulation panicked: %v", r)
		}
	}()

	cleangridApp := app.NewApp(outW, logW, appConfig, hcl.NewLoader())
	_, err = cleangridApp.Run(ctx)
	return err
}
