package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/vkuzmenko/profcli/internal/client/cli"
	"github.com/vkuzmenko/profcli/internal/client/config"
	"github.com/vkuzmenko/profcli/internal/logging"
)

func main() {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to start", "error", err)
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	app.Run(ctx)
}
