package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/buildinfo"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/cli"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/config"
	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	app.Run(ctx)
}
