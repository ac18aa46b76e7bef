package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/janisto/secure-hello/internal/platform/config"
	applog "github.com/janisto/secure-hello/internal/platform/logging"
	"github.com/janisto/secure-hello/internal/server"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if syncErr := applog.Sync(); syncErr != nil {
		applog.LogError(context.Background(), "logger sync error", syncErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogError(ctx, "config load failed", err)
		return err
	}

	if err := server.New(cfg, server.WithVersion(Version)).Run(ctx); err != nil {
		applog.LogError(ctx, "server failed", err)
		return err
	}
	return nil
}
