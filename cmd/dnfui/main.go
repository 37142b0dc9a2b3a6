package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ErikMN/dnf-ui/internal/app"
	"github.com/ErikMN/dnf-ui/internal/config"
	"github.com/ErikMN/dnf-ui/internal/history"
	"github.com/ErikMN/dnf-ui/internal/log"
	"github.com/ErikMN/dnf-ui/internal/prefs"
	"github.com/ErikMN/dnf-ui/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnfui: %v\n", err)
		return 1
	}

	if err := log.Setup(cfg.LogLevel, cfg.LogPath); err != nil {
		fmt.Fprintf(os.Stderr, "dnfui: %v (continuing without log file)\n", err)
	}
	defer func() { _ = log.Close() }()
	logger := log.Get()

	// Search history is a convenience; run without it if the store is broken.
	hist, err := history.Open(ctx, cfg.HistoryPath, cfg.HistoryLimit)
	if err != nil {
		logger.Warn("search history unavailable", "error", err)
		hist = nil
	}

	core := app.New(app.Options{
		Config:  cfg,
		History: hist,
		Logger:  logger,
	})
	defer func() { _ = core.Close() }()

	userPrefs, _ := prefs.Load("")

	err = ui.Run(ui.Options{
		Context: ctx,
		App:     core,
		Logger:  log.WithComponent("ui"),
		Prefs:   userPrefs,
		LogPath: cfg.LogPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "dnfui: %v\n", err)
		return 1
	}
	return 0
}
