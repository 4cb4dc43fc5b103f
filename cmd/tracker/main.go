package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"yt-growth-tracker/internal/collector"
	"yt-growth-tracker/internal/comparator"
	"yt-growth-tracker/internal/config"
	"yt-growth-tracker/internal/dashboard"
	"yt-growth-tracker/internal/export"
	"yt-growth-tracker/internal/ingest"
	"yt-growth-tracker/internal/report"
)

func main() {
	// 1. Setup
	godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	// 2. Run Dashboard
	if cfg.Dashboard {
		go func() {
			logger.Info("Starting dashboard", "port", cfg.Port)
			if err := dashboard.StartServer(cfg.OutputPath, cfg.Port); err != nil {
				logger.Error("Dashboard failed", "err", err)
			}
		}()
	}

	// 3. Load Inputs
	targets, err := ingest.LoadTargets(cfg.InputPath)
	if err != nil {
		logger.Error("Failed to load channel list", "path", cfg.InputPath, "err", err)
		os.Exit(1)
	}
	if len(targets) == 0 {
		logger.Error("No valid channels in input", "path", cfg.InputPath)
		os.Exit(1)
	}

	// 4. Initialize Client (Using Factory)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := collector.NewCollector(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize collector", "err", err)
		os.Exit(1)
	}
	logger.Info("Collector initialized", "mode", cfg.CollectorMode)

	// 5. Graceful Shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	// 6. Fetch, compute, export
	logger.Info("Starting comparison run", "channels", len(targets))
	rows := comparator.Run(ctx, client, targets)

	if err := export.WriteCSV(cfg.OutputPath, rows); err != nil {
		logger.Error("Export failed", "path", cfg.OutputPath, "err", err)
		os.Exit(1)
	}
	logger.Info("Comparison exported", "path", cfg.OutputPath, "rows", len(rows))

	report.Print(os.Stdout, rows)

	// Keep serving charts until interrupted
	if cfg.Dashboard {
		<-ctx.Done()
	}
}
