package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/clipd/clipd-server/internal/api"
	"github.com/clipd/clipd-server/internal/config"
	"github.com/clipd/clipd-server/internal/logging"
	"github.com/clipd/clipd-server/internal/media"
	"github.com/clipd/clipd-server/internal/pipeline"
	"github.com/clipd/clipd-server/internal/workspace"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal error: %v", err)
	}
}

func run() error {
	startTime := time.Now()

	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel())
	logger.Info("starting clipd",
		"version", config.Version,
		"work_dir", logging.SanitizePath(cfg.WorkDir()),
	)

	ws := workspace.NewManager(cfg.WorkDir(), logger)
	if _, err := ws.Ensure(); err != nil {
		return fmt.Errorf("failed to create work dir: %w", err)
	}
	ws.SweepStale(cfg.SweepMaxAge())

	// Missing tools are a warning, not a startup failure; requests that
	// need them fail individually with the tool's error.
	for _, bin := range []string{cfg.YtDlpPath(), cfg.FFmpegPath()} {
		if _, err := exec.LookPath(bin); err != nil {
			logger.Warn("external tool not found on PATH", "binary", bin)
		}
	}

	fetchTool := media.NewExecTool("yt-dlp", cfg.YtDlpPath(), logger)
	transcodeTool := media.NewExecTool("ffmpeg", cfg.FFmpegPath(), logger)

	orchestrator := pipeline.NewOrchestrator(
		ws,
		media.NewFetcher(fetchTool, cfg.FetchTimeout()),
		media.NewTranscoder(transcodeTool, cfg.TranscodeTimeout()),
		logger,
	)

	apiServer := api.NewServer(api.ServerConfig{
		Port:         cfg.Port(),
		Orchestrator: orchestrator,
		Logger:       logger,
		StartTime:    startTime,
		Version:      config.Version,
	})

	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown HTTP server", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
