package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diskmon/internal/collector"
	"diskmon/internal/config"
	"diskmon/internal/core"
	"diskmon/internal/logger"
	"diskmon/internal/notify"
	"diskmon/internal/storage/sqlite"
	"diskmon/internal/transport/rest"
	"diskmon/internal/transport/websocket"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	hostname, err := os.Hostname()
	if err != nil {
		log.Warn("could not determine hostname", "error", err)
		hostname = "unknown"
	}

	db, err := sqlite.Open(cfg.DBPath, log)
	if err != nil {
		log.Error("failed to init DB", "error", err)
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("sqlite close failed", "error", err)
		}
	}()

	snapshots := sqlite.NewSnapshotRepository(db)
	alertRepo := sqlite.NewAlertRepository(db)

	var notifier core.Notifier
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.WebhookURL, log)
	}

	engine := core.NewAlertEngine(alertRepo, notifier, cfg.AlertThreshold, log)
	sampler := collector.New(hostname, log)

	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	pipeline := core.NewPipeline(sampler, snapshots, engine, hub, log)
	sched := core.NewScheduler(cfg.PollInterval, log, pipeline.RunCycle)
	go sched.Start(ctx)

	wsHandler := websocket.NewHandler(hub, cfg, log)
	usageHandler := rest.NewUsageHandler(sampler, snapshots, hostname, engine.Threshold())
	alertHandler := rest.NewAlertHandler(engine)

	router := rest.NewRouter(cfg, &rest.RouterDeps{
		WS:    wsHandler,
		Usage: usageHandler,
		Alert: alertHandler,
	})

	srv := rest.NewServer(router, cfg.Address)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server", "address", cfg.Address, "poll_interval", cfg.PollInterval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown error", "error", err)
		}

	case err := <-errCh:
		log.Error("http server error", "error", err)
	}

	log.Info("server stopped")
}
