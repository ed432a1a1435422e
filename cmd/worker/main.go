package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"leadpulse_backend/internal/events"
	"leadpulse_backend/internal/leads/repository"
	"leadpulse_backend/internal/leads/scoring"
	"leadpulse_backend/internal/scheduler"
	"leadpulse_backend/platform/config"
	"leadpulse_backend/platform/db"
	"leadpulse_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting score sweep worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	repo := repository.New(pool)
	scoringSvc := scoring.New(repo, eventBus, cfg, log)

	worker, err := scheduler.NewWorker(cfg, scoringSvc, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("worker stopped")
}
