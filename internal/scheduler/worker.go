package scheduler

import (
	"context"
	"fmt"

	"leadpulse_backend/internal/leads/scoring"
	"leadpulse_backend/platform/config"
	"leadpulse_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	scoring *scoring.Service
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, scoringSvc *scoring.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		scoring: scoringSvc,
		log:     log,
	}

	mux.HandleFunc(TaskLeadScoreSweep, w.handleLeadScoreSweep)

	return w, nil
}

func (w *Worker) handleLeadScoreSweep(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadScoreSweepPayload(task)
	if err != nil {
		return err
	}

	tenantID, err := uuid.Parse(payload.TenantID)
	if err != nil {
		return err
	}

	var campaignID *uuid.UUID
	if payload.CampaignID != nil {
		parsed, err := uuid.Parse(*payload.CampaignID)
		if err != nil {
			return err
		}
		campaignID = &parsed
	}

	// Per-lead failures are absorbed by the sweep itself; only enumeration
	// errors bubble up and trigger an asynq retry.
	result, err := w.scoring.RecalculateAll(ctx, tenantID, campaignID)
	if err != nil {
		return err
	}

	w.log.Info("score sweep task complete",
		"tenantId", tenantID,
		"attempted", result.Attempted,
		"succeeded", result.Succeeded,
		"failed", len(result.Failed),
	)

	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
