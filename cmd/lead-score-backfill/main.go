// Command lead-score-backfill rescores every lead in the database, across
// all tenants, using keyset pagination. Intended as a one-off run after a
// scoring model change.
package main

import (
	"context"
	"time"

	"leadpulse_backend/internal/leads/repository"
	"leadpulse_backend/internal/leads/scoring"
	"leadpulse_backend/platform/config"
	"leadpulse_backend/platform/db"
	"leadpulse_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const batchSize = 100

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting lead score backfill")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := repository.New(pool)
	scorer := scoring.New(repo, nil, cfg, log)

	// Pace the sweep so a full-table rescore cannot saturate the pool.
	limiter := rate.NewLimiter(rate.Limit(50), 10)

	var processed int
	var succeeded int

	cursorTime := time.Time{}
	cursorID := uuid.Nil

	for {
		refs, err := repo.ListLeadRefsPage(ctx, batchSize, cursorTime, cursorID)
		if err != nil {
			log.Error("failed to list leads", "error", err)
			break
		}
		if len(refs) == 0 {
			break
		}

		for _, ref := range refs {
			processed++
			cursorTime = ref.CreatedAt
			cursorID = ref.ID

			if err := limiter.Wait(ctx); err != nil {
				log.Error("backfill aborted", "error", err)
				return
			}

			if err := backfillLead(ctx, scorer, ref, cfg.GetScoringLeadTimeout()); err != nil {
				log.Error("failed to rescore lead", "leadId", ref.ID, "tenantId", ref.OrganizationID, "error", err)
				continue
			}
			succeeded++
		}
	}

	log.Info("lead score backfill completed", "processed", processed, "updated", succeeded)
}

func backfillLead(parentCtx context.Context, scorer *scoring.Service, ref repository.LeadRef, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(parentCtx, timeout)
	defer cancel()

	_, err := scorer.ScoreLead(ctx, ref.ID, ref.OrganizationID)
	return err
}
