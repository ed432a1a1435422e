// Package leads provides the lead scoring bounded context module.
// This file defines the module that encapsulates all leads setup and route registration.
package leads

import (
	"context"

	"leadpulse_backend/internal/events"
	apphttp "leadpulse_backend/internal/http"
	"leadpulse_backend/internal/leads/handler"
	"leadpulse_backend/internal/leads/management"
	"leadpulse_backend/internal/leads/repository"
	"leadpulse_backend/internal/leads/scoring"
	"leadpulse_backend/platform/config"
	"leadpulse_backend/platform/logger"
	"leadpulse_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	management *management.Service
	scoring    *scoring.Service
	log        *logger.Logger
}

// NewModule creates and initializes the leads module with all its dependencies.
// sweeps may be nil when no task queue is configured; recalculation then runs
// in-process.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, sweeps handler.SweepEnqueuer, val *validator.Validator, cfg *config.Config, log *logger.Logger) *Module {
	repo := repository.New(pool)

	mgmtSvc := management.New(repo, eventBus)
	scoringSvc := scoring.New(repo, eventBus, cfg, log)

	h := handler.New(mgmtSvc, scoringSvc, sweeps, val, log)

	return &Module{
		handler:    h,
		management: mgmtSvc,
		scoring:    scoringSvc,
		log:        log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// ScoringService returns the scoring service for external use (worker, backfill).
func (m *Module) ScoringService() *scoring.Service {
	return m.scoring
}

// ManagementService returns the lead management service for external use.
func (m *Module) ManagementService() *management.Service {
	return m.management
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// All leads routes require authentication
	leadsGroup := ctx.Protected.Group("/leads")
	m.handler.RegisterRoutes(leadsGroup)

	campaignsGroup := ctx.Protected.Group("/campaigns")
	m.handler.RegisterCampaignRoutes(campaignsGroup)
}

// RegisterHandlers subscribes to domain events for audit logging.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadScored{}.EventName(), m)
	bus.Subscribe(events.ScoreSweepCompleted{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadScored:
		m.log.Info("lead scored",
			"leadId", e.LeadID,
			"tenantId", e.TenantID,
			"totalScore", e.TotalScore,
			"grade", e.Grade,
			"priority", e.Priority,
			"riskLevel", e.RiskLevel,
		)
		return nil
	case events.ScoreSweepCompleted:
		m.log.Info("score sweep completed",
			"tenantId", e.TenantID,
			"attempted", e.Attempted,
			"succeeded", e.Succeeded,
			"failed", e.Failed,
		)
		return nil
	default:
		return nil
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
