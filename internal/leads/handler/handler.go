package handler

import (
	"context"
	"net/http"

	"leadpulse_backend/internal/leads/management"
	"leadpulse_backend/internal/leads/scoring"
	"leadpulse_backend/internal/leads/transport"
	"leadpulse_backend/platform/httpkit"
	"leadpulse_backend/platform/logger"
	"leadpulse_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// SweepEnqueuer schedules a batch recalculation sweep for asynchronous
// execution. Implemented by the scheduler client.
type SweepEnqueuer interface {
	EnqueueScoreSweep(ctx context.Context, tenantID uuid.UUID, campaignID *uuid.UUID) error
}

// Handler exposes the leads HTTP surface.
type Handler struct {
	mgmt    *management.Service
	scoring *scoring.Service
	sweeps  SweepEnqueuer
	val     *validator.Validator
	log     *logger.Logger
}

func New(mgmt *management.Service, scoringSvc *scoring.Service, sweeps SweepEnqueuer, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{
		mgmt:    mgmt,
		scoring: scoringSvc,
		sweeps:  sweeps,
		val:     val,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.POST("/:id/activities", h.RecordActivity)
	rg.POST("/:id/score", h.Score)
	rg.GET("/:id/score", h.GetScore)
	rg.POST("/recalculate", h.Recalculate)
}

// RegisterCampaignRoutes mounts campaign routes on a separate group.
func (h *Handler) RegisterCampaignRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.CreateCampaign)
}

func (h *Handler) Create(c *gin.Context) {
	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		return
	}

	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.mgmt.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.JSON(c, http.StatusCreated, lead)
}

func (h *Handler) GetByID(c *gin.Context) {
	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.mgmt.GetByID(c.Request.Context(), id, tenantID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, lead)
}

func (h *Handler) RecordActivity(c *gin.Context) {
	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	activity, err := h.mgmt.RecordActivity(c.Request.Context(), id, tenantID, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.JSON(c, http.StatusCreated, activity)
}

// Score runs the scoring pipeline for one lead synchronously and returns
// the fresh score.
func (h *Handler) Score(c *gin.Context) {
	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	score, err := h.scoring.ScoreLead(c.Request.Context(), id, tenantID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, score)
}

// GetScore returns the last persisted score snapshot without rescoring.
func (h *Handler) GetScore(c *gin.Context) {
	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	snapshot, err := h.scoring.GetSnapshot(c.Request.Context(), id, tenantID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.ScoreSnapshotResponse{
		Score:      snapshot.Score,
		LastScored: snapshot.LastScored,
	})
}

// Recalculate kicks off a batch sweep over the tenant's leads. The sweep
// runs asynchronously; the response only acknowledges the request.
func (h *Handler) Recalculate(c *gin.Context) {
	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		return
	}

	var req transport.RecalculateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
	}

	if h.sweeps != nil {
		if err := h.sweeps.EnqueueScoreSweep(c.Request.Context(), tenantID, req.CampaignID); err != nil {
			httpkit.HandleError(c, err)
			return
		}
	} else {
		// No queue configured; run the sweep in-process, detached from the
		// request context.
		go func(tenantID uuid.UUID, campaignID *uuid.UUID) {
			if _, err := h.scoring.RecalculateAll(context.Background(), tenantID, campaignID); err != nil {
				h.log.Error("in-process score sweep failed", "tenantId", tenantID, "error", err)
			}
		}(tenantID, req.CampaignID)
	}

	httpkit.Accepted(c, transport.RecalculateAcceptedResponse{
		Status:     "queued",
		CampaignID: req.CampaignID,
	})
}

func (h *Handler) CreateCampaign(c *gin.Context) {
	tenantID, ok := httpkit.TenantID(c)
	if !ok {
		return
	}

	var req transport.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	campaign, err := h.mgmt.CreateCampaign(c.Request.Context(), tenantID, req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.JSON(c, http.StatusCreated, campaign)
}
