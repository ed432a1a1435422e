// Package management handles lead intake and activity recording.
// This is a vertically sliced feature package; scoring lives in the
// sibling scoring package.
package management

import (
	"context"
	"errors"

	"leadpulse_backend/internal/events"
	"leadpulse_backend/internal/leads/repository"
	"leadpulse_backend/internal/leads/transport"
	"leadpulse_backend/platform/apperr"
	"leadpulse_backend/platform/phone"

	"github.com/google/uuid"
)

// Repository defines the data access interface needed by the management
// service. Consumer-driven, only what management needs.
type Repository interface {
	GetLead(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (repository.Lead, error)
	GetCampaign(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (repository.Campaign, error)
	CreateLead(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error)
	CreateActivity(ctx context.Context, params repository.CreateActivityParams) (repository.Activity, error)
	CreateCampaign(ctx context.Context, tenantID uuid.UUID, name, campaignType string) (repository.Campaign, error)
	LeadExists(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID) (bool, error)
}

// Service handles lead management operations.
type Service struct {
	repo Repository
	bus  events.Bus
}

// New creates a new lead management service.
func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Create creates a new lead for the tenant.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	if req.CampaignID != nil {
		if _, err := s.repo.GetCampaign(ctx, *req.CampaignID, tenantID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return transport.LeadResponse{}, apperr.Validation("campaign not found")
			}
			return transport.LeadResponse{}, err
		}
	}

	params := repository.CreateLeadParams{
		OrganizationID: tenantID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		CampaignID:     req.CampaignID,
		CustomData:     req.CustomData,
	}

	if req.Email != "" {
		params.Email = &req.Email
	}
	if req.Phone != "" {
		normalized := phone.NormalizeE164(req.Phone)
		params.Phone = &normalized
	}
	if req.JobTitle != "" {
		params.JobTitle = &req.JobTitle
	}
	if req.Company != "" {
		params.Company = &req.Company
	}

	lead, err := s.repo.CreateLead(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadCreated{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			TenantID:  lead.OrganizationID,
		})
	}

	return ToLeadResponse(lead), nil
}

// GetByID retrieves a lead scoped to the tenant.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetLead(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	return ToLeadResponse(lead), nil
}

// RecordActivity appends an interaction to a lead's timeline.
func (s *Service) RecordActivity(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID, req transport.RecordActivityRequest) (transport.ActivityResponse, error) {
	exists, err := s.repo.LeadExists(ctx, leadID, tenantID)
	if err != nil {
		return transport.ActivityResponse{}, err
	}
	if !exists {
		return transport.ActivityResponse{}, apperr.NotFound("lead not found")
	}

	params := repository.CreateActivityParams{
		OrganizationID: tenantID,
		LeadID:         leadID,
		Type:           req.Type,
		Metadata: repository.ActivityMetadata{
			Opened:   req.Opened,
			Clicked:  req.Clicked,
			Answered: req.Answered,
		},
	}
	if req.OccurredAt != nil {
		params.OccurredAt = *req.OccurredAt
	}

	activity, err := s.repo.CreateActivity(ctx, params)
	if err != nil {
		return transport.ActivityResponse{}, err
	}

	return ToActivityResponse(activity), nil
}

// CreateCampaign creates a new acquisition campaign for the tenant.
func (s *Service) CreateCampaign(ctx context.Context, tenantID uuid.UUID, req transport.CreateCampaignRequest) (transport.CampaignResponse, error) {
	campaign, err := s.repo.CreateCampaign(ctx, tenantID, req.Name, req.Type)
	if err != nil {
		return transport.CampaignResponse{}, err
	}

	return ToCampaignResponse(campaign), nil
}
