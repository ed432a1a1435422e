package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LeadsRepository defines the persistence operations the leads module needs.
// The scoring engine depends on this interface so tests can substitute fakes.
type LeadsRepository interface {
	GetLead(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (Lead, error)
	GetCampaign(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (Campaign, error)
	ListActivities(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID) ([]Activity, error)
	ListLeadIDs(ctx context.Context, tenantID uuid.UUID, campaignID *uuid.UUID) ([]uuid.UUID, error)
	ListLeadRefsPage(ctx context.Context, limit int, cursorTime time.Time, cursorID uuid.UUID) ([]LeadRef, error)
	MergeCustomData(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID, patch map[string]interface{}) error
}

// Compile-time check that Repository implements LeadsRepository
var _ LeadsRepository = (*Repository)(nil)
