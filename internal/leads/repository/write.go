package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CreateLeadParams carries the fields for inserting a new lead.
type CreateLeadParams struct {
	OrganizationID uuid.UUID
	FirstName      string
	LastName       string
	Email          *string
	Phone          *string
	JobTitle       *string
	Company        *string
	CampaignID     *uuid.UUID
	CustomData     map[string]interface{}
}

// CreateActivityParams carries the fields for recording a lead activity.
type CreateActivityParams struct {
	OrganizationID uuid.UUID
	LeadID         uuid.UUID
	Type           string
	Metadata       ActivityMetadata
	OccurredAt     time.Time
}

// CreateLead inserts a new lead and returns the stored record.
func (r *Repository) CreateLead(ctx context.Context, params CreateLeadParams) (Lead, error) {
	customData := []byte("{}")
	if len(params.CustomData) > 0 {
		data, err := json.Marshal(params.CustomData)
		if err != nil {
			return Lead{}, err
		}
		customData = data
	}

	var lead Lead
	var storedCustomData []byte

	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (organization_id, first_name, last_name, email, phone, job_title, company, campaign_id, custom_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, organization_id, first_name, last_name, email, phone, job_title, company,
		          campaign_id, custom_data, created_at, updated_at
	`, params.OrganizationID, params.FirstName, params.LastName,
		params.Email, params.Phone, params.JobTitle, params.Company,
		params.CampaignID, customData,
	).Scan(
		&lead.ID, &lead.OrganizationID, &lead.FirstName, &lead.LastName,
		&lead.Email, &lead.Phone, &lead.JobTitle, &lead.Company,
		&lead.CampaignID, &storedCustomData, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	if len(storedCustomData) > 0 {
		_ = json.Unmarshal(storedCustomData, &lead.CustomData)
	}

	return lead, nil
}

// CreateActivity records an interaction on a lead's timeline.
func (r *Repository) CreateActivity(ctx context.Context, params CreateActivityParams) (Activity, error) {
	metadata, err := json.Marshal(params.Metadata)
	if err != nil {
		return Activity{}, err
	}

	occurredAt := params.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	var activity Activity
	var storedMetadata []byte

	err = r.pool.QueryRow(ctx, `
		INSERT INTO activities (organization_id, lead_id, type, metadata, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, organization_id, lead_id, type, metadata, occurred_at, created_at
	`, params.OrganizationID, params.LeadID, params.Type, metadata, occurredAt,
	).Scan(
		&activity.ID, &activity.OrganizationID, &activity.LeadID,
		&activity.Type, &storedMetadata, &activity.OccurredAt, &activity.CreatedAt,
	)
	if err != nil {
		return Activity{}, err
	}

	if len(storedMetadata) > 0 {
		_ = json.Unmarshal(storedMetadata, &activity.Metadata)
	}

	return activity, nil
}

// CreateCampaign inserts a new acquisition campaign.
func (r *Repository) CreateCampaign(ctx context.Context, tenantID uuid.UUID, name, campaignType string) (Campaign, error) {
	var campaign Campaign

	err := r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (organization_id, name, type)
		VALUES ($1, $2, $3)
		RETURNING id, organization_id, name, type, created_at
	`, tenantID, name, campaignType).Scan(
		&campaign.ID, &campaign.OrganizationID, &campaign.Name, &campaign.Type, &campaign.CreatedAt,
	)
	if err != nil {
		return Campaign{}, err
	}

	return campaign, nil
}

// LeadExists reports whether a lead belongs to the tenant.
func (r *Repository) LeadExists(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM leads WHERE id = $1 AND organization_id = $2)
	`, leadID, tenantID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
