package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetLead fetches a single lead scoped to the tenant.
func (r *Repository) GetLead(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (Lead, error) {
	var lead Lead
	var customData []byte

	err := r.pool.QueryRow(ctx, `
		SELECT id, organization_id, first_name, last_name, email, phone, job_title, company,
		       campaign_id, custom_data, created_at, updated_at
		FROM leads
		WHERE id = $1 AND organization_id = $2
	`, id, tenantID).Scan(
		&lead.ID, &lead.OrganizationID, &lead.FirstName, &lead.LastName,
		&lead.Email, &lead.Phone, &lead.JobTitle, &lead.Company,
		&lead.CampaignID, &customData, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}

	if len(customData) > 0 {
		if err := json.Unmarshal(customData, &lead.CustomData); err != nil {
			// A corrupt bag degrades to empty, it never fails the fetch.
			lead.CustomData = nil
		}
	}

	return lead, nil
}

// GetCampaign fetches a campaign scoped to the tenant.
func (r *Repository) GetCampaign(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (Campaign, error) {
	var campaign Campaign

	err := r.pool.QueryRow(ctx, `
		SELECT id, organization_id, name, type, created_at
		FROM campaigns
		WHERE id = $1 AND organization_id = $2
	`, id, tenantID).Scan(
		&campaign.ID, &campaign.OrganizationID, &campaign.Name, &campaign.Type, &campaign.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		return Campaign{}, err
	}

	return campaign, nil
}

// ListActivities returns a lead's full activity history, newest first.
func (r *Repository) ListActivities(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, lead_id, type, metadata, occurred_at, created_at
		FROM activities
		WHERE lead_id = $1 AND organization_id = $2
		ORDER BY occurred_at DESC, id DESC
	`, leadID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		var activity Activity
		var metadata []byte
		if err := rows.Scan(
			&activity.ID, &activity.OrganizationID, &activity.LeadID,
			&activity.Type, &metadata, &activity.OccurredAt, &activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			// Unknown keys are dropped; absent flags stay nil.
			_ = json.Unmarshal(metadata, &activity.Metadata)
		}
		activities = append(activities, activity)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return activities, nil
}

// ListLeadIDs returns all lead ids for the tenant, optionally scoped to one campaign.
func (r *Repository) ListLeadIDs(ctx context.Context, tenantID uuid.UUID, campaignID *uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT id FROM leads
		WHERE organization_id = $1
		ORDER BY created_at ASC, id ASC
	`
	args := []interface{}{tenantID}

	if campaignID != nil {
		query = `
			SELECT id FROM leads
			WHERE organization_id = $1 AND campaign_id = $2
			ORDER BY created_at ASC, id ASC
		`
		args = append(args, *campaignID)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return ids, nil
}

// ListLeadRefsPage returns a keyset-paginated page of lead references across
// all tenants, ordered by (created_at, id). Used by the backfill sweep.
func (r *Repository) ListLeadRefsPage(ctx context.Context, limit int, cursorTime time.Time, cursorID uuid.UUID) ([]LeadRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, organization_id, created_at
		FROM leads
		WHERE created_at > $1 OR (created_at = $1 AND id > $2)
		ORDER BY created_at ASC, id ASC
		LIMIT $3
	`, cursorTime, cursorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make([]LeadRef, 0)
	for rows.Next() {
		var ref LeadRef
		if err := rows.Scan(&ref.ID, &ref.OrganizationID, &ref.CreatedAt); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return refs, nil
}

// MergeCustomData merges the given keys into the lead's custom_data bag.
// The jsonb concatenation leaves unrelated keys untouched; the whole write
// is a single statement, so concurrent scorers are last-write-wins.
func (r *Repository) MergeCustomData(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID, patch map[string]interface{}) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE leads
		SET custom_data = COALESCE(custom_data, '{}'::jsonb) || $3::jsonb,
		    updated_at = now()
		WHERE id = $1 AND organization_id = $2
	`, leadID, tenantID, data)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
