package management

import (
	"leadpulse_backend/internal/leads/repository"
	"leadpulse_backend/internal/leads/transport"
)

// ToLeadResponse maps a repository lead to its transport shape.
func ToLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:         lead.ID,
		FirstName:  lead.FirstName,
		LastName:   lead.LastName,
		Email:      lead.Email,
		Phone:      lead.Phone,
		JobTitle:   lead.JobTitle,
		Company:    lead.Company,
		CampaignID: lead.CampaignID,
		CustomData: lead.CustomData,
		CreatedAt:  lead.CreatedAt,
		UpdatedAt:  lead.UpdatedAt,
	}
}

// ToActivityResponse maps a repository activity to its transport shape.
func ToActivityResponse(activity repository.Activity) transport.ActivityResponse {
	return transport.ActivityResponse{
		ID:         activity.ID,
		LeadID:     activity.LeadID,
		Type:       activity.Type,
		Opened:     activity.Metadata.Opened,
		Clicked:    activity.Metadata.Clicked,
		Answered:   activity.Metadata.Answered,
		OccurredAt: activity.OccurredAt,
		CreatedAt:  activity.CreatedAt,
	}
}

// ToCampaignResponse maps a repository campaign to its transport shape.
func ToCampaignResponse(campaign repository.Campaign) transport.CampaignResponse {
	return transport.CampaignResponse{
		ID:        campaign.ID,
		Name:      campaign.Name,
		Type:      campaign.Type,
		CreatedAt: campaign.CreatedAt,
	}
}
