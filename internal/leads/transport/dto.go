package transport

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateLeadRequest struct {
	FirstName  string                 `json:"firstName" validate:"required,min=1,max=100"`
	LastName   string                 `json:"lastName" validate:"required,min=1,max=100"`
	Email      string                 `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string                 `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	JobTitle   string                 `json:"jobTitle,omitempty" validate:"omitempty,max=150"`
	Company    string                 `json:"company,omitempty" validate:"omitempty,max=200"`
	CampaignID *uuid.UUID             `json:"campaignId,omitempty"`
	CustomData map[string]interface{} `json:"customData,omitempty"`
}

type RecordActivityRequest struct {
	Type       string     `json:"type" validate:"required,oneof=CALL EMAIL NOTE STATUS_CHANGE"`
	Opened     *bool      `json:"opened,omitempty"`
	Clicked    *bool      `json:"clicked,omitempty"`
	Answered   *bool      `json:"answered,omitempty"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`
}

type CreateCampaignRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Type string `json:"type" validate:"required,oneof=premium enterprise standard basic"`
}

type RecalculateRequest struct {
	CampaignID *uuid.UUID `json:"campaignId,omitempty"`
}

// Response DTOs

type LeadResponse struct {
	ID         uuid.UUID                  `json:"id"`
	FirstName  string                     `json:"firstName"`
	LastName   string                     `json:"lastName"`
	Email      *string                    `json:"email,omitempty"`
	Phone      *string                    `json:"phone,omitempty"`
	JobTitle   *string                    `json:"jobTitle,omitempty"`
	Company    *string                    `json:"company,omitempty"`
	CampaignID *uuid.UUID                 `json:"campaignId,omitempty"`
	CustomData map[string]json.RawMessage `json:"customData,omitempty"`
	CreatedAt  time.Time                  `json:"createdAt"`
	UpdatedAt  time.Time                  `json:"updatedAt"`
}

type ActivityResponse struct {
	ID         uuid.UUID `json:"id"`
	LeadID     uuid.UUID `json:"leadId"`
	Type       string    `json:"type"`
	Opened     *bool     `json:"opened,omitempty"`
	Clicked    *bool     `json:"clicked,omitempty"`
	Answered   *bool     `json:"answered,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CampaignResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

type ScoreSnapshotResponse struct {
	Score      json.RawMessage `json:"score"`
	LastScored string          `json:"lastScored,omitempty"`
}

type RecalculateAcceptedResponse struct {
	Status     string     `json:"status"`
	CampaignID *uuid.UUID `json:"campaignId,omitempty"`
}
