// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadpulse_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published after a new lead record has been stored.
type LeadCreated struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	TenantID uuid.UUID `json:"tenantId"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadScored is published after a lead's score snapshot has been persisted.
type LeadScored struct {
	BaseEvent
	LeadID     uuid.UUID `json:"leadId"`
	TenantID   uuid.UUID `json:"tenantId"`
	TotalScore int       `json:"totalScore"`
	Grade      string    `json:"grade"`
	Priority   string    `json:"priority"`
	RiskLevel  string    `json:"riskLevel"`
}

func (e LeadScored) EventName() string { return "leads.lead.scored" }

// ScoreSweepCompleted is published when a batch recalculation sweep finishes.
type ScoreSweepCompleted struct {
	BaseEvent
	TenantID   uuid.UUID  `json:"tenantId"`
	CampaignID *uuid.UUID `json:"campaignId,omitempty"`
	Attempted  int        `json:"attempted"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
}

func (e ScoreSweepCompleted) EventName() string { return "leads.score.sweep_completed" }
