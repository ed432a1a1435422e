package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Activity type tags as stored in the activities table.
const (
	ActivityTypeCall         = "CALL"
	ActivityTypeEmail        = "EMAIL"
	ActivityTypeNote         = "NOTE"
	ActivityTypeStatusChange = "STATUS_CHANGE"
)

// Lead is a sales prospect record. CustomData is the free-form key/value bag;
// the score snapshot is merged into it under the "leadScore" key.
type Lead struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	FirstName      string
	LastName       string
	Email          *string
	Phone          *string
	JobTitle       *string
	Company        *string
	CampaignID     *uuid.UUID
	CustomData     map[string]json.RawMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Campaign is the acquisition campaign a lead came in through.
type Campaign struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Type           string
	CreatedAt      time.Time
}

// Activity is a timestamped interaction record attached to a lead.
type Activity struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	LeadID         uuid.UUID
	Type           string
	Metadata       ActivityMetadata
	OccurredAt     time.Time
	CreatedAt      time.Time
}

// ActivityMetadata models the activity metadata bag with typed optional
// fields instead of a raw map, so absent flags degrade to false explicitly.
type ActivityMetadata struct {
	Opened   *bool `json:"opened,omitempty"`
	Clicked  *bool `json:"clicked,omitempty"`
	Answered *bool `json:"answered,omitempty"`
}

// OpenedFlag reports whether an email activity was marked opened.
func (m ActivityMetadata) OpenedFlag() bool {
	return m.Opened != nil && *m.Opened
}

// ClickedFlag reports whether an email activity was marked clicked.
func (m ActivityMetadata) ClickedFlag() bool {
	return m.Clicked != nil && *m.Clicked
}

// AnsweredFlag reports whether a call activity was marked answered.
func (m ActivityMetadata) AnsweredFlag() bool {
	return m.Answered != nil && *m.Answered
}

// LeadRef is a lightweight lead reference used by batch sweeps and backfills.
type LeadRef struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	CreatedAt      time.Time
}
