package scoring

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"leadpulse_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// Custom-data keys owned by the scoring engine. They are written back into
// the lead's bag and must not count toward custom-field completeness.
const (
	customDataScoreKey      = "leadScore"
	customDataLastScoredKey = "lastScored"
	customDataSourceKey     = "source"
)

// Fallbacks when a lead has no campaign or no recorded source.
const (
	defaultCampaignType = "standard"
	defaultLeadSource   = "unknown"
)

// ScoringFactors is the normalized per-lead input to the scoring function.
// All counts are non-negative; CustomDataCompleteness is 0-100.
type ScoringFactors struct {
	// Demographic
	HasEmail               bool
	HasPhone               bool
	HasJobTitle            bool
	HasCompany             bool
	CustomDataCompleteness float64

	// Engagement
	EmailOpens     int
	EmailClicks    int
	CallsAnswered  int
	CallsAttempted int

	// Behavioral
	ResponseTimeHours float64
	LastActivityDays  float64
	TotalActivities   int

	// Provenance
	CampaignType string
	LeadSource   string
}

// Extractor derives ScoringFactors from raw lead, activity, and campaign data.
type Extractor struct {
	repo repository.LeadsRepository
	now  func() time.Time
}

// NewExtractor creates a factor extractor backed by the given repository.
func NewExtractor(repo repository.LeadsRepository) *Extractor {
	return &Extractor{repo: repo, now: time.Now}
}

// Extract builds the factors for one lead. It fails only when the lead id
// does not resolve; missing related data degrades to defaults.
func (e *Extractor) Extract(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID) (ScoringFactors, error) {
	lead, err := e.repo.GetLead(ctx, leadID, tenantID)
	if err != nil {
		return ScoringFactors{}, err
	}

	activities, err := e.repo.ListActivities(ctx, leadID, tenantID)
	if err != nil {
		activities = nil
	}

	factors := ScoringFactors{
		HasEmail:    hasValue(lead.Email),
		HasPhone:    hasValue(lead.Phone),
		HasJobTitle: hasValue(lead.JobTitle),
		HasCompany:  hasValue(lead.Company),
	}

	factors.CustomDataCompleteness = customDataCompleteness(lead.CustomData)
	factors.LeadSource = leadSource(lead.CustomData)

	e.extractEngagement(activities, &factors)
	e.extractBehavioral(lead, activities, &factors)

	factors.CampaignType = defaultCampaignType
	if lead.CampaignID != nil {
		// The campaign's name, not its type column, feeds the score; the
		// vocabulary match downstream is case-insensitive.
		if campaign, err := e.repo.GetCampaign(ctx, *lead.CampaignID, tenantID); err == nil && campaign.Name != "" {
			factors.CampaignType = campaign.Name
		}
	}

	return factors, nil
}

func (e *Extractor) extractEngagement(activities []repository.Activity, factors *ScoringFactors) {
	for _, activity := range activities {
		switch activity.Type {
		case repository.ActivityTypeEmail:
			if activity.Metadata.OpenedFlag() {
				factors.EmailOpens++
			}
			if activity.Metadata.ClickedFlag() {
				factors.EmailClicks++
			}
		case repository.ActivityTypeCall:
			factors.CallsAttempted++
			if activity.Metadata.AnsweredFlag() {
				factors.CallsAnswered++
			}
		}
	}
}

func (e *Extractor) extractBehavioral(lead repository.Lead, activities []repository.Activity, factors *ScoringFactors) {
	now := e.now().UTC()
	factors.TotalActivities = len(activities)

	if len(activities) == 0 {
		factors.LastActivityDays = now.Sub(lead.CreatedAt).Hours() / 24
		if factors.LastActivityDays < 0 {
			factors.LastActivityDays = 0
		}
		return
	}

	// Activities arrive newest-first from the repository.
	factors.LastActivityDays = now.Sub(activities[0].OccurredAt).Hours() / 24
	if factors.LastActivityDays < 0 {
		factors.LastActivityDays = 0
	}

	if len(activities) >= 2 {
		totalGapHours := 0.0
		for i := 0; i < len(activities)-1; i++ {
			gap := activities[i].OccurredAt.Sub(activities[i+1].OccurredAt).Hours()
			if gap < 0 {
				gap = -gap
			}
			totalGapHours += gap
		}
		factors.ResponseTimeHours = totalGapHours / float64(len(activities)-1)
	}
}

func hasValue(field *string) bool {
	return field != nil && strings.TrimSpace(*field) != ""
}

// customDataCompleteness is the ratio of filled custom fields to defined
// custom fields, scaled to 0-100. Engine-owned keys are not custom fields.
func customDataCompleteness(customData map[string]json.RawMessage) float64 {
	total := 0
	filled := 0

	for key, value := range customData {
		if key == customDataScoreKey || key == customDataLastScoredKey {
			continue
		}
		total++
		if !isEmptyJSONValue(value) {
			filled++
		}
	}

	if total == 0 {
		return 0
	}
	return float64(filled) / float64(total) * 100
}

func leadSource(customData map[string]json.RawMessage) string {
	raw, ok := customData[customDataSourceKey]
	if !ok {
		return defaultLeadSource
	}

	var source string
	if err := json.Unmarshal(raw, &source); err != nil || strings.TrimSpace(source) == "" {
		return defaultLeadSource
	}
	return source
}

func isEmptyJSONValue(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null" || trimmed == `""`
}
