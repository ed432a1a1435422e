package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"leadpulse_backend/internal/leads/repository"

	"github.com/google/uuid"
)

var testTenantID = uuid.MustParse("6b1f6e58-6f0a-4e5d-9b36-0a8f8f1c9d01")

func fixedNow() time.Time {
	return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
}

func newTestExtractor(repo *fakeRepo) *Extractor {
	extractor := NewExtractor(repo)
	extractor.now = fixedNow
	return extractor
}

func rawJSON(value string) json.RawMessage {
	return json.RawMessage(value)
}

func TestExtractPresenceAndCompleteness(t *testing.T) {
	repo := newFakeRepo()
	leadID := uuid.New()
	repo.addLead(repository.Lead{
		ID:             leadID,
		OrganizationID: testTenantID,
		Email:          strPtr(""),
		Phone:          strPtr("   "),
		JobTitle:       strPtr("VP Engineering"),
		CustomData: map[string]json.RawMessage{
			"budget":     rawJSON(`"50k"`),
			"industry":   rawJSON(`""`),
			"source":     rawJSON(`"referral"`),
			"leadScore":  rawJSON(`{"totalScore":40}`),
			"lastScored": rawJSON(`"2026-08-01T00:00:00Z"`),
		},
		CreatedAt: fixedNow().Add(-48 * time.Hour),
	})

	factors, err := newTestExtractor(repo).Extract(context.Background(), leadID, testTenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if factors.HasEmail {
		t.Fatalf("empty email should not count as present")
	}
	if factors.HasPhone {
		t.Fatalf("whitespace phone should not count as present")
	}
	if !factors.HasJobTitle {
		t.Fatalf("expected job title present")
	}
	if factors.HasCompany {
		t.Fatalf("nil company should not count as present")
	}

	// budget and source are filled, industry is empty; engine-owned keys
	// are excluded from the ratio.
	want := float64(2) / float64(3) * 100
	if math.Abs(factors.CustomDataCompleteness-want) > 0.001 {
		t.Fatalf("expected completeness %.2f, got %.2f", want, factors.CustomDataCompleteness)
	}

	if factors.LeadSource != "referral" {
		t.Fatalf("expected source referral, got %q", factors.LeadSource)
	}
}

func TestExtractCompletenessEmptyBag(t *testing.T) {
	repo := newFakeRepo()
	leadID := uuid.New()
	repo.addLead(repository.Lead{
		ID:             leadID,
		OrganizationID: testTenantID,
		CreatedAt:      fixedNow(),
	})

	factors, err := newTestExtractor(repo).Extract(context.Background(), leadID, testTenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if factors.CustomDataCompleteness != 0 {
		t.Fatalf("expected 0 completeness for empty bag, got %.2f", factors.CustomDataCompleteness)
	}
	if factors.LeadSource != defaultLeadSource {
		t.Fatalf("expected default source, got %q", factors.LeadSource)
	}
}

func TestExtractEngagementCounts(t *testing.T) {
	repo := newFakeRepo()
	leadID := uuid.New()
	repo.addLead(repository.Lead{ID: leadID, OrganizationID: testTenantID, CreatedAt: fixedNow()})
	repo.activities[leadID] = []repository.Activity{
		{Type: repository.ActivityTypeEmail, Metadata: repository.ActivityMetadata{Opened: boolPtr(true), Clicked: boolPtr(true)}, OccurredAt: fixedNow()},
		{Type: repository.ActivityTypeEmail, Metadata: repository.ActivityMetadata{Opened: boolPtr(true)}, OccurredAt: fixedNow()},
		{Type: repository.ActivityTypeCall, Metadata: repository.ActivityMetadata{Answered: boolPtr(true)}, OccurredAt: fixedNow()},
		{Type: repository.ActivityTypeCall, OccurredAt: fixedNow()},
		{Type: repository.ActivityTypeNote, OccurredAt: fixedNow()},
	}

	factors, err := newTestExtractor(repo).Extract(context.Background(), leadID, testTenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if factors.EmailOpens != 2 || factors.EmailClicks != 1 {
		t.Fatalf("expected opens=2 clicks=1, got opens=%d clicks=%d", factors.EmailOpens, factors.EmailClicks)
	}
	if factors.CallsAttempted != 2 || factors.CallsAnswered != 1 {
		t.Fatalf("expected attempted=2 answered=1, got attempted=%d answered=%d", factors.CallsAttempted, factors.CallsAnswered)
	}
	if factors.TotalActivities != 5 {
		t.Fatalf("expected 5 total activities, got %d", factors.TotalActivities)
	}
}

func TestExtractRecencyAndResponseTime(t *testing.T) {
	repo := newFakeRepo()
	leadID := uuid.New()
	repo.addLead(repository.Lead{ID: leadID, OrganizationID: testTenantID, CreatedAt: fixedNow().Add(-240 * time.Hour)})

	// Newest first, matching the repository ordering.
	repo.activities[leadID] = []repository.Activity{
		{Type: repository.ActivityTypeNote, OccurredAt: fixedNow().Add(-48 * time.Hour)},
		{Type: repository.ActivityTypeNote, OccurredAt: fixedNow().Add(-50 * time.Hour)},
		{Type: repository.ActivityTypeNote, OccurredAt: fixedNow().Add(-54 * time.Hour)},
	}

	factors, err := newTestExtractor(repo).Extract(context.Background(), leadID, testTenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(factors.LastActivityDays-2) > 0.001 {
		t.Fatalf("expected 2 days since last activity, got %.2f", factors.LastActivityDays)
	}
	// Gaps of 2h and 4h average to 3h.
	if math.Abs(factors.ResponseTimeHours-3) > 0.001 {
		t.Fatalf("expected 3h mean response time, got %.2f", factors.ResponseTimeHours)
	}
}

func TestExtractNoActivitiesFallsBackToCreatedAt(t *testing.T) {
	repo := newFakeRepo()
	leadID := uuid.New()
	repo.addLead(repository.Lead{ID: leadID, OrganizationID: testTenantID, CreatedAt: fixedNow().Add(-72 * time.Hour)})

	factors, err := newTestExtractor(repo).Extract(context.Background(), leadID, testTenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(factors.LastActivityDays-3) > 0.001 {
		t.Fatalf("expected 3 days from creation, got %.2f", factors.LastActivityDays)
	}
	if factors.ResponseTimeHours != 0 {
		t.Fatalf("expected no response-time signal, got %.2f", factors.ResponseTimeHours)
	}
	if factors.TotalActivities != 0 {
		t.Fatalf("expected 0 activities, got %d", factors.TotalActivities)
	}
}

func TestExtractCampaignType(t *testing.T) {
	repo := newFakeRepo()
	leadID := uuid.New()
	campaignID := uuid.New()
	repo.campaigns[campaignID] = repository.Campaign{
		ID:             campaignID,
		OrganizationID: testTenantID,
		Name:           "Enterprise",
		Type:           "enterprise",
	}
	repo.addLead(repository.Lead{ID: leadID, OrganizationID: testTenantID, CampaignID: &campaignID, CreatedAt: fixedNow()})

	factors, err := newTestExtractor(repo).Extract(context.Background(), leadID, testTenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The campaign's name is the matching key; scoreCampaign lowercases it.
	if factors.CampaignType != "Enterprise" {
		t.Fatalf("expected campaign name, got %q", factors.CampaignType)
	}
}

func TestExtractMissingCampaignDefaults(t *testing.T) {
	repo := newFakeRepo()
	leadID := uuid.New()
	danglingID := uuid.New()
	repo.addLead(repository.Lead{ID: leadID, OrganizationID: testTenantID, CampaignID: &danglingID, CreatedAt: fixedNow()})

	factors, err := newTestExtractor(repo).Extract(context.Background(), leadID, testTenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if factors.CampaignType != defaultCampaignType {
		t.Fatalf("expected default campaign type, got %q", factors.CampaignType)
	}
}

func TestExtractLeadNotFound(t *testing.T) {
	repo := newFakeRepo()

	_, err := newTestExtractor(repo).Extract(context.Background(), uuid.New(), testTenantID)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExtractActivitiesErrorDegrades(t *testing.T) {
	repo := newFakeRepo()
	leadID := uuid.New()
	repo.addLead(repository.Lead{ID: leadID, OrganizationID: testTenantID, CreatedAt: fixedNow()})
	repo.listActivitiesErr = errors.New("timeline unavailable")

	factors, err := newTestExtractor(repo).Extract(context.Background(), leadID, testTenantID)
	if err != nil {
		t.Fatalf("activity errors must not fail extraction: %v", err)
	}

	if factors.TotalActivities != 0 || factors.EmailOpens != 0 {
		t.Fatalf("expected empty engagement on activity failure, got %+v", factors)
	}
}

func TestExtractTenantIsolation(t *testing.T) {
	repo := newFakeRepo()
	leadID := uuid.New()
	repo.addLead(repository.Lead{ID: leadID, OrganizationID: uuid.New(), CreatedAt: fixedNow()})

	_, err := newTestExtractor(repo).Extract(context.Background(), leadID, testTenantID)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign tenant, got %v", err)
	}
}
