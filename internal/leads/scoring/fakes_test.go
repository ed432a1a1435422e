package scoring

import (
	"context"
	"errors"
	"sync"
	"time"

	"leadpulse_backend/internal/events"
	"leadpulse_backend/internal/leads/repository"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu         sync.Mutex
	leads      map[uuid.UUID]repository.Lead
	campaigns  map[uuid.UUID]repository.Campaign
	activities map[uuid.UUID][]repository.Activity
	leadOrder  []uuid.UUID

	merged     map[uuid.UUID]map[string]interface{}
	mergeFails map[uuid.UUID]int
	mergeCalls map[uuid.UUID]int

	listActivitiesErr error
}

var errWriteFailed = errors.New("write failed")

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		leads:      make(map[uuid.UUID]repository.Lead),
		campaigns:  make(map[uuid.UUID]repository.Campaign),
		activities: make(map[uuid.UUID][]repository.Activity),
		merged:     make(map[uuid.UUID]map[string]interface{}),
		mergeFails: make(map[uuid.UUID]int),
		mergeCalls: make(map[uuid.UUID]int),
	}
}

func (f *fakeRepo) addLead(lead repository.Lead) {
	f.leads[lead.ID] = lead
	f.leadOrder = append(f.leadOrder, lead.ID)
}

func (f *fakeRepo) GetLead(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (repository.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok || lead.OrganizationID != tenantID {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (f *fakeRepo) GetCampaign(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (repository.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	campaign, ok := f.campaigns[id]
	if !ok || campaign.OrganizationID != tenantID {
		return repository.Campaign{}, repository.ErrNotFound
	}
	return campaign, nil
}

func (f *fakeRepo) ListActivities(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID) ([]repository.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listActivitiesErr != nil {
		return nil, f.listActivitiesErr
	}
	return f.activities[leadID], nil
}

func (f *fakeRepo) ListLeadIDs(ctx context.Context, tenantID uuid.UUID, campaignID *uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uuid.UUID, 0)
	for _, id := range f.leadOrder {
		lead := f.leads[id]
		if lead.OrganizationID != tenantID {
			continue
		}
		if campaignID != nil {
			if lead.CampaignID == nil || *lead.CampaignID != *campaignID {
				continue
			}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeRepo) ListLeadRefsPage(ctx context.Context, limit int, cursorTime time.Time, cursorID uuid.UUID) ([]repository.LeadRef, error) {
	return nil, nil
}

func (f *fakeRepo) MergeCustomData(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mergeCalls[leadID]++
	if f.mergeFails[leadID] > 0 {
		f.mergeFails[leadID]--
		return errWriteFailed
	}
	lead, ok := f.leads[leadID]
	if !ok || lead.OrganizationID != tenantID {
		return repository.ErrNotFound
	}
	f.merged[leadID] = patch
	return nil
}

type fakeBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (f *fakeBus) Publish(ctx context.Context, event events.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event)
}

func (f *fakeBus) PublishSync(ctx context.Context, event events.Event) error {
	f.Publish(ctx, event)
	return nil
}

func (f *fakeBus) Subscribe(eventName string, handler events.Handler) {}

func (f *fakeBus) events() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event(nil), f.published...)
}

type testScoringConfig struct {
	retries int
}

func (c testScoringConfig) GetScoringBatchConcurrency() int      { return 4 }
func (c testScoringConfig) GetScoringLeadTimeout() time.Duration { return 2 * time.Second }
func (c testScoringConfig) GetScoringPersistRetries() int        { return c.retries }

func newTestService(repo *fakeRepo, bus *fakeBus, retries int) *Service {
	var eventBus events.Bus
	if bus != nil {
		eventBus = bus
	}
	return New(repo, eventBus, testScoringConfig{retries: retries}, nil)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
