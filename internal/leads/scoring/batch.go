package scoring

import (
	"context"
	"sync"
	"time"

	"leadpulse_backend/internal/events"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BatchFailure records one lead that could not be scored during a sweep.
type BatchFailure struct {
	LeadID uuid.UUID
	Err    error
}

// BatchResult summarizes a recalculation sweep. Failures are isolated per
// lead; the sweep itself only fails when the lead population cannot be
// enumerated.
type BatchResult struct {
	Attempted int
	Succeeded int
	Failed    []BatchFailure
}

// RecalculateAll rescores every lead for the tenant, optionally scoped to a
// single campaign. Leads are processed on a bounded worker pool; a failure
// on one lead never aborts the others. Each lead gets its own timeout so a
// slow read cannot stall the sweep.
func (s *Service) RecalculateAll(ctx context.Context, tenantID uuid.UUID, campaignID *uuid.UUID) (BatchResult, error) {
	started := s.now()

	ids, err := s.repo.ListLeadIDs(ctx, tenantID, campaignID)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Attempted: len(ids)}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.batchConcurrency)

	for _, id := range ids {
		leadID := id
		g.Go(func() error {
			leadCtx, cancel := context.WithTimeout(ctx, s.leadTimeout)
			defer cancel()

			_, err := s.ScoreLead(leadCtx, leadID, tenantID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BatchFailure{LeadID: leadID, Err: err})
				if s.log != nil {
					s.log.Error("lead scoring failed during sweep",
						"leadId", leadID, "tenantId", tenantID, "error", err)
				}
				return nil
			}
			result.Succeeded++
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	if s.log != nil {
		scope := "all"
		if campaignID != nil {
			scope = campaignID.String()
		}
		s.log.ScoreSweep(scope, result.Attempted, result.Succeeded, len(result.Failed),
			float64(time.Since(started).Milliseconds()))
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.ScoreSweepCompleted{
			BaseEvent:  events.NewBaseEvent(),
			TenantID:   tenantID,
			CampaignID: campaignID,
			Attempted:  result.Attempted,
			Succeeded:  result.Succeeded,
			Failed:     len(result.Failed),
		})
	}

	return result, nil
}
