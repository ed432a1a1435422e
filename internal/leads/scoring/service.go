package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"leadpulse_backend/internal/events"
	"leadpulse_backend/internal/leads/repository"
	"leadpulse_backend/platform/apperr"
	"leadpulse_backend/platform/config"
	"leadpulse_backend/platform/logger"

	"github.com/google/uuid"
)

// LeadScore is the full scoring outcome for one lead. It is ephemeral:
// each run overwrites the previous snapshot on the lead record.
type LeadScore struct {
	TotalScore      int       `json:"totalScore"`
	Grade           Grade     `json:"grade"`
	Priority        Priority  `json:"priority"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	SubScores       SubScores `json:"subScores"`
	Recommendations []string  `json:"recommendations"`
	NextBestAction  string    `json:"nextBestAction"`
	Version         string    `json:"version"`
	ScoredAt        time.Time `json:"scoredAt"`
}

// Snapshot is the persisted score state read back from a lead record.
type Snapshot struct {
	Score      json.RawMessage `json:"score"`
	LastScored string          `json:"lastScored"`
}

// Service runs the scoring pipeline: extract, score, classify, recommend,
// persist.
type Service struct {
	repo             repository.LeadsRepository
	extractor        *Extractor
	bus              events.Bus
	log              *logger.Logger
	weights          Weights
	batchConcurrency int
	leadTimeout      time.Duration
	persistRetries   int
	now              func() time.Time
}

// New creates a scoring service with the fixed default weights.
func New(repo repository.LeadsRepository, bus events.Bus, cfg config.ScoringConfig, log *logger.Logger) *Service {
	return &Service{
		repo:             repo,
		extractor:        NewExtractor(repo),
		bus:              bus,
		log:              log,
		weights:          DefaultWeights,
		batchConcurrency: cfg.GetScoringBatchConcurrency(),
		leadTimeout:      cfg.GetScoringLeadTimeout(),
		persistRetries:   cfg.GetScoringPersistRetries(),
		now:              time.Now,
	}
}

// Compute runs the pure half of the pipeline over already-extracted factors.
func (s *Service) Compute(factors ScoringFactors) *LeadScore {
	subScores, totalScore := ComputeScore(factors, s.weights)
	classification := Classify(totalScore, factors.LastActivityDays)

	return &LeadScore{
		TotalScore:      totalScore,
		Grade:           classification.Grade,
		Priority:        classification.Priority,
		RiskLevel:       classification.RiskLevel,
		SubScores:       subScores,
		Recommendations: Recommend(factors, subScores, totalScore),
		NextBestAction:  NextBestAction(factors),
		Version:         scoreVersion,
		ScoredAt:        s.now().UTC(),
	}
}

// ScoreLead scores a single lead and persists the snapshot onto its record.
// Any failure is surfaced to the caller.
func (s *Service) ScoreLead(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID) (*LeadScore, error) {
	factors, err := s.extractor.Extract(ctx, leadID, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("lead not found").WithOp("scoring.ScoreLead")
		}
		return nil, err
	}

	score := s.Compute(factors)

	if err := s.persistSnapshot(ctx, leadID, tenantID, score); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to persist lead score", err).WithOp("scoring.ScoreLead")
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.LeadScored{
			BaseEvent:  events.NewBaseEvent(),
			LeadID:     leadID,
			TenantID:   tenantID,
			TotalScore: score.TotalScore,
			Grade:      string(score.Grade),
			Priority:   string(score.Priority),
			RiskLevel:  string(score.RiskLevel),
		})
	}

	return score, nil
}

// GetSnapshot returns the last persisted score snapshot for a lead.
func (s *Service) GetSnapshot(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID) (Snapshot, error) {
	lead, err := s.repo.GetLead(ctx, leadID, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Snapshot{}, apperr.NotFound("lead not found").WithOp("scoring.GetSnapshot")
		}
		return Snapshot{}, err
	}

	raw, ok := lead.CustomData[customDataScoreKey]
	if !ok {
		return Snapshot{}, apperr.NotFound("lead has not been scored yet").WithOp("scoring.GetSnapshot")
	}

	snapshot := Snapshot{Score: raw}
	if lastScored, ok := lead.CustomData[customDataLastScoredKey]; ok {
		_ = json.Unmarshal(lastScored, &snapshot.LastScored)
	}

	return snapshot, nil
}

// persistSnapshot merges the score into the lead's custom-data bag. The
// write is retried a small bounded number of times; reads are not.
func (s *Service) persistSnapshot(ctx context.Context, leadID uuid.UUID, tenantID uuid.UUID, score *LeadScore) error {
	patch := map[string]interface{}{
		customDataScoreKey:      score,
		customDataLastScoredKey: score.ScoredAt.Format(time.RFC3339),
	}

	var err error
	for attempt := 0; attempt <= s.persistRetries; attempt++ {
		err = s.repo.MergeCustomData(ctx, leadID, tenantID, patch)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}
