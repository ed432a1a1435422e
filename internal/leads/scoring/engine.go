package scoring

import (
	"math"
	"strings"
)

const (
	// scoreVersion tracks the scoring model for debugging and analysis.
	// Bump this when changing scoring logic significantly.
	scoreVersion = "2026-v1"
)

// Weights defines how the four factor categories combine into the composite
// score. The defaults are fixed in this version; they sum to 1.0.
type Weights struct {
	Demographic float64
	Engagement  float64
	Behavioral  float64
	Campaign    float64
}

// DefaultWeights is the fixed weighting profile for the current model.
var DefaultWeights = Weights{
	Demographic: 0.20,
	Engagement:  0.35,
	Behavioral:  0.30,
	Campaign:    0.15,
}

// Demographic contributions.
const (
	pointsHasEmail     = 15.0
	pointsHasPhone     = 20.0
	pointsHasJobTitle  = 10.0
	pointsHasCompany   = 15.0
	pointsCompleteness = 40.0 // scaled by completeness ratio
)

// Engagement rate multipliers and caps.
const (
	openRateMultiplier    = 2.0
	clickRateMultiplier   = 3.0
	answerRateMultiplier  = 4.0
	rateScale             = 20.0
	openContributionCap   = 30.0
	clickContributionCap  = 35.0
	answerContributionCap = 35.0
)

// Campaign sub-score base and bonuses.
const (
	campaignBaseScore = 50.0

	campaignPremiumBonus  = 30.0 // premium, enterprise
	campaignStandardBonus = 20.0
	campaignBasicBonus    = 10.0

	sourceReferralBonus  = 20.0 // referral, inbound
	sourceSocialBonus    = 15.0 // linkedin, social
	sourceColdEmailBonus = 10.0
	sourceColdCallBonus  = 5.0
)

// SubScores holds the four per-category scores, each 0-100.
type SubScores struct {
	Demographic int `json:"demographic"`
	Engagement  int `json:"engagement"`
	Behavioral  int `json:"behavioral"`
	Campaign    int `json:"campaign"`
}

// ComputeScore is the pure scoring function: factors in, sub-scores and
// weighted composite out. No I/O, no side effects.
func ComputeScore(factors ScoringFactors, weights Weights) (SubScores, int) {
	subScores := SubScores{
		Demographic: scoreDemographic(factors),
		Engagement:  scoreEngagement(factors),
		Behavioral:  scoreBehavioral(factors),
		Campaign:    scoreCampaign(factors),
	}

	composite := float64(subScores.Demographic)*weights.Demographic +
		float64(subScores.Engagement)*weights.Engagement +
		float64(subScores.Behavioral)*weights.Behavioral +
		float64(subScores.Campaign)*weights.Campaign

	return subScores, clampScore(composite)
}

func scoreDemographic(factors ScoringFactors) int {
	score := 0.0

	if factors.HasEmail {
		score += pointsHasEmail
	}
	if factors.HasPhone {
		score += pointsHasPhone
	}
	if factors.HasJobTitle {
		score += pointsHasJobTitle
	}
	if factors.HasCompany {
		score += pointsHasCompany
	}

	score += factors.CustomDataCompleteness / 100 * pointsCompleteness

	return clampScore(score)
}

// scoreEngagement reproduces the source model's arithmetic exactly. The
// open and click rates are computed from each other's denominators; see
// the design notes before changing either formula.
func scoreEngagement(factors ScoringFactors) int {
	openRate := 0.0
	if factors.EmailClicks > 0 {
		openRate = float64(factors.EmailOpens) / float64(factors.EmailClicks)
	}

	clickRate := 0.0
	if factors.EmailOpens > 0 {
		clickRate = float64(factors.EmailClicks) / float64(factors.EmailOpens)
	}

	answerRate := 0.0
	if factors.CallsAttempted > 0 {
		answerRate = float64(factors.CallsAnswered) / float64(factors.CallsAttempted)
	}

	score := math.Min(openRate*openRateMultiplier*rateScale, openContributionCap) +
		math.Min(clickRate*clickRateMultiplier*rateScale, clickContributionCap) +
		math.Min(answerRate*answerRateMultiplier*rateScale, answerContributionCap)

	return clampScore(score)
}

func scoreBehavioral(factors ScoringFactors) int {
	score := 0.0

	// Response-time bucket. Zero means fewer than two activities, which
	// contributes nothing rather than counting as instant response.
	rt := factors.ResponseTimeHours
	switch {
	case rt <= 0:
		// no signal
	case rt <= 1:
		score += 30
	case rt <= 4:
		score += 25
	case rt <= 24:
		score += 15
	case rt <= 72:
		score += 10
	default:
		score += 5
	}

	// Recency bucket.
	days := factors.LastActivityDays
	switch {
	case days <= 1:
		score += 25
	case days <= 3:
		score += 20
	case days <= 7:
		score += 15
	case days <= 14:
		score += 10
	case days <= 30:
		score += 5
	}

	// Volume bucket.
	switch {
	case factors.TotalActivities >= 10:
		score += 25
	case factors.TotalActivities >= 5:
		score += 20
	case factors.TotalActivities >= 3:
		score += 15
	case factors.TotalActivities >= 1:
		score += 10
	}

	// Consistency bonus stacks with the buckets above.
	if factors.TotalActivities > 0 && factors.LastActivityDays <= 7 {
		score += 20
	}

	return clampScore(score)
}

func scoreCampaign(factors ScoringFactors) int {
	score := campaignBaseScore

	switch strings.ToLower(factors.CampaignType) {
	case "premium", "enterprise":
		score += campaignPremiumBonus
	case "standard":
		score += campaignStandardBonus
	case "basic":
		score += campaignBasicBonus
	}

	switch strings.ToLower(factors.LeadSource) {
	case "referral", "inbound":
		score += sourceReferralBonus
	case "linkedin", "social":
		score += sourceSocialBonus
	case "cold_email":
		score += sourceColdEmailBonus
	case "cold_call":
		score += sourceColdCallBonus
	}

	return clampScore(score)
}

func clampScore(value float64) int {
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
