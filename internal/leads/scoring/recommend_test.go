package scoring

import "testing"

func containsString(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

func TestRecommendMissingContactChannels(t *testing.T) {
	factors := ScoringFactors{CustomDataCompleteness: 80}
	subScores := SubScores{Engagement: 40}

	recs := Recommend(factors, subScores, 50)

	if !containsString(recs, recObtainEmail) {
		t.Fatalf("expected email recommendation, got %v", recs)
	}
	if !containsString(recs, recGetPhone) {
		t.Fatalf("expected phone recommendation, got %v", recs)
	}
}

func TestRecommendStaleLeadGetsFollowUp(t *testing.T) {
	factors := ScoringFactors{HasEmail: true, HasPhone: true, LastActivityDays: 8, CustomDataCompleteness: 80}
	recs := Recommend(factors, SubScores{Engagement: 40}, 50)

	if !containsString(recs, recFollowUp) {
		t.Fatalf("expected follow-up recommendation, got %v", recs)
	}
}

func TestRecommendUnansweredCallsAndBlindClicks(t *testing.T) {
	factors := ScoringFactors{
		HasEmail:               true,
		HasPhone:               true,
		CallsAttempted:         3,
		CallsAnswered:          0,
		EmailOpens:             0,
		EmailClicks:            2,
		CustomDataCompleteness: 80,
	}
	recs := Recommend(factors, SubScores{Engagement: 40}, 50)

	if !containsString(recs, recCallTiming) {
		t.Fatalf("expected call-timing recommendation, got %v", recs)
	}
	if !containsString(recs, recSubjectLines) {
		t.Fatalf("expected subject-lines recommendation, got %v", recs)
	}
}

func TestRecommendLowCompletenessAndEngagement(t *testing.T) {
	factors := ScoringFactors{HasEmail: true, HasPhone: true, CustomDataCompleteness: 40}
	recs := Recommend(factors, SubScores{Engagement: 29}, 50)

	if !containsString(recs, recQualifyingInfo) {
		t.Fatalf("expected qualifying-info recommendation, got %v", recs)
	}
	if !containsString(recs, recPersonalize) {
		t.Fatalf("expected personalization recommendation, got %v", recs)
	}
}

func TestRecommendHighQualityLead(t *testing.T) {
	factors := ScoringFactors{HasEmail: true, HasPhone: true, CustomDataCompleteness: 100}
	recs := Recommend(factors, SubScores{Engagement: 90}, 80)

	if len(recs) != 1 || recs[0] != recHighQuality {
		t.Fatalf("expected only high-quality recommendation, got %v", recs)
	}
}

func TestRecommendOrderFollowsRuleOrder(t *testing.T) {
	// A lead missing everything trips the contact rules first.
	factors := ScoringFactors{LastActivityDays: 10}
	recs := Recommend(factors, SubScores{Engagement: 0}, 10)

	want := []string{recObtainEmail, recGetPhone, recFollowUp, recQualifyingInfo, recPersonalize}
	if len(recs) != len(want) {
		t.Fatalf("expected %d recommendations, got %v", len(want), recs)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], recs[i])
		}
	}
}

func TestNextBestActionDecisionOrder(t *testing.T) {
	cases := []struct {
		name    string
		factors ScoringFactors
		want    string
	}{
		{"stale wins over everything", ScoringFactors{LastActivityDays: 15, CallsAnswered: 3, EmailOpens: 5, HasPhone: true}, actionReengage},
		{"answered call beats opens", ScoringFactors{LastActivityDays: 2, CallsAnswered: 1, EmailOpens: 5, HasPhone: true}, actionFollowUpCall},
		{"opens beat phone", ScoringFactors{LastActivityDays: 2, EmailOpens: 3, HasPhone: true}, actionPersonalEmail},
		{"phone without engagement", ScoringFactors{LastActivityDays: 2, HasPhone: true}, actionPhoneCall},
		{"nothing at all", ScoringFactors{LastActivityDays: 2}, actionInitialEmail},
	}
	for _, tc := range cases {
		if got := NextBestAction(tc.factors); got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestNextBestActionBoundaryAtFourteenDays(t *testing.T) {
	factors := ScoringFactors{LastActivityDays: 14, HasPhone: true}
	if got := NextBestAction(factors); got != actionPhoneCall {
		t.Fatalf("day 14 should not trigger re-engagement, got %q", got)
	}

	factors.LastActivityDays = 14.1
	if got := NextBestAction(factors); got != actionReengage {
		t.Fatalf("past day 14 should trigger re-engagement, got %q", got)
	}
}
