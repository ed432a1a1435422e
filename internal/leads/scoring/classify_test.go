package scoring

import "testing"

func TestGradeBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  Grade
	}{
		{100, GradeA},
		{85, GradeA},
		{84, GradeB},
		{70, GradeB},
		{69, GradeC},
		{55, GradeC},
		{54, GradeD},
		{40, GradeD},
		{39, GradeF},
		{0, GradeF},
	}
	for _, tc := range cases {
		if got := gradeFor(tc.score); got != tc.want {
			t.Errorf("gradeFor(%d): expected %q, got %q", tc.score, tc.want, got)
		}
	}
}

func TestPriorityBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  Priority
	}{
		{100, PriorityHot},
		{75, PriorityHot},
		{74, PriorityWarm},
		{50, PriorityWarm},
		{49, PriorityCold},
		{0, PriorityCold},
	}
	for _, tc := range cases {
		if got := priorityFor(tc.score); got != tc.want {
			t.Errorf("priorityFor(%d): expected %q, got %q", tc.score, tc.want, got)
		}
	}
}

func TestRiskLevels(t *testing.T) {
	cases := []struct {
		name  string
		score int
		days  float64
		want  RiskLevel
	}{
		{"stale and weak is high", 59, 15, RiskHigh},
		{"stale but strong enough avoids high", 60, 15, RiskMedium},
		{"weak alone is medium", 69, 0, RiskMedium},
		{"aging alone is medium", 80, 8, RiskMedium},
		{"fresh and strong is low", 70, 7, RiskLow},
		{"top score fresh is low", 98, 1, RiskLow},
	}
	for _, tc := range cases {
		if got := riskFor(tc.score, tc.days); got != tc.want {
			t.Errorf("%s: riskFor(%d, %v) expected %q, got %q", tc.name, tc.score, tc.days, tc.want, got)
		}
	}
}

func TestClassifyCombinesAllThreeSignals(t *testing.T) {
	c := Classify(98, 1)
	if c.Grade != GradeA || c.Priority != PriorityHot || c.RiskLevel != RiskLow {
		t.Fatalf("expected A/Hot/Low, got %s/%s/%s", c.Grade, c.Priority, c.RiskLevel)
	}

	c = Classify(15, 20)
	if c.Grade != GradeF || c.Priority != PriorityCold || c.RiskLevel != RiskHigh {
		t.Fatalf("expected F/Cold/High, got %s/%s/%s", c.Grade, c.Priority, c.RiskLevel)
	}
}
