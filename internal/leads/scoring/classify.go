package scoring

// Grade is the letter classification derived from the composite score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Priority is the Hot/Warm/Cold triage tier.
type Priority string

const (
	PriorityHot  Priority = "Hot"
	PriorityWarm Priority = "Warm"
	PriorityCold Priority = "Cold"
)

// RiskLevel estimates the likelihood of losing the lead.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Classification is the discrete outcome for a composite score.
type Classification struct {
	Grade     Grade
	Priority  Priority
	RiskLevel RiskLevel
}

// Classify maps the composite score and recency signal to grade, priority,
// and risk. Pure and deterministic.
func Classify(totalScore int, lastActivityDays float64) Classification {
	return Classification{
		Grade:     gradeFor(totalScore),
		Priority:  priorityFor(totalScore),
		RiskLevel: riskFor(totalScore, lastActivityDays),
	}
}

// Boundaries are inclusive-lower and checked top-down, so ties resolve to
// the higher grade.
func gradeFor(totalScore int) Grade {
	switch {
	case totalScore >= 85:
		return GradeA
	case totalScore >= 70:
		return GradeB
	case totalScore >= 55:
		return GradeC
	case totalScore >= 40:
		return GradeD
	default:
		return GradeF
	}
}

func priorityFor(totalScore int) Priority {
	switch {
	case totalScore >= 75:
		return PriorityHot
	case totalScore >= 50:
		return PriorityWarm
	default:
		return PriorityCold
	}
}

// The High condition is checked first and short-circuits.
func riskFor(totalScore int, lastActivityDays float64) RiskLevel {
	if lastActivityDays > 14 && totalScore < 60 {
		return RiskHigh
	}
	if lastActivityDays > 7 || totalScore < 70 {
		return RiskMedium
	}
	return RiskLow
}
