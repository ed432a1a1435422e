package scoring

// Recommendation strings. The rule list below is ordered; each rule fires at
// most once and output order is evaluation order.
const (
	recObtainEmail    = "Obtain email address for better communication"
	recGetPhone       = "Get phone number for direct contact"
	recFollowUp       = "Follow up immediately - lead is getting cold"
	recCallTiming     = "Try different calling times or email first"
	recSubjectLines   = "Improve email subject lines"
	recQualifyingInfo = "Gather more qualifying information"
	recPersonalize    = "Increase engagement with personalized content"
	recHighQuality    = "High-quality lead - prioritize for immediate contact"
)

// Next-best-action strings, first matching rule wins.
const (
	actionReengage      = "Re-engagement campaign"
	actionFollowUpCall  = "Schedule follow-up call"
	actionPersonalEmail = "Send personalized email"
	actionPhoneCall     = "Make phone call"
	actionInitialEmail  = "Send initial email"
)

// Recommend evaluates the fixed rule list and returns the suggestions that
// apply, in rule order.
func Recommend(factors ScoringFactors, subScores SubScores, totalScore int) []string {
	recommendations := make([]string, 0, 4)

	if !factors.HasEmail {
		recommendations = append(recommendations, recObtainEmail)
	}
	if !factors.HasPhone {
		recommendations = append(recommendations, recGetPhone)
	}
	if factors.LastActivityDays > 7 {
		recommendations = append(recommendations, recFollowUp)
	}
	if factors.CallsAttempted > 0 && factors.CallsAnswered == 0 {
		recommendations = append(recommendations, recCallTiming)
	}
	if factors.EmailOpens == 0 && factors.EmailClicks > 0 {
		recommendations = append(recommendations, recSubjectLines)
	}
	if factors.CustomDataCompleteness < 50 {
		recommendations = append(recommendations, recQualifyingInfo)
	}
	if subScores.Engagement < 30 {
		recommendations = append(recommendations, recPersonalize)
	}
	if totalScore >= 80 {
		recommendations = append(recommendations, recHighQuality)
	}

	return recommendations
}

// NextBestAction picks the single next step from a fixed decision list.
// First match wins; the order is intentional, not an optimization.
func NextBestAction(factors ScoringFactors) string {
	switch {
	case factors.LastActivityDays > 14:
		return actionReengage
	case factors.CallsAnswered > 0:
		return actionFollowUpCall
	case factors.EmailOpens > 0:
		return actionPersonalEmail
	case factors.HasPhone:
		return actionPhoneCall
	default:
		return actionInitialEmail
	}
}
