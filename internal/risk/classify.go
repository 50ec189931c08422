package risk

import (
	"riskd/internal/domain"
)

// classifyLevel maps a score to its risk level. Monotonic: a higher score
// never yields a lower level.
func classifyLevel(score int) domain.RiskLevel {
	switch {
	case score >= 80:
		return domain.RiskLevelCritical
	case score >= 60:
		return domain.RiskLevelHigh
	case score >= 30:
		return domain.RiskLevelMedium
	default:
		return domain.RiskLevelLow
	}
}

// recommendAction maps level and score to the action. The score compared
// here is the raw accumulated value before clamping: a raw 95 still maps to
// DECLINE even though the reported score is capped at 100.
func recommendAction(level domain.RiskLevel, rawScore int) domain.RecommendedAction {
	switch {
	case level == domain.RiskLevelCritical || rawScore >= 90:
		return domain.ActionDecline
	case level == domain.RiskLevelHigh || rawScore >= 70:
		return domain.ActionReview
	case level == domain.RiskLevelMedium || rawScore >= 40:
		return domain.ActionRequireOTP
	default:
		return domain.ActionApprove
	}
}

// additionalVerification derives the extra verification steps from the level
// and the flagged reasons.
func additionalVerification(level domain.RiskLevel, reasons []string) []domain.VerificationStep {
	steps := []domain.VerificationStep{}
	if level == domain.RiskLevelHigh || level == domain.RiskLevelCritical {
		steps = append(steps, domain.VerificationSMSOTP, domain.VerificationDocument)
	}
	for _, reason := range reasons {
		switch reason {
		case "Transaction from new device":
			steps = append(steps, domain.VerificationDevice)
		case "Transaction from unusual location":
			steps = append(steps, domain.VerificationLocation)
		}
	}
	return steps
}

// buildAssessment assembles the final decision from the raw accumulated
// score and ordered reasons. The reported score clamps to [0,100].
func buildAssessment(rawScore int, reasons []string) domain.RiskAssessment {
	clamped := rawScore
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}
	if reasons == nil {
		reasons = []string{}
	}

	level := classifyLevel(clamped)

	return domain.RiskAssessment{
		RiskScore:              clamped,
		RiskLevel:              level,
		FlaggedReasons:         reasons,
		RecommendedAction:      recommendAction(level, rawScore),
		AdditionalVerification: additionalVerification(level, reasons),
	}
}
