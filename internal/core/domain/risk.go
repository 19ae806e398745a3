package domain

// RiskAssessment is the moderation verdict for a piece of text.
type RiskAssessment struct {
	// IsRisky is true when the risk score exceeds 0.5.
	IsRisky bool

	// RiskScore is the calibrated probability of the risky class, in [0, 1].
	RiskScore float64

	// Confidence is max(RiskScore, 1-RiskScore): how far the score sits
	// from the decision boundary.
	Confidence float64
}

// SafeAssessment is the verdict returned when no trained risk model is
// loaded. It is a deliberate fail-safe default: content is let through
// rather than blocked. This is a fallback, not a guarantee that the
// text was validated; operators can observe the degraded state through
// the moderator readiness flag.
func SafeAssessment() RiskAssessment {
	return RiskAssessment{IsRisky: false, RiskScore: 0.0, Confidence: 0.5}
}

// CrisisWarning is attached to a gate result when the user's own text
// classifies as high risk. The query is flagged, never suppressed:
// someone in acute distress should still receive peer stories, with the
// flag available for the caller to layer crisis resources on top.
const CrisisWarning = "crisis_detected"

// CrisisThreshold is the risk score above which a risky query raises
// CrisisWarning. Tunable.
const CrisisThreshold = 0.8

// MaxModerateTextLength bounds the text accepted by the moderation
// surface, in runes.
const MaxModerateTextLength = 10000

// GateResult is the outcome of passing a query and its match candidates
// through the safety gate.
type GateResult struct {
	// Matches are the surviving candidates, in their original rank order.
	Matches []MatchResult

	// UserRiskScore is the risk score of the user's query text.
	UserRiskScore float64

	// Warning is CrisisWarning when the query classified as high risk,
	// empty otherwise.
	Warning string

	// Dropped counts the candidates removed for being risky.
	Dropped int
}
