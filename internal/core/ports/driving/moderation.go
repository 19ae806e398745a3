package driving

import (
	"context"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// ModerationService classifies text as safe or risky. It never fails:
// with no trained model loaded it returns the all-safe fallback verdict.
// Input bounds are enforced at the transport boundary, not here.
type ModerationService interface {
	// Moderate returns the risk assessment for text.
	Moderate(ctx context.Context, text string) domain.RiskAssessment

	// Ready reports whether a trained risk model is loaded. False
	// means every verdict is the fail-safe default, which operators
	// must not mistake for a validated-safe corpus.
	Ready() bool
}
