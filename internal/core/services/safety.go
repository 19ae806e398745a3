package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driving"
)

// Ensure Gate implements the interface.
var _ driving.SafetyGate = (*Gate)(nil)

// Gate composes the risk classifier over matching output. It runs
// strictly after ranking: it only ever removes candidates, never
// reorders them, and never re-runs matching to backfill removed slots.
// Callers must tolerate fewer than TopK survivors.
type Gate struct {
	moderation driving.ModerationService
	log        zerolog.Logger
}

// NewGate creates a safety gate over the given moderation service.
func NewGate(moderation driving.ModerationService, log zerolog.Logger) *Gate {
	return &Gate{moderation: moderation, log: log}
}

// Gate implements driving.SafetyGate.
//
// The user's own text is classified once. A high-risk query raises the
// crisis warning but matching output is NOT suppressed: a user in
// acute distress should still see peer stories, and the caller layers
// crisis resources on top using the flag.
func (g *Gate) Gate(ctx context.Context, userText string, candidates []domain.MatchResult) domain.GateResult {
	user := g.moderation.Moderate(ctx, userText)

	result := domain.GateResult{
		Matches:       make([]domain.MatchResult, 0, len(candidates)),
		UserRiskScore: user.RiskScore,
	}
	if user.IsRisky && user.RiskScore > domain.CrisisThreshold {
		result.Warning = domain.CrisisWarning
		g.log.Warn().
			Float64("risk_score", user.RiskScore).
			Msg("crisis signals detected in user text")
	}

	for _, c := range candidates {
		verdict := g.moderation.Moderate(ctx, c.Text)
		if verdict.IsRisky {
			result.Dropped++
			continue
		}
		result.Matches = append(result.Matches, c)
	}
	if result.Dropped > 0 {
		g.log.Info().
			Int("dropped", result.Dropped).
			Int("kept", len(result.Matches)).
			Msg("safety gate removed risky candidates")
	}

	return result
}
