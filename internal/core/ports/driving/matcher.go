package driving

import (
	"context"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// MatcherService answers similarity queries against the loaded
// embedding index.
type MatcherService interface {
	// Match returns up to opts.TopK stories ranked by descending
	// cosine similarity to text, dropping candidates below
	// opts.MinSimilarity. Empty or whitespace-only text yields an
	// empty result, not an error. Returns domain.ErrIndexNotLoaded
	// when no snapshot has been loaded.
	Match(ctx context.Context, text string, opts domain.MatchOptions) ([]domain.MatchResult, error)

	// Ready reports whether an index snapshot is loaded.
	Ready() bool

	// Size returns the number of indexed stories.
	Size() int
}

// SafetyGate filters match candidates through the risk classifier and
// flags risky queries.
type SafetyGate interface {
	// Gate classifies userText once and each candidate once, drops
	// risky candidates while preserving rank order, and raises the
	// crisis warning for a high-risk query without suppressing it.
	// Like moderation, gating never fails.
	Gate(ctx context.Context, userText string, candidates []domain.MatchResult) domain.GateResult
}
