package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driven"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driving"
)

// Ensure Matcher implements the interface.
var _ driving.MatcherService = (*Matcher)(nil)

// Matcher answers similarity queries against a loaded Index.
//
// The index is attached once during startup wiring and is immutable for
// the process lifetime, so queries run lock-free. Each query is a
// linear scan: O(n) cosine similarities for n indexed stories. That is
// fine at corpus scale (hundreds to low thousands); there is
// deliberately no approximate-nearest-neighbour structure here.
type Matcher struct {
	embedder driven.EmbeddingService
	index    *Index
	log      zerolog.Logger
}

// NewMatcher creates a matcher. The embedder must produce vectors with
// the same model the index was built with; that is checked when the
// index is attached, not per query.
func NewMatcher(embedder driven.EmbeddingService, log zerolog.Logger) *Matcher {
	return &Matcher{embedder: embedder, log: log}
}

// UseIndex attaches the index the matcher serves from. Called once
// during startup, before any queries. A model tag differing from the
// configured embedder is warned about loudly: mixed embedding versions
// produce silently meaningless similarities.
func (m *Matcher) UseIndex(ix *Index) {
	if m.embedder != nil && ix != nil && ix.Model() != m.embedder.ModelName() {
		m.log.Warn().
			Str("index_model", ix.Model()).
			Str("embedder_model", m.embedder.ModelName()).
			Msg("index snapshot was built with a different embedding model")
	}
	m.index = ix
}

// Ready reports whether an index is attached.
func (m *Matcher) Ready() bool { return m.index != nil }

// Size returns the number of indexed stories, 0 when not ready.
func (m *Matcher) Size() int {
	if m.index == nil {
		return 0
	}
	return m.index.Len()
}

// Match implements driving.MatcherService.
func (m *Matcher) Match(ctx context.Context, text string, opts domain.MatchOptions) ([]domain.MatchResult, error) {
	if opts.TopK == 0 {
		opts.TopK = domain.DefaultTopK
	}
	if opts.MinSimilarity == 0 {
		opts.MinSimilarity = domain.DefaultMinSimilarity
	}
	if opts.TopK < domain.MinTopK || opts.TopK > domain.MaxTopK {
		return nil, fmt.Errorf("top_k %d out of range [%d, %d]: %w",
			opts.TopK, domain.MinTopK, domain.MaxTopK, domain.ErrInvalidInput)
	}
	if opts.MinSimilarity < 0 || opts.MinSimilarity > 1 {
		return nil, fmt.Errorf("min_similarity %v out of range [0, 1]: %w",
			opts.MinSimilarity, domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(text) > domain.MaxMatchTextLength {
		return nil, fmt.Errorf("query text exceeds %d runes: %w",
			domain.MaxMatchTextLength, domain.ErrInvalidInput)
	}

	if m.index == nil {
		return nil, domain.ErrIndexNotLoaded
	}
	if m.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	// Matching against nothing is "no results", not an error.
	if strings.TrimSpace(text) == "" {
		return []domain.MatchResult{}, nil
	}

	query, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	ix := m.index
	order := make([]int, ix.Len())
	sims := make([]float64, ix.Len())
	for i := range ix.embeddings {
		order[i] = i
		sims[i] = CosineSimilarity(query, ix.embeddings[i])
	}

	// Stable sort: ties keep corpus order, so results are
	// deterministic across runs.
	sort.SliceStable(order, func(a, b int) bool {
		return sims[order[a]] > sims[order[b]]
	})

	// Over-fetch a 2*TopK lookahead buffer. Downstream filtering (the
	// safety gate) may reject candidates, and the caller needs
	// headroom to still fill TopK where possible.
	buffer := order
	if len(buffer) > opts.TopK*2 {
		buffer = buffer[:opts.TopK*2]
	}

	results := make([]domain.MatchResult, 0, opts.TopK)
	for _, i := range buffer {
		if len(results) == opts.TopK {
			break
		}
		if sims[i] < opts.MinSimilarity {
			continue
		}
		results = append(results, domain.MatchResult{
			Story:           ix.stories[i],
			SimilarityScore: sims[i],
		})
	}

	m.log.Debug().
		Int("candidates", ix.Len()).
		Int("returned", len(results)).
		Int("top_k", opts.TopK).
		Float64("min_similarity", opts.MinSimilarity).
		Msg("similarity query served")

	return results, nil
}
