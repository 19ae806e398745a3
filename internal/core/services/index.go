package services

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driven"
)

// Index is the in-memory embedding index: admitted stories plus their
// vectors, aligned by position. It is read-only after construction, so
// concurrent queries need no locking. Rebuilding means building a new
// Index from a fresh corpus snapshot, never mutating this one.
type Index struct {
	stories    []domain.Story
	embeddings [][]float32
	dimension  int
	model      string
}

// BuildIndex embeds the indexable stories and assembles an index.
// Stories shorter than domain.MinStoryLength are dropped before
// embedding; the embedding input is each story's title-plus-body text,
// which is never retained on the index.
func BuildIndex(ctx context.Context, stories []domain.Story, embedder driven.EmbeddingService, log zerolog.Logger) (*Index, error) {
	if embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	kept := make([]domain.Story, 0, len(stories))
	texts := make([]string, 0, len(stories))
	for _, s := range stories {
		if !s.Indexable() {
			continue
		}
		kept = append(kept, s)
		texts = append(texts, s.EmbeddingText())
	}
	if dropped := len(stories) - len(kept); dropped > 0 {
		log.Info().
			Int("dropped", dropped).
			Int("kept", len(kept)).
			Msg("excluded short stories from index")
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("building index: no stories meet the %d-rune minimum", domain.MinStoryLength)
	}

	embeddings, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d stories: %w", len(texts), err)
	}
	if len(embeddings) != len(kept) {
		return nil, fmt.Errorf("embedding count %d does not match story count %d", len(embeddings), len(kept))
	}

	return &Index{
		stories:    kept,
		embeddings: embeddings,
		dimension:  embedder.Dimensions(),
		model:      embedder.ModelName(),
	}, nil
}

// IndexFromSnapshot reconstructs an index from its persisted form.
func IndexFromSnapshot(snap *domain.IndexSnapshot) (*Index, error) {
	if snap == nil {
		return nil, fmt.Errorf("loading index: nil snapshot")
	}
	if len(snap.Stories) != len(snap.Embeddings) {
		return nil, fmt.Errorf(
			"loading index: %d stories but %d embeddings",
			len(snap.Stories), len(snap.Embeddings),
		)
	}
	for i, e := range snap.Embeddings {
		if len(e) != snap.Dimension {
			return nil, fmt.Errorf(
				"loading index: embedding %d has dimension %d, want %d",
				i, len(e), snap.Dimension,
			)
		}
	}

	return &Index{
		stories:    snap.Stories,
		embeddings: snap.Embeddings,
		dimension:  snap.Dimension,
		model:      snap.Model,
	}, nil
}

// Snapshot returns the persistable form of the index.
func (ix *Index) Snapshot() *domain.IndexSnapshot {
	return &domain.IndexSnapshot{
		Stories:    ix.stories,
		Embeddings: ix.embeddings,
		Dimension:  ix.dimension,
		Model:      ix.model,
	}
}

// Len returns the number of indexed stories.
func (ix *Index) Len() int { return len(ix.stories) }

// Model returns the embedding model tag the index was built with.
func (ix *Index) Model() string { return ix.model }

// Dimension returns the embedding vector length.
func (ix *Index) Dimension() int { return ix.dimension }

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value in [-1, 1], and 0 when either vector has zero norm
// or the lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
