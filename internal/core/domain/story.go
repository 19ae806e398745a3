package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinStoryLength is the minimum display-text length, in runes, for a
// story to be admitted into the embedding index. Shorter fragments carry
// too little signal and pollute similarity rankings, so they are dropped
// at index-build time and can never appear in results.
const MinStoryLength = 50

// Story is an immutable corpus entry: a first-person account written by
// someone who has been through a personal struggle.
type Story struct {
	// ID is the unique identifier for the story.
	ID string

	// Title is an optional human-readable title.
	Title string

	// Text is the story content. It is used both for embedding and
	// for display.
	Text string

	// Tags are free-form topic labels, in authored order.
	Tags []string

	// AuthorID identifies the mentor who wrote the story.
	AuthorID string

	// CreatedAt is when the story was published.
	CreatedAt time.Time

	// ParentID links to a parent story for threaded replies.
	// It is passthrough metadata and never influences matching.
	ParentID *string

	// ThreadID links to the containing thread, if any.
	ThreadID *string
}

// EmbeddingText returns the text the index embeds for this story: the
// title, when present, concatenated with the body. Titles carry
// high-signal keywords that improve recall. The concatenated form is a
// working value only and must never be exposed in results.
func (s Story) EmbeddingText() string {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return s.Text
	}
	return title + " " + s.Text
}

// Indexable reports whether the story is long enough to embed.
// The threshold applies to the display text, not the embedding text.
func (s Story) Indexable() bool {
	return utf8.RuneCountInString(s.Text) >= MinStoryLength
}

// MatchResult pairs a story with its cosine similarity to a query.
// Similarity is in [-1, 1]; after threshold filtering it is typically
// in [0, 1].
type MatchResult struct {
	Story

	// SimilarityScore is the cosine similarity between the query and
	// the story's embedding.
	SimilarityScore float64
}

// MatchOptions bounds a matching query. Zero values select the
// defaults.
type MatchOptions struct {
	// TopK is the maximum number of results to return (1..20).
	TopK int

	// MinSimilarity is the similarity floor; candidates below it are
	// discarded (0..1).
	MinSimilarity float64
}

// Matching query bounds. TopK outside [MinTopK, MaxTopK] or a
// MinSimilarity outside [0, 1] is rejected as invalid input.
const (
	MinTopK = 1
	MaxTopK = 20

	// MaxMatchTextLength bounds the query text for one-shot matching,
	// in runes. Longer input is rejected before any computation.
	MaxMatchTextLength = 5000

	// DefaultTopK is used when the caller does not specify a count.
	DefaultTopK = 5

	// DefaultMinSimilarity is the one-shot matching threshold.
	DefaultMinSimilarity = 0.2

	// ConversationMinSimilarity is the threshold used when the query
	// is derived from concatenated conversational turns rather than a
	// composed description.
	ConversationMinSimilarity = 0.3
)
