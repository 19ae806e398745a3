package driven

import (
	"context"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// StoryStore persists the raw story corpus. It feeds offline index
// builds and seeding; the serving path never touches it.
type StoryStore interface {
	// SaveStories inserts or replaces stories by ID.
	SaveStories(ctx context.Context, stories []domain.Story) error

	// GetStory retrieves a story by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetStory(ctx context.Context, id string) (*domain.Story, error)

	// ListStories returns the full corpus in insertion order.
	ListStories(ctx context.Context) ([]domain.Story, error)

	// CountStories returns the corpus size.
	CountStories(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
