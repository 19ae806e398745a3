package memory

import (
	"context"
	"sync"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driven"
)

// Ensure StoryStore implements the interface.
var _ driven.StoryStore = (*StoryStore)(nil)

// StoryStore is an in-memory implementation of driven.StoryStore.
// It preserves insertion order and is safe for concurrent use. Useful
// for tests and for serving a corpus seeded at startup; the SQLite
// store is the persistent implementation.
type StoryStore struct {
	mu      sync.RWMutex
	stories map[string]domain.Story
	order   []string
}

// NewStoryStore creates a new in-memory story store.
func NewStoryStore() *StoryStore {
	return &StoryStore{
		stories: make(map[string]domain.Story),
	}
}

// SaveStories inserts or replaces stories by ID. A replaced story
// keeps its original position in the corpus order.
func (s *StoryStore) SaveStories(_ context.Context, stories []domain.Story) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, story := range stories {
		if _, exists := s.stories[story.ID]; !exists {
			s.order = append(s.order, story.ID)
		}
		s.stories[story.ID] = story
	}
	return nil
}

// GetStory retrieves a story by ID.
func (s *StoryStore) GetStory(_ context.Context, id string) (*domain.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	story, ok := s.stories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &story, nil
}

// ListStories returns the full corpus in insertion order.
func (s *StoryStore) ListStories(_ context.Context) ([]domain.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Story, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.stories[id])
	}
	return result, nil
}

// CountStories returns the corpus size.
func (s *StoryStore) CountStories(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stories), nil
}

// Close implements driven.StoryStore. Nothing to release.
func (s *StoryStore) Close() error { return nil }
