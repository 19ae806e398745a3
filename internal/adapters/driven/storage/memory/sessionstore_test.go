package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// TestSessionStore_CreateIdempotent tests that re-creating a session
// keeps its turns.
func TestSessionStore_CreateIdempotent(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, "sess-1"))
	_, err := store.AppendTurn(ctx, "sess-1", domain.ChatTurn{Role: domain.RoleUser, Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, store.Create(ctx, "sess-1"))

	turns, err := store.Turns(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, turns, 1)
	assert.Equal(t, 1, store.Len())
}

// TestSessionStore_AppendTurn tests ordering and creation-on-append.
func TestSessionStore_AppendTurn(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	turns, err := store.AppendTurn(ctx, "sess-1", domain.ChatTurn{Role: domain.RoleUser, Content: "first", At: time.Now()})
	require.NoError(t, err)
	assert.Len(t, turns, 1)

	turns, err = store.AppendTurn(ctx, "sess-1", domain.ChatTurn{Role: domain.RoleAssistant, Content: "second", At: time.Now()})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "first", turns[0].Content)
	assert.Equal(t, "second", turns[1].Content)
}

// TestSessionStore_TurnsUnknownSession tests the not-found error.
func TestSessionStore_TurnsUnknownSession(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Turns(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestSessionStore_ReturnedSliceIsACopy tests that callers cannot
// mutate store state through a returned slice.
func TestSessionStore_ReturnedSliceIsACopy(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	turns, err := store.AppendTurn(ctx, "sess-1", domain.ChatTurn{Role: domain.RoleUser, Content: "original"})
	require.NoError(t, err)
	turns[0].Content = "mutated"

	fresh, err := store.Turns(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "original", fresh[0].Content)
}

// TestSessionStore_ConcurrentAppends tests that parallel appends
// across sessions lose no turns.
func TestSessionStore_ConcurrentAppends(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	const sessions = 8
	const perSession = 25

	var wg sync.WaitGroup
	for s := 0; s < sessions; s++ {
		for i := 0; i < perSession; i++ {
			wg.Add(1)
			go func(s int) {
				defer wg.Done()
				_, err := store.AppendTurn(ctx, fmt.Sprintf("sess-%d", s),
					domain.ChatTurn{Role: domain.RoleUser, Content: "msg"})
				assert.NoError(t, err)
			}(s)
		}
	}
	wg.Wait()

	assert.Equal(t, sessions, store.Len())
	for s := 0; s < sessions; s++ {
		turns, err := store.Turns(ctx, fmt.Sprintf("sess-%d", s))
		require.NoError(t, err)
		assert.Len(t, turns, perSession)
	}
}
