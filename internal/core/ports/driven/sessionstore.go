package driven

import (
	"context"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// SessionStore persists conversation sessions keyed by session ID.
//
// Turn sequences are append-only. Implementations must serialize
// appends to the same session without blocking access to other
// sessions (one lock per session, not a global lock). Callers receive
// copies; a returned slice never aliases store-internal state.
//
// The in-memory adapter is the default. The interface exists so a
// persistent or distributed store can be swapped in without touching
// the conversation controller.
type SessionStore interface {
	// Create makes an empty session for the ID if none exists.
	// Creating an existing session is a no-op.
	Create(ctx context.Context, id string) error

	// AppendTurn appends a turn to the session, creating the session
	// if absent, and returns the full turn sequence after the append.
	AppendTurn(ctx context.Context, id string, turn domain.ChatTurn) ([]domain.ChatTurn, error)

	// Turns returns the session's ordered turn sequence.
	// Returns domain.ErrNotFound for an unknown session.
	Turns(ctx context.Context, id string) ([]domain.ChatTurn, error)
}
