package driving

import (
	"context"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// ChatService is the conversational intake surface: a per-session state
// machine that accumulates user turns and decides when to attach story
// suggestions.
type ChatService interface {
	// Start creates an empty session for the ID if absent. Idempotent.
	Start(ctx context.Context, sessionID string) error

	// Send appends the user's message, obtains the assistant reply,
	// and attaches gated story suggestions once the session has
	// accumulated enough user turns. A failed reply call returns
	// domain.ErrChatServiceUnavailable; a failed suggestion lookup is
	// logged and swallowed so it never blocks the reply.
	Send(ctx context.Context, sessionID, message string) (domain.ChatReply, error)

	// Greeting returns the fixed intake greeting shown before the
	// first user turn.
	Greeting() string
}
