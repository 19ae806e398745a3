package driven

import (
	"context"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// ReplyService produces the assistant's next utterance in an intake
// conversation. It is an opaque text-in/text-out collaborator: the
// system prompt and turn history go in, one reply comes out.
//
// A failed call surfaces immediately; retry policy, if any, belongs to
// the implementation's HTTP client, not the core. The conversation
// controller wraps calls in a timeout budget since this is the only
// dependency with unbounded network latency.
type ReplyService interface {
	// Reply returns the assistant's response given the fixed system
	// instruction and the full ordered turn history.
	Reply(ctx context.Context, systemPrompt string, turns []domain.ChatTurn) (string, error)

	// ModelName returns the name of the underlying chat model.
	ModelName() string

	// Close releases resources.
	Close() error
}
