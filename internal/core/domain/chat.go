package domain

import "time"

// Turn roles. The intake conversation only ever contains these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is one utterance in an intake conversation.
type ChatTurn struct {
	// Role is RoleUser or RoleAssistant.
	Role string

	// Content is the utterance text.
	Content string

	// At is when the turn was appended.
	At time.Time
}

// ChatSession is the per-session conversation state: an append-only,
// ordered sequence of turns keyed by session ID. Sessions grow
// monotonically and live in process memory; expiry is an external
// concern.
type ChatSession struct {
	ID        string
	Turns     []ChatTurn
	CreatedAt time.Time
}

// CountUserTurns returns the number of user-authored turns in a
// conversation. The conversation controller compares it against the
// suggestion threshold.
func CountUserTurns(turns []ChatTurn) int {
	n := 0
	for _, t := range turns {
		if t.Role == RoleUser {
			n++
		}
	}
	return n
}

// ChatReply is what the conversation controller returns for one turn.
type ChatReply struct {
	// SessionID identifies the session, newly minted on the first turn.
	SessionID string

	// Response is the assistant's reply text.
	Response string

	// SuggestedStories are gated match results derived from the user's
	// turns so far. Nil until the session is ready; may be empty even
	// when ready, if nothing cleared the threshold or the gate.
	SuggestedStories []MatchResult

	// ReadyForStories is true once enough user turns have accumulated
	// for matching to fire. It stays true for the life of the session.
	ReadyForStories bool
}

// SuggestionTurnThreshold is the number of user turns after which the
// conversation controller starts attaching story suggestions.
const SuggestionTurnThreshold = 2

// MaxChatMessageLength bounds a single chat message, in runes.
const MaxChatMessageLength = 1000
