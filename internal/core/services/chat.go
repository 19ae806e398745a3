package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driven"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driving"
)

// Ensure Chat implements the interface.
var _ driving.ChatService = (*Chat)(nil)

// IntakeSystemPrompt is the default instruction sent with every reply
// request. The reply service is a listener, not a therapist: it
// forbids advice and diagnosis and caps reply length.
const IntakeSystemPrompt = `You are a compassionate listener helping someone express what they're going through.

Your role is to:
1. Listen empathetically and acknowledge their feelings
2. Ask gentle clarifying questions to understand their situation better
3. Help them put their feelings into words

You do NOT:
- Give advice or solutions
- Act as a therapist or counselor
- Make diagnoses or judgments
- Generate lengthy responses

Keep responses brief (2-3 sentences) and warm. Focus on understanding, not fixing.`

// IntakeGreeting is the default opener shown before the first user
// turn.
const IntakeGreeting = `Hey, I'm here to listen. Sometimes it helps to talk about what's on your mind.

Take your time - there's no rush. You can share whatever feels right.

Some things that might help get started:
- What's been weighing on you lately?
- Is there something specific that's been bothering you?
- How have you been feeling?

I'm here to understand, not to judge. When you're ready, I'll help you find stories from others who've been through similar experiences.`

// ChatConfig tunes the conversation controller. Zero values select the
// defaults.
type ChatConfig struct {
	// SuggestionThreshold is the user-turn count at which suggestions
	// start being attached (default domain.SuggestionTurnThreshold).
	SuggestionThreshold int

	// SuggestionTopK is how many stories to suggest (default 3).
	SuggestionTopK int

	// SuggestionMinSimilarity is the matching threshold for
	// conversation-derived queries (default
	// domain.ConversationMinSimilarity).
	SuggestionMinSimilarity float64

	// ReplyTimeout bounds the external reply call, the only dependency
	// with unbounded network latency (default 30s).
	ReplyTimeout time.Duration

	// SystemPrompt overrides the default listener instruction.
	SystemPrompt string

	// Greeting overrides the default conversation opener.
	Greeting string
}

func (c ChatConfig) withDefaults() ChatConfig {
	if c.SuggestionThreshold == 0 {
		c.SuggestionThreshold = domain.SuggestionTurnThreshold
	}
	if c.SuggestionTopK == 0 {
		c.SuggestionTopK = 3
	}
	if c.SuggestionMinSimilarity == 0 {
		c.SuggestionMinSimilarity = domain.ConversationMinSimilarity
	}
	if c.ReplyTimeout == 0 {
		c.ReplyTimeout = 30 * time.Second
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = IntakeSystemPrompt
	}
	if c.Greeting == "" {
		c.Greeting = IntakeGreeting
	}
	return c
}

// Chat is the conversation controller: a two-state machine per session.
// A session is "gathering" until enough user turns accumulate, then
// "ready" forever after, with suggestions attached on every subsequent
// turn. There is no terminal state and no reset beyond starting a new
// session ID.
type Chat struct {
	sessions driven.SessionStore
	replies  driven.ReplyService
	matcher  driving.MatcherService
	gate     driving.SafetyGate
	cfg      ChatConfig
	log      zerolog.Logger
}

// NewChat creates the conversation controller. The session store is
// injected so a persistent implementation can replace the in-memory one
// without touching this logic.
func NewChat(
	sessions driven.SessionStore,
	replies driven.ReplyService,
	matcher driving.MatcherService,
	gate driving.SafetyGate,
	cfg ChatConfig,
	log zerolog.Logger,
) *Chat {
	return &Chat{
		sessions: sessions,
		replies:  replies,
		matcher:  matcher,
		gate:     gate,
		cfg:      cfg.withDefaults(),
		log:      log,
	}
}

// Greeting implements driving.ChatService.
func (c *Chat) Greeting() string { return c.cfg.Greeting }

// Start implements driving.ChatService.
func (c *Chat) Start(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session id is required: %w", domain.ErrInvalidInput)
	}
	return c.sessions.Create(ctx, sessionID)
}

// Send implements driving.ChatService.
func (c *Chat) Send(ctx context.Context, sessionID, message string) (domain.ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.ChatReply{}, fmt.Errorf("message is empty: %w", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(message) > domain.MaxChatMessageLength {
		return domain.ChatReply{}, fmt.Errorf("message exceeds %d runes: %w",
			domain.MaxChatMessageLength, domain.ErrInvalidInput)
	}
	if c.replies == nil {
		return domain.ChatReply{}, fmt.Errorf("no reply service configured: %w", domain.ErrChatServiceUnavailable)
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	turns, err := c.sessions.AppendTurn(ctx, sessionID, domain.ChatTurn{
		Role:    domain.RoleUser,
		Content: message,
		At:      time.Now(),
	})
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("appending user turn: %w", err)
	}

	replyCtx, cancel := context.WithTimeout(ctx, c.cfg.ReplyTimeout)
	defer cancel()
	response, err := c.replies.Reply(replyCtx, c.cfg.SystemPrompt, turns)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("%w: %v", domain.ErrChatServiceUnavailable, err)
	}

	turns, err = c.sessions.AppendTurn(ctx, sessionID, domain.ChatTurn{
		Role:    domain.RoleAssistant,
		Content: response,
		At:      time.Now(),
	})
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("appending assistant turn: %w", err)
	}

	reply := domain.ChatReply{
		SessionID: sessionID,
		Response:  response,
	}

	if domain.CountUserTurns(turns) >= c.cfg.SuggestionThreshold {
		reply.ReadyForStories = true
		reply.SuggestedStories = c.suggest(ctx, turns)
	}

	return reply, nil
}

// suggest derives a matching query from the user's turns and runs it
// through the matcher and safety gate. The combined query is the
// space-joined raw user text, deliberately not an LLM summary, so
// suggestion quality never depends on reply quality. Failures are
// logged and swallowed: a transient matching problem must never block
// the conversational reply.
func (c *Chat) suggest(ctx context.Context, turns []domain.ChatTurn) []domain.MatchResult {
	suggestions := []domain.MatchResult{}
	if c.matcher == nil || !c.matcher.Ready() {
		return suggestions
	}

	var parts []string
	for _, t := range turns {
		if t.Role == domain.RoleUser {
			parts = append(parts, t.Content)
		}
	}
	combined := combineTurns(parts, domain.MaxMatchTextLength)

	candidates, err := c.matcher.Match(ctx, combined, domain.MatchOptions{
		TopK:          c.cfg.SuggestionTopK,
		MinSimilarity: c.cfg.SuggestionMinSimilarity,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("suggestion matching failed; omitting suggestions")
		return suggestions
	}

	if c.gate == nil {
		return append(suggestions, candidates...)
	}
	gated := c.gate.Gate(ctx, combined, candidates)
	return append(suggestions, gated.Matches...)
}

// combineTurns space-joins turn texts, keeping the most recent turns
// whose combined length fits within maxRunes. The matcher bounds
// one-shot query text; a long session must not push the derived query
// past that bound and starve the session of suggestions, and the
// newest turns carry the freshest signal.
func combineTurns(parts []string, maxRunes int) string {
	total := 0
	start := len(parts)
	for i := len(parts) - 1; i >= 0; i-- {
		n := utf8.RuneCountInString(parts[i])
		if start < len(parts) {
			n++ // joining space
		}
		if total+n > maxRunes && start < len(parts) {
			break
		}
		total += n
		start = i
	}
	return strings.Join(parts[start:], " ")
}
