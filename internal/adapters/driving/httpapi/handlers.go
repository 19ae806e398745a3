package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driving"
	"github.com/beenthere-labs/beenthere/internal/metrics"
)

// SessionCounter reports how many conversation sessions exist, for the
// stats endpoint. The in-memory session store satisfies it.
type SessionCounter interface {
	Len() int
}

// Handler serves the JSON API.
type Handler struct {
	matcher    driving.MatcherService
	gate       driving.SafetyGate
	moderation driving.ModerationService
	chat       driving.ChatService
	sessions   SessionCounter
	metrics    *metrics.Metrics
	version    string
	log        zerolog.Logger
}

// NewHandler creates an API handler over the core services. sessions
// and m may be nil; the stats endpoint then reports zero sessions and
// no metrics are recorded.
func NewHandler(
	matcher driving.MatcherService,
	gate driving.SafetyGate,
	moderation driving.ModerationService,
	chat driving.ChatService,
	sessions SessionCounter,
	m *metrics.Metrics,
	version string,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		matcher:    matcher,
		gate:       gate,
		moderation: moderation,
		chat:       chat,
		sessions:   sessions,
		metrics:    m,
		version:    version,
		log:        log,
	}
}

// Match handles POST /api/match.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("decoding request: %w", domain.ErrInvalidInput))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.writeError(w, fmt.Errorf("text is required: %w", domain.ErrInvalidInput))
		return
	}

	candidates, err := h.matcher.Match(r.Context(), req.Text, domain.MatchOptions{
		TopK:          req.TopK,
		MinSimilarity: req.MinSimilarity,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	gated := h.gate.Gate(r.Context(), req.Text, candidates)

	if h.metrics != nil {
		h.metrics.MatchQueriesTotal.Inc()
		h.metrics.MatchResultsTotal.Add(float64(len(gated.Matches)))
		h.metrics.GateDropsTotal.Add(float64(gated.Dropped))
		if gated.Warning != "" {
			h.metrics.CrisisWarningsTotal.Inc()
		}
	}

	h.writeJSON(w, http.StatusOK, matchResponse{
		Matches:       toStoryResults(gated.Matches),
		UserRiskScore: gated.UserRiskScore,
		Warning:       gated.Warning,
	})
}

// Moderate handles POST /api/moderate.
func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	var req moderateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("decoding request: %w", domain.ErrInvalidInput))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.writeError(w, fmt.Errorf("text is required: %w", domain.ErrInvalidInput))
		return
	}
	if utf8.RuneCountInString(req.Text) > domain.MaxModerateTextLength {
		h.writeError(w, fmt.Errorf("text exceeds %d runes: %w",
			domain.MaxModerateTextLength, domain.ErrInvalidInput))
		return
	}

	verdict := h.moderation.Moderate(r.Context(), req.Text)
	if h.metrics != nil {
		h.metrics.RecordModeration(verdict.IsRisky)
	}

	h.writeJSON(w, http.StatusOK, moderateResponse{
		IsRisky:    verdict.IsRisky,
		RiskScore:  verdict.RiskScore,
		Confidence: verdict.Confidence,
	})
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("decoding request: %w", domain.ErrInvalidInput))
		return
	}

	reply, err := h.chat.Send(r.Context(), req.SessionID, req.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ChatTurnsTotal.Inc()
		h.metrics.ChatSuggestionsTotal.Add(float64(len(reply.SuggestedStories)))
		if h.sessions != nil {
			h.metrics.ActiveSessions.Set(float64(h.sessions.Len()))
		}
	}

	h.writeJSON(w, http.StatusOK, chatResponse{
		SessionID:        reply.SessionID,
		Response:         reply.Response,
		SuggestedStories: toStoryResults(reply.SuggestedStories),
		ReadyForStories:  reply.ReadyForStories,
	})
}

// ChatGreeting handles GET /api/chat/greeting.
func (h *Handler) ChatGreeting(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, greetingResponse{Greeting: h.chat.Greeting()})
}

// Health handles GET /api/health. The process is healthy as long as it
// can serve; a missing index degrades matching but does not fail
// health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:         "ok",
		Version:        h.version,
		MatcherReady:   h.matcher.Ready(),
		ModeratorReady: h.moderation.Ready(),
	})
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(w http.ResponseWriter, _ *http.Request) {
	resp := statsResponse{
		StoriesIndexed:  h.matcher.Size(),
		IndexReady:      h.matcher.Ready(),
		ModerationReady: h.moderation.Ready(),
	}
	if h.sessions != nil {
		resp.ActiveSessions = h.sessions.Len()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response body.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error().Err(err).Msg("encoding response failed")
	}
}

// writeError maps domain errors onto HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrIndexNotLoaded),
		errors.Is(err, domain.ErrChatServiceUnavailable),
		errors.Is(err, domain.ErrEmbeddingUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("request failed")
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}
