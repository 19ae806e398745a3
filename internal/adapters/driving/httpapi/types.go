package httpapi

import (
	"time"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// matchRequest is the /api/match request body.
type matchRequest struct {
	Text          string  `json:"text"`
	TopK          int     `json:"top_k,omitempty"`
	MinSimilarity float64 `json:"min_similarity,omitempty"`
}

// storyResult is one matched story in a response.
type storyResult struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Text            string    `json:"text"`
	Tags            []string  `json:"tags,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	SimilarityScore float64   `json:"similarity_score"`
}

// matchResponse is the /api/match response body.
type matchResponse struct {
	Matches       []storyResult `json:"matches"`
	UserRiskScore float64       `json:"user_risk_score"`
	Warning       string        `json:"warning,omitempty"`
}

// moderateRequest is the /api/moderate request body.
type moderateRequest struct {
	Text string `json:"text"`
}

// moderateResponse is the /api/moderate response body.
type moderateResponse struct {
	IsRisky    bool    `json:"is_risky"`
	RiskScore  float64 `json:"risk_score"`
	Confidence float64 `json:"confidence"`
}

// chatRequest is the /api/chat request body. An empty session ID
// starts a new conversation.
type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// chatResponse is the /api/chat response body.
type chatResponse struct {
	SessionID        string        `json:"session_id"`
	Response         string        `json:"response"`
	SuggestedStories []storyResult `json:"suggested_stories,omitempty"`
	ReadyForStories  bool          `json:"ready_for_stories"`
}

// greetingResponse is the /api/chat/greeting response body.
type greetingResponse struct {
	Greeting string `json:"greeting"`
}

// healthResponse is the /api/health response body. The readiness flags
// surface degraded states (no index, untrained risk model) to
// operators without failing health.
type healthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	MatcherReady   bool   `json:"matcher_ready"`
	ModeratorReady bool   `json:"moderator_ready"`
}

// statsResponse is the /api/stats response body.
type statsResponse struct {
	StoriesIndexed  int  `json:"stories_indexed"`
	IndexReady      bool `json:"index_ready"`
	ModerationReady bool `json:"moderation_ready"`
	ActiveSessions  int  `json:"active_sessions"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func toStoryResults(matches []domain.MatchResult) []storyResult {
	out := make([]storyResult, len(matches))
	for i, m := range matches {
		out[i] = storyResult{
			ID:              m.ID,
			Title:           m.Title,
			Text:            m.Text,
			Tags:            m.Tags,
			CreatedAt:       m.CreatedAt,
			SimilarityScore: m.SimilarityScore,
		}
	}
	return out
}
