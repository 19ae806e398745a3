package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// mockEmbedder is a deterministic bag-of-words embedder: each vocab
// word is one dimension, and a text's vector counts how often each
// word occurs. Texts sharing vocabulary get a high cosine similarity,
// unrelated texts get zero.
type mockEmbedder struct {
	vocab      []string
	err        error
	embedCalls int
	batchCalls int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.embedCalls++
	return m.vector(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.batchCalls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vector(t)
	}
	return out, nil
}

func (m *mockEmbedder) vector(text string) []float32 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	v := make([]float32, len(m.vocab))
	for _, w := range words {
		for i, vw := range m.vocab {
			if w == vw {
				v[i]++
			}
		}
	}
	return v
}

func (m *mockEmbedder) Dimensions() int            { return len(m.vocab) }
func (m *mockEmbedder) ModelName() string          { return "mock-embed-v1" }
func (m *mockEmbedder) Ping(context.Context) error { return m.err }
func (m *mockEmbedder) Close() error               { return nil }

// mockModeration flags any text containing one of the risky substrings.
type mockModeration struct {
	riskyWords []string
	riskScore  float64
	ready      bool
}

func (m *mockModeration) Moderate(_ context.Context, text string) domain.RiskAssessment {
	lower := strings.ToLower(text)
	for _, w := range m.riskyWords {
		if strings.Contains(lower, w) {
			return domain.RiskAssessment{IsRisky: true, RiskScore: m.riskScore, Confidence: m.riskScore}
		}
	}
	return domain.RiskAssessment{IsRisky: false, RiskScore: 0.1, Confidence: 0.9}
}

func (m *mockModeration) Ready() bool { return m.ready }

// mockReply returns a canned response or a canned error.
type mockReply struct {
	response string
	err      error
	calls    int
}

func (m *mockReply) Reply(_ context.Context, _ string, _ []domain.ChatTurn) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockReply) ModelName() string { return "mock-chat-v1" }
func (m *mockReply) Close() error      { return nil }

// mockSessions is a minimal in-memory session store for tests.
type mockSessions struct {
	mu       sync.Mutex
	sessions map[string][]domain.ChatTurn
	err      error
}

func newMockSessions() *mockSessions {
	return &mockSessions{sessions: map[string][]domain.ChatTurn{}}
}

func (m *mockSessions) Create(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		m.sessions[id] = []domain.ChatTurn{}
	}
	return nil
}

func (m *mockSessions) AppendTurn(_ context.Context, id string, turn domain.ChatTurn) ([]domain.ChatTurn, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = append(m.sessions[id], turn)
	out := make([]domain.ChatTurn, len(m.sessions[id]))
	copy(out, m.sessions[id])
	return out, nil
}

func (m *mockSessions) Turns(_ context.Context, id string) ([]domain.ChatTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	turns, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.ChatTurn, len(turns))
	copy(out, turns)
	return out, nil
}

// mockMatcher records the query it was given and returns canned results.
type mockMatcher struct {
	results []domain.MatchResult
	err     error
	ready   bool
	gotText string
	gotOpts domain.MatchOptions
}

func (m *mockMatcher) Match(_ context.Context, text string, opts domain.MatchOptions) ([]domain.MatchResult, error) {
	m.gotText = text
	m.gotOpts = opts
	if utf8.RuneCountInString(text) > domain.MaxMatchTextLength {
		return nil, fmt.Errorf("text exceeds %d runes: %w", domain.MaxMatchTextLength, domain.ErrInvalidInput)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockMatcher) Ready() bool { return m.ready }
func (m *mockMatcher) Size() int   { return len(m.results) }
