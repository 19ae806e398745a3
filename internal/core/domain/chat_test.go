package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCountUserTurns tests user-turn counting across roles
func TestCountUserTurns(t *testing.T) {
	tests := []struct {
		name  string
		turns []ChatTurn
		want  int
	}{
		{
			name:  "empty conversation",
			turns: nil,
			want:  0,
		},
		{
			name: "alternating turns",
			turns: []ChatTurn{
				{Role: RoleUser, Content: "hi"},
				{Role: RoleAssistant, Content: "hello"},
				{Role: RoleUser, Content: "I feel stuck"},
			},
			want: 2,
		},
		{
			name: "assistant only",
			turns: []ChatTurn{
				{Role: RoleAssistant, Content: "hello"},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountUserTurns(tt.turns))
		})
	}
}

// TestSafeAssessment tests the untrained-model fallback verdict
func TestSafeAssessment(t *testing.T) {
	a := SafeAssessment()
	assert.False(t, a.IsRisky)
	assert.Equal(t, 0.0, a.RiskScore)
	assert.Equal(t, 0.5, a.Confidence)
}
