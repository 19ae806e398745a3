package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/riskmodel"
)

// loadTestModel writes a hand-built model file and loads it, which is
// the only path to a trained model outside the trainer.
func loadTestModel(t *testing.T) *riskmodel.Model {
	t.Helper()

	// Weight only exclamation_count, with a pass-through scaler, so
	// verdicts are easy to predict: p = sigmoid(2*exclamations - 1).
	payload := `{
		"feature_names": ["word_count", "char_count", "avg_word_length", "exclamation_count", "question_count", "caps_ratio", "sentence_count", "avg_sentence_length"],
		"safe_labels": ["benign"],
		"scaler": {
			"mean": [0, 0, 0, 0, 0, 0, 0, 0],
			"std": [1, 1, 1, 1, 1, 1, 1, 1]
		},
		"classifier": {
			"weights": [0, 0, 0, 2, 0, 0, 0, 0],
			"bias": -1
		}
	}`
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	model, err := riskmodel.Load(path)
	require.NoError(t, err)
	return model
}

// TestModeration_UntrainedFallback tests the exact fail-safe verdict
// with no trained model.
func TestModeration_UntrainedFallback(t *testing.T) {
	for _, model := range []*riskmodel.Model{nil, {}} {
		svc := NewModeration(model, zerolog.Nop())

		assert.False(t, svc.Ready())
		verdict := svc.Moderate(context.Background(), "any text at all!!!")
		assert.Equal(t, domain.RiskAssessment{IsRisky: false, RiskScore: 0.0, Confidence: 0.5}, verdict)
	}
}

// TestModeration_TrainedVerdicts tests risky and safe classifications
// through a loaded model.
func TestModeration_TrainedVerdicts(t *testing.T) {
	svc := NewModeration(loadTestModel(t), zerolog.Nop())
	require.True(t, svc.Ready())

	risky := svc.Moderate(context.Background(), "I cannot take this anymore!!! Everything hurts!!!")
	assert.True(t, risky.IsRisky)
	assert.Greater(t, risky.RiskScore, 0.5)
	assert.Equal(t, risky.RiskScore, risky.Confidence)

	safe := svc.Moderate(context.Background(), "Today I went for a quiet walk by the river.")
	assert.False(t, safe.IsRisky)
	assert.Less(t, safe.RiskScore, 0.5)
	assert.Greater(t, safe.Confidence, 0.5)
}

// TestModeration_NormalizesInput tests that whitespace layout does not
// change the verdict.
func TestModeration_NormalizesInput(t *testing.T) {
	svc := NewModeration(loadTestModel(t), zerolog.Nop())

	a := svc.Moderate(context.Background(), "so   tired\n\nof  everything!!!")
	b := svc.Moderate(context.Background(), "so tired of everything!!!")
	assert.Equal(t, b, a)
}
