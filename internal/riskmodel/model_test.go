package riskmodel

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

func trainedModel(t *testing.T) *Model {
	t.Helper()
	return &Model{
		FeatureNames: FeatureNames,
		SafeLabels:   DefaultSafeLabels,
		Scaler: Scaler{
			Mean: make([]float64, len(FeatureNames)),
			Std:  []float64{1, 1, 1, 1, 1, 1, 1, 1},
		},
		Classifier: Classifier{
			// Heavy positive weight on exclamation count.
			Weights: []float64{0, 0, 0, 2, 0, 0, 0, 0},
			Bias:    -1,
		},
		trained: true,
	}
}

// TestModel_Predict_Untrained returns the exact fail-safe verdict
func TestModel_Predict_Untrained(t *testing.T) {
	m := &Model{}
	got := m.Predict("anything")
	assert.Equal(t, domain.RiskAssessment{IsRisky: false, RiskScore: 0.0, Confidence: 0.5}, got)

	var nilModel *Model
	assert.Equal(t, domain.SafeAssessment(), nilModel.Predict("anything"))
}

// TestModel_Predict_Trained tests score, verdict and confidence shape
func TestModel_Predict_Trained(t *testing.T) {
	m := trainedModel(t)

	calm := m.Predict("a calm sentence with no punctuation at all")
	agitated := m.Predict("no!! stop!! please!!")

	assert.False(t, calm.IsRisky)
	assert.True(t, agitated.IsRisky)
	assert.Greater(t, agitated.RiskScore, calm.RiskScore)

	for _, a := range []domain.RiskAssessment{calm, agitated} {
		assert.GreaterOrEqual(t, a.Confidence, 0.5)
		assert.LessOrEqual(t, a.Confidence, 1.0)
		assert.Equal(t, a.IsRisky, a.RiskScore > 0.5)
	}
}

// TestModel_SaveLoad_RoundTrip preserves predictions across persistence
func TestModel_SaveLoad_RoundTrip(t *testing.T) {
	m := trainedModel(t)
	path := filepath.Join(t.TempDir(), "models", "risk.json")

	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.IsTrained())

	for _, text := range []string{"", "hello", "no!! stop!! please!!"} {
		assert.Equal(t, m.Predict(text), loaded.Predict(text))
	}
}

// TestModel_Save_Untrained rejects persisting an unfitted model
func TestModel_Save_Untrained(t *testing.T) {
	m := &Model{}
	err := m.Save(filepath.Join(t.TempDir(), "risk.json"))
	assert.Error(t, err)
}

// TestLoad_MissingFile maps to ErrNotFound
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestLoad_FeatureOrderMismatch rejects misaligned models
func TestLoad_FeatureOrderMismatch(t *testing.T) {
	m := trainedModel(t)
	path := filepath.Join(t.TempDir(), "risk.json")
	require.NoError(t, m.Save(path))

	// Swap two feature names in the persisted bundle.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	names := raw["feature_names"].([]any)
	names[0], names[1] = names[1], names[0]
	data, err = json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = Load(path)
	assert.ErrorIs(t, err, domain.ErrModelIncompatible)
}

// TestLoad_ParameterLengthMismatch rejects truncated parameters
func TestLoad_ParameterLengthMismatch(t *testing.T) {
	m := trainedModel(t)
	m.Classifier.Weights = m.Classifier.Weights[:4]
	m.trained = true
	path := filepath.Join(t.TempDir(), "risk.json")
	require.NoError(t, m.Save(path))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrModelIncompatible)
}
