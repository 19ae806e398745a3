package riskmodel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// Scaler standardizes feature vectors to zero mean and unit variance,
// using statistics fitted on the training split.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Transform standardizes one feature vector. A zero standard deviation
// (constant feature) leaves the centered value undivided.
func (s Scaler) Transform(v []float64) []float64 {
	out := make([]float64, len(v))
	for i := range v {
		sd := s.Std[i]
		if sd == 0 {
			sd = 1
		}
		out[i] = (v[i] - s.Mean[i]) / sd
	}
	return out
}

// Classifier is a trained logistic regression over standardized
// features.
type Classifier struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Probability returns the calibrated probability of the risky class.
func (c Classifier) Probability(v []float64) float64 {
	return sigmoid(floats.Dot(c.Weights, v) + c.Bias)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// Model is a trained risk classifier: the fitted scaler and logistic
// classifier, the feature-name order they were fitted against, and the
// safe-label allow-list used to binarize the training labels. Immutable
// after training or loading.
type Model struct {
	FeatureNames []string   `json:"feature_names"`
	SafeLabels   []string   `json:"safe_labels"`
	Scaler       Scaler     `json:"scaler"`
	Classifier   Classifier `json:"classifier"`

	trained bool
}

// IsTrained reports whether the model carries fitted parameters.
func (m *Model) IsTrained() bool {
	return m != nil && m.trained
}

// Predict classifies a text.
//
// With no trained parameters it returns the all-safe fallback verdict
// {false, 0.0, 0.5}: availability of matching is favored over strict
// safety when the model is absent. This is a documented fallback, not a
// judgement about the text.
func (m *Model) Predict(text string) domain.RiskAssessment {
	if !m.IsTrained() {
		return domain.SafeAssessment()
	}

	v := m.Scaler.Transform(ExtractFeatures(text).Vector())
	p := m.Classifier.Probability(v)

	return domain.RiskAssessment{
		IsRisky:    p > 0.5,
		RiskScore:  p,
		Confidence: math.Max(p, 1-p),
	}
}

// Save writes the model bundle as JSON, atomically (tmp file + rename).
func (m *Model) Save(path string) error {
	if !m.IsTrained() {
		return fmt.Errorf("saving risk model: model is not trained")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding risk model: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing risk model: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing risk model: %w", err)
	}
	return nil
}

// Load reads a model bundle from disk and validates it against the
// running predictor.
//
// A bundle whose feature-name order differs from FeatureNames, or whose
// parameter lengths do not line up, is rejected with
// domain.ErrModelIncompatible: a misaligned model would silently
// mis-score every text, which is strictly worse than failing.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("risk model %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading risk model: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding risk model: %w", err)
	}

	if !slices.Equal(m.FeatureNames, FeatureNames) {
		return nil, fmt.Errorf(
			"feature order %v does not match predictor %v: %w",
			m.FeatureNames, FeatureNames, domain.ErrModelIncompatible,
		)
	}
	n := len(FeatureNames)
	if len(m.Classifier.Weights) != n || len(m.Scaler.Mean) != n || len(m.Scaler.Std) != n {
		return nil, fmt.Errorf(
			"parameter lengths do not match %d features: %w",
			n, domain.ErrModelIncompatible,
		)
	}

	m.trained = true
	return &m, nil
}
