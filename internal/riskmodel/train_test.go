package riskmodel

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticExamples builds a separable corpus: calm multi-sentence safe
// texts against short agitated all-caps risky texts.
func syntheticExamples(n int) []Example {
	var examples []Example
	for i := 0; i < n; i++ {
		examples = append(examples, Example{
			Label: "benign",
			Content: fmt.Sprintf(
				"Today was a quiet day number %d. I went for a walk and read for a while. Things felt manageable.",
				i,
			),
		})
		examples = append(examples, Example{
			Label:   "harmful",
			Content: fmt.Sprintf("I CANNOT TAKE THIS ANYMORE!!! NOBODY LISTENS!!! %d!!!", i),
		})
	}
	return examples
}

// TestTrain_SeparableData learns the obvious separation
func TestTrain_SeparableData(t *testing.T) {
	model, report, err := Train(syntheticExamples(40), TrainConfig{})
	require.NoError(t, err)
	require.True(t, report.Trained)
	assert.True(t, model.IsTrained())

	assert.Equal(t, 80, report.Examples)
	assert.Equal(t, 40, report.SafeCount)
	assert.Equal(t, 40, report.RiskyCount)
	assert.Equal(t, report.Examples, report.TrainSize+report.ValSize)
	assert.GreaterOrEqual(t, report.Accuracy, 0.8)

	calm := model.Predict("The week has been steady. I cooked dinner and called a friend. It helped a little.")
	agitated := model.Predict("WHY DOES THIS KEEP HAPPENING!!! I HATE ALL OF IT!!!")
	assert.Greater(t, agitated.RiskScore, calm.RiskScore)
}

// TestTrain_Deterministic gives identical parameters for the same seed
func TestTrain_Deterministic(t *testing.T) {
	examples := syntheticExamples(20)

	a, _, err := Train(examples, TrainConfig{Seed: 7})
	require.NoError(t, err)
	b, _, err := Train(examples, TrainConfig{Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, a.Classifier, b.Classifier)
	assert.Equal(t, a.Scaler, b.Scaler)
}

// TestTrain_SingleClass skips fitting instead of failing
func TestTrain_SingleClass(t *testing.T) {
	examples := []Example{
		{Content: "a fine day all around", Label: "benign"},
		{Content: "another fine day", Label: "normal"},
	}

	model, report, err := Train(examples, TrainConfig{})
	require.NoError(t, err)
	assert.False(t, report.Trained)
	assert.False(t, model.IsTrained())

	// Predictions fall back to the all-safe default.
	got := model.Predict("WHATEVER!!!")
	assert.False(t, got.IsRisky)
	assert.Equal(t, 0.0, got.RiskScore)
}

// TestTrain_NoExamples is an error
func TestTrain_NoExamples(t *testing.T) {
	_, _, err := Train(nil, TrainConfig{})
	assert.Error(t, err)
}

// TestTrain_CustomSafeLabels honors the allow-list
func TestTrain_CustomSafeLabels(t *testing.T) {
	examples := syntheticExamples(10)
	for i := range examples {
		if examples[i].Label == "benign" {
			examples[i].Label = "ok"
		}
	}

	_, report, err := Train(examples, TrainConfig{SafeLabels: []string{"ok"}})
	require.NoError(t, err)
	assert.Equal(t, 10, report.SafeCount)
	assert.Equal(t, 10, report.RiskyCount)
}

// TestReadExamples_JSONL parses line-delimited records
func TestReadExamples_JSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.jsonl")
	content := `{"content": "all good here", "label": "benign"}

{"content": "STOP IT!!!", "label": "harmful"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	examples, err := ReadExamples(path)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, "all good here", examples[0].Content)
	assert.Equal(t, "harmful", examples[1].Label)
}

// TestReadExamples_CSV parses header-addressed columns
func TestReadExamples_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	content := "label,content\nbenign,all good here\nharmful,STOP IT!!!\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	examples, err := ReadExamples(path)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, "all good here", examples[0].Content)
	assert.Equal(t, "harmful", examples[1].Label)
}

// TestReadExamples_UnsupportedFormat rejects unknown extensions
func TestReadExamples_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := ReadExamples(path)
	assert.Error(t, err)
}
