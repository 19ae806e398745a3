package riskmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractFeatures_KnownText tests feature values on a known input
func TestExtractFeatures_KnownText(t *testing.T) {
	f := ExtractFeatures("I feel lost. Nobody gets it! Why me?")

	assert.Equal(t, 8.0, f.WordCount)
	assert.Equal(t, 36.0, f.CharCount)
	assert.Equal(t, 1.0, f.ExclamationCount)
	assert.Equal(t, 1.0, f.QuestionCount)
	assert.Equal(t, 3.0, f.SentenceCount)
	assert.InDelta(t, 8.0/3.0, f.AvgSentenceLength, 1e-9)
	// Uppercase: I, N, W of 26 letters.
	assert.InDelta(t, 3.0/26.0, f.CapsRatio, 1e-9)
}

// TestExtractFeatures_Total tests the pure/total contract across inputs
func TestExtractFeatures_Total(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "whitespace only", text: "   \n\t  "},
		{name: "punctuation only", text: "!!!???..."},
		{name: "no punctuation", text: "just a plain run of words"},
		{name: "all caps", text: "I CANNOT DO THIS ANYMORE"},
		{name: "unicode", text: "Je me sens très seul. Personne ne comprend."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ExtractFeatures(tt.text)
			for i, v := range f.Vector() {
				assert.GreaterOrEqual(t, v, 0.0, "feature %s", FeatureNames[i])
			}
			assert.LessOrEqual(t, f.CapsRatio, 1.0)
		})
	}
}

// TestExtractFeatures_Empty tests that empty input yields the zero vector
func TestExtractFeatures_Empty(t *testing.T) {
	f := ExtractFeatures("")
	assert.Equal(t, Features{}, f)
}

// TestExtractFeatures_NoPunctuation counts one sentence for plain text
func TestExtractFeatures_NoPunctuation(t *testing.T) {
	f := ExtractFeatures("five words with no punctuation")
	assert.Equal(t, 1.0, f.SentenceCount)
	assert.Equal(t, 5.0, f.AvgSentenceLength)
}

// TestFeatures_VectorOrder keeps Vector aligned with FeatureNames
func TestFeatures_VectorOrder(t *testing.T) {
	f := Features{
		WordCount:         1,
		CharCount:         2,
		AvgWordLength:     3,
		ExclamationCount:  4,
		QuestionCount:     5,
		CapsRatio:         6,
		SentenceCount:     7,
		AvgSentenceLength: 8,
	}
	v := f.Vector()
	require.Len(t, v, len(FeatureNames))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, v)
}

// TestNormalize tests whitespace collapsing
func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("  a\n\nb\t c  "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "unchanged", Normalize("unchanged"))
}
