package riskmodel

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FeatureNames lists the stylistic features in the order the model
// consumes them. The order is part of the persisted model contract: a
// saved model whose recorded order differs is rejected at load time.
var FeatureNames = []string{
	"word_count",
	"char_count",
	"avg_word_length",
	"exclamation_count",
	"question_count",
	"caps_ratio",
	"sentence_count",
	"avg_sentence_length",
}

// Features holds the eight stylistic features extracted from a text.
// All values are non-negative; CapsRatio is clamped to [0, 1].
type Features struct {
	WordCount         float64
	CharCount         float64
	AvgWordLength     float64
	ExclamationCount  float64
	QuestionCount     float64
	CapsRatio         float64
	SentenceCount     float64
	AvgSentenceLength float64
}

// Vector returns the features as a slice aligned with FeatureNames.
func (f Features) Vector() []float64 {
	return []float64{
		f.WordCount,
		f.CharCount,
		f.AvgWordLength,
		f.ExclamationCount,
		f.QuestionCount,
		f.CapsRatio,
		f.SentenceCount,
		f.AvgSentenceLength,
	}
}

var sentenceBreaks = strings.NewReplacer("!", ".", "?", ".")

// ExtractFeatures derives the stylistic feature vector from a text.
// It is pure and total: it never fails, and empty input yields the
// zero vector. Character counts are rune counts. Division guards use
// max(denominator, 1).
func ExtractFeatures(text string) Features {
	words := strings.Fields(text)
	wordCount := float64(len(words))
	charCount := float64(utf8.RuneCountInString(text))

	var letters, uppers float64
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	capsRatio := uppers / math.Max(letters, 1)
	capsRatio = math.Min(capsRatio, 1)

	// Heuristic sentence split on .!? - punctuation-free text counts
	// as a single run of words, not zero sentences.
	var sentenceCount float64
	for _, s := range strings.Split(sentenceBreaks.Replace(text), ".") {
		if strings.TrimSpace(s) != "" {
			sentenceCount++
		}
	}

	return Features{
		WordCount:         wordCount,
		CharCount:         charCount,
		AvgWordLength:     charCount / math.Max(wordCount, 1),
		ExclamationCount:  float64(strings.Count(text, "!")),
		QuestionCount:     float64(strings.Count(text, "?")),
		CapsRatio:         capsRatio,
		SentenceCount:     sentenceCount,
		AvgSentenceLength: wordCount / math.Max(sentenceCount, 1),
	}
}

// Normalize collapses runs of whitespace to single spaces and trims the
// ends. It is the only preprocessing applied before classification;
// feature extraction itself always operates on its input verbatim.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
