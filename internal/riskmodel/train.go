package riskmodel

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultSafeLabels is the default allow-list of label names treated as
// safe; every other label is risky.
var DefaultSafeLabels = []string{"benign", "recovery_support", "normal"}

// Example is one labeled training record.
type Example struct {
	Content string `json:"content"`
	Label   string `json:"label"`
}

// TrainConfig tunes the offline training run. Zero values select the
// defaults.
type TrainConfig struct {
	// SafeLabels is the allow-list of safe label names.
	SafeLabels []string

	// ValidationSplit is the held-out fraction (default 0.2).
	ValidationSplit float64

	// LearningRate for gradient descent (default 0.1).
	LearningRate float64

	// Iterations of full-batch gradient descent (default 1000).
	Iterations int

	// Seed makes the shuffle and split reproducible (default 42).
	Seed int64
}

func (c TrainConfig) withDefaults() TrainConfig {
	if c.SafeLabels == nil {
		c.SafeLabels = DefaultSafeLabels
	}
	if c.ValidationSplit == 0 {
		c.ValidationSplit = 0.2
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.1
	}
	if c.Iterations == 0 {
		c.Iterations = 1000
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	return c
}

// ClassReport holds validation metrics for one class.
type ClassReport struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report summarizes a training run.
type Report struct {
	Examples   int
	SafeCount  int
	RiskyCount int
	TrainSize  int
	ValSize    int
	Accuracy   float64
	Classes    map[string]ClassReport // keyed "safe", "risky"

	// Trained is false when the labeled data held fewer than two
	// distinct classes; the model is left untrained (all-safe default)
	// instead of failing.
	Trained bool
}

// Train fits a standardizing scaler and a class-weight-balanced
// logistic classifier on labeled examples, holding out a stratified
// validation split. With fewer than two classes present it skips
// fitting entirely and reports Trained=false.
func Train(examples []Example, cfg TrainConfig) (*Model, *Report, error) {
	cfg = cfg.withDefaults()

	if len(examples) == 0 {
		return nil, nil, fmt.Errorf("training risk model: no examples")
	}

	// Binarize labels via the safe allow-list.
	features := make([][]float64, len(examples))
	labels := make([]float64, len(examples))
	var safeIdx, riskyIdx []int
	for i, ex := range examples {
		features[i] = ExtractFeatures(ex.Content).Vector()
		if slices.Contains(cfg.SafeLabels, ex.Label) {
			safeIdx = append(safeIdx, i)
		} else {
			labels[i] = 1
			riskyIdx = append(riskyIdx, i)
		}
	}

	report := &Report{
		Examples:   len(examples),
		SafeCount:  len(safeIdx),
		RiskyCount: len(riskyIdx),
		Classes:    make(map[string]ClassReport),
	}

	if len(safeIdx) == 0 || len(riskyIdx) == 0 {
		// Single-class data: nothing to separate. Leave the model
		// untrained so predictions fall back to all-safe.
		return &Model{FeatureNames: FeatureNames, SafeLabels: cfg.SafeLabels}, report, nil
	}

	// Stratified split: hold out the same fraction of each class.
	rng := rand.New(rand.NewSource(cfg.Seed))
	trainIdx, valIdx := stratifiedSplit(rng, safeIdx, riskyIdx, cfg.ValidationSplit)
	report.TrainSize = len(trainIdx)
	report.ValSize = len(valIdx)

	// Fit the scaler on the training split only.
	scaler := fitScaler(features, trainIdx)
	scaled := make([][]float64, len(features))
	for _, i := range append(append([]int{}, trainIdx...), valIdx...) {
		scaled[i] = scaler.Transform(features[i])
	}

	clf := fitLogistic(scaled, labels, trainIdx, cfg)

	model := &Model{
		FeatureNames: FeatureNames,
		SafeLabels:   cfg.SafeLabels,
		Scaler:       scaler,
		Classifier:   clf,
		trained:      true,
	}

	evaluate(report, model.Classifier, scaled, labels, valIdx)
	report.Trained = true
	return model, report, nil
}

// stratifiedSplit shuffles each class independently and holds out the
// tail fraction, keeping at least one example of each class on both
// sides when the class has two or more members.
func stratifiedSplit(rng *rand.Rand, safeIdx, riskyIdx []int, frac float64) (train, val []int) {
	for _, class := range [][]int{safeIdx, riskyIdx} {
		idx := append([]int{}, class...)
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		hold := int(float64(len(idx)) * frac)
		if hold == 0 && len(idx) > 1 {
			hold = 1
		}
		if hold >= len(idx) {
			hold = len(idx) - 1
		}
		val = append(val, idx[len(idx)-hold:]...)
		train = append(train, idx[:len(idx)-hold]...)
	}
	return train, val
}

func fitScaler(features [][]float64, trainIdx []int) Scaler {
	n := len(FeatureNames)
	mean := make([]float64, n)
	std := make([]float64, n)
	col := make([]float64, len(trainIdx))

	for j := 0; j < n; j++ {
		for k, i := range trainIdx {
			col[k] = features[i][j]
		}
		mean[j] = stat.Mean(col, nil)
		std[j] = stat.PopStdDev(col, nil)
	}
	return Scaler{Mean: mean, Std: std}
}

// fitLogistic runs full-batch gradient descent on the weighted logistic
// loss. Class weights n/(2*n_c) counter label imbalance, mirroring
// balanced class weighting in the usual linear-model toolkits.
func fitLogistic(scaled [][]float64, labels []float64, trainIdx []int, cfg TrainConfig) Classifier {
	n := len(FeatureNames)
	weights := make([]float64, n)
	bias := 0.0

	var nSafe, nRisky float64
	for _, i := range trainIdx {
		if labels[i] == 1 {
			nRisky++
		} else {
			nSafe++
		}
	}
	total := nSafe + nRisky
	wSafe := total / (2 * nSafe)
	wRisky := total / (2 * nRisky)

	grad := make([]float64, n)
	for iter := 0; iter < cfg.Iterations; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0

		for _, i := range trainIdx {
			p := sigmoid(floats.Dot(weights, scaled[i]) + bias)
			w := wSafe
			if labels[i] == 1 {
				w = wRisky
			}
			g := w * (p - labels[i])
			floats.AddScaled(grad, g, scaled[i])
			gradBias += g
		}

		step := cfg.LearningRate / total
		floats.AddScaled(weights, -step, grad)
		bias -= step * gradBias
	}

	return Classifier{Weights: weights, Bias: bias}
}

func evaluate(report *Report, clf Classifier, scaled [][]float64, labels []float64, valIdx []int) {
	// Confusion counts: [actual][predicted], 0 = safe, 1 = risky.
	var counts [2][2]int
	correct := 0
	for _, i := range valIdx {
		pred := 0
		if clf.Probability(scaled[i]) > 0.5 {
			pred = 1
		}
		actual := int(labels[i])
		counts[actual][pred]++
		if pred == actual {
			correct++
		}
	}
	if len(valIdx) > 0 {
		report.Accuracy = float64(correct) / float64(len(valIdx))
	}

	names := [2]string{"safe", "risky"}
	for c := 0; c < 2; c++ {
		tp := counts[c][c]
		fp := counts[1-c][c]
		fn := counts[c][1-c]

		var precision, recall, f1 float64
		if tp+fp > 0 {
			precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			recall = float64(tp) / float64(tp+fn)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		report.Classes[names[c]] = ClassReport{
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   counts[c][0] + counts[c][1],
		}
	}
}

// ReadExamples loads labeled examples from a JSONL or CSV file, chosen
// by extension. CSV files need a header row with "content" and "label"
// columns.
func ReadExamples(path string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening training data: %w", err)
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path, ".jsonl"):
		return readJSONL(f)
	case strings.HasSuffix(path, ".csv"):
		return readCSV(f)
	default:
		return nil, fmt.Errorf("unsupported training data format: %s", path)
	}
}

func readJSONL(r io.Reader) ([]Example, error) {
	var examples []Example
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var ex Example
		if err := json.Unmarshal([]byte(text), &ex); err != nil {
			return nil, fmt.Errorf("parsing training data line %d: %w", line, err)
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading training data: %w", err)
	}
	return examples, nil
}

func readCSV(r io.Reader) ([]Example, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading training data header: %w", err)
	}

	contentCol, labelCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "content":
			contentCol = i
		case "label":
			labelCol = i
		}
	}
	if contentCol < 0 || labelCol < 0 {
		return nil, fmt.Errorf("training data needs content and label columns, got %v", header)
	}

	var examples []Example
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading training data: %w", err)
		}
		examples = append(examples, Example{
			Content: record[contentCol],
			Label:   record[labelCol],
		})
	}
	return examples, nil
}
