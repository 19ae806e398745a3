package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/beenthere-labs/beenthere/internal/riskmodel"
)

var trainOutput string

var trainCmd = &cobra.Command{
	Use:   "train [dataset]",
	Short: "Train the content-risk model from labeled examples",
	Long: `Train the content-risk classifier on a labeled dataset.

The dataset is JSONL ({"content": ..., "label": ...} per line) or CSV
with content,label columns. Labels listed under [risk].safe_labels in
the config count as safe; everything else counts as risky. The trained
model is written where "beenthere serve" and "beenthere moderate" load
it from.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVarP(&trainOutput, "output", "o", "", "model output path (default: the configured model path)")
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	examples, err := riskmodel.ReadExamples(args[0])
	if err != nil {
		return err
	}

	model, report, err := riskmodel.Train(examples, riskmodel.TrainConfig{
		SafeLabels: cfg.Risk.SafeLabels,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "examples:   %d (%d safe, %d risky)\n", report.Examples, report.SafeCount, report.RiskyCount)

	if !report.Trained {
		fmt.Fprintln(out, "dataset holds a single class; model left untrained")
		return nil
	}

	fmt.Fprintf(out, "split:      %d train / %d validation\n", report.TrainSize, report.ValSize)
	fmt.Fprintf(out, "accuracy:   %.3f\n", report.Accuracy)

	classes := make([]string, 0, len(report.Classes))
	for name := range report.Classes {
		classes = append(classes, name)
	}
	sort.Strings(classes)
	for _, name := range classes {
		c := report.Classes[name]
		fmt.Fprintf(out, "%-8s precision %.3f  recall %.3f  f1 %.3f  (n=%d)\n",
			name, c.Precision, c.Recall, c.F1, c.Support)
	}

	path := trainOutput
	if path == "" {
		if path, err = cfg.RiskModelPath(); err != nil {
			return err
		}
	}
	if err := model.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "model saved to %s\n", path)
	return nil
}
