package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beenthere-labs/beenthere/internal/core/services"
)

var moderateJSON bool

var moderateCmd = &cobra.Command{
	Use:   "moderate [text]",
	Short: "Classify text with the content-risk model",
	Long: `Classify text with the trained content-risk model.

Without a trained model (see "beenthere train") every text is assessed
as safe with a neutral confidence.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runModerate,
}

func init() {
	moderateCmd.Flags().BoolVar(&moderateJSON, "json", false, "emit the assessment as JSON")
	rootCmd.AddCommand(moderateCmd)
}

func runModerate(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	moderation := services.NewModeration(loadRiskModel(), log)
	assessment := moderation.Moderate(cmd.Context(), text)

	out := cmd.OutOrStdout()
	if moderateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	}

	verdict := "safe"
	if assessment.IsRisky {
		verdict = "risky"
	}
	fmt.Fprintf(out, "verdict:    %s\n", verdict)
	fmt.Fprintf(out, "risk score: %.3f\n", assessment.RiskScore)
	fmt.Fprintf(out, "confidence: %.3f\n", assessment.Confidence)
	if !moderation.Ready() {
		fmt.Fprintln(out, "note: no trained model loaded, all text assesses as safe")
	}
	return nil
}
