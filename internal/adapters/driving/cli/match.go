package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/services"
)

var (
	matchTopK          int
	matchMinSimilarity float64
	matchJSON          bool
)

var matchCmd = &cobra.Command{
	Use:   "match [text]",
	Short: "Find stories from people who have been through something similar",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().IntVarP(&matchTopK, "top-k", "k", domain.DefaultTopK, "maximum number of matches")
	matchCmd.Flags().Float64Var(&matchMinSimilarity, "min-similarity", domain.DefaultMinSimilarity, "minimum similarity score (0..1)")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "emit results as JSON")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	text := strings.Join(args, " ")

	// Flags win over the config file, which wins over built-in defaults.
	if !cmd.Flags().Changed("top-k") && cfg.Matching.TopK > 0 {
		matchTopK = cfg.Matching.TopK
	}
	if !cmd.Flags().Changed("min-similarity") && cfg.Matching.MinSimilarity > 0 {
		matchMinSimilarity = cfg.Matching.MinSimilarity
	}

	embedder, err := newEmbedder()
	if err != nil {
		return err
	}
	matcher, err := newMatcher(ctx, embedder)
	if err != nil {
		return err
	}

	candidates, err := matcher.Match(ctx, text, domain.MatchOptions{
		TopK:          matchTopK,
		MinSimilarity: matchMinSimilarity,
	})
	if err != nil {
		return err
	}

	gate := services.NewGate(services.NewModeration(loadRiskModel(), log), log)
	result := gate.Gate(ctx, text, candidates)

	if matchJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out := cmd.OutOrStdout()
	if result.Warning == domain.CrisisWarning {
		fmt.Fprintln(out, "It sounds like you're going through something really hard right now.")
		fmt.Fprintln(out, "If you're in crisis, please reach out to a local helpline or someone you trust.")
		fmt.Fprintln(out)
	}

	if len(result.Matches) == 0 {
		fmt.Fprintln(out, "No matching stories found.")
		return nil
	}

	for i, m := range result.Matches {
		title := m.Title
		if title == "" {
			title = m.ID
		}
		fmt.Fprintf(out, "%d. %s (similarity %.2f)\n", i+1, title, m.SimilarityScore)
		fmt.Fprintf(out, "   %s\n", summarise(m.Text, 200))
		if len(m.Tags) > 0 {
			fmt.Fprintf(out, "   tags: %s\n", strings.Join(m.Tags, ", "))
		}
		fmt.Fprintln(out)
	}
	return nil
}

// summarise truncates text to at most n runes on a word boundary.
func summarise(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	cut := string(runes[:n])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
