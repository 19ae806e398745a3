package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/services"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and inspect the story matching index",
}

var indexInput string

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Embed the story corpus and persist the matching index",
	RunE:  runIndexBuild,
}

var indexInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the persisted index",
	RunE:  runIndexInfo,
}

func init() {
	indexBuildCmd.Flags().StringVar(&indexInput, "input", "", "build from a JSONL story file instead of the corpus store")
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexInfoCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var stories []domain.Story
	if indexInput != "" {
		var err error
		if stories, _, err = readStoryFile(indexInput); err != nil {
			return err
		}
	} else {
		store, err := newStoryStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if stories, err = store.ListStories(ctx); err != nil {
			return err
		}
		if len(stories) == 0 {
			return fmt.Errorf("corpus is empty; run 'beenthere import' first")
		}
	}

	embedder, err := newEmbedder()
	if err != nil {
		return err
	}

	ix, err := services.BuildIndex(ctx, stories, embedder, log)
	if err != nil {
		return err
	}

	snapStore, err := newSnapshotStore()
	if err != nil {
		return err
	}
	if err := snapStore.Save(ctx, ix.Snapshot()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "indexed %d of %d stories (model %s, %d dimensions)\n",
		ix.Len(), len(stories), ix.Model(), ix.Dimension())
	fmt.Fprintf(cmd.OutOrStdout(), "snapshot written to %s\n", snapStore.Path())
	return nil
}

func runIndexInfo(cmd *cobra.Command, _ []string) error {
	snapStore, err := newSnapshotStore()
	if err != nil {
		return err
	}

	snap, err := snapStore.Load(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "no index snapshot found; run 'beenthere index build'")
			return nil
		}
		return err
	}

	ix, err := services.IndexFromSnapshot(snap)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "path:       %s\n", snapStore.Path())
	fmt.Fprintf(out, "stories:    %d\n", ix.Len())
	fmt.Fprintf(out, "model:      %s\n", ix.Model())
	fmt.Fprintf(out, "dimensions: %d\n", ix.Dimension())
	return nil
}
