package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// storyRecord is a single line of a story import file.
type storyRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	ParentID  *string   `json:"parent_id"`
	ThreadID  *string   `json:"thread_id"`
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import stories into the local corpus",
	Long: `Import mentor stories from a JSONL file into the local corpus.

Each line is one story object with at least a "text" field; missing IDs
are generated. Re-importing a story with the same ID replaces it. Run
"beenthere index build" afterwards to make new stories matchable.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	stories, rejected, err := readStoryFile(args[0])
	if err != nil {
		return err
	}

	store, err := newStoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveStories(cmd.Context(), stories); err != nil {
		return err
	}

	total, err := store.CountStories(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "imported %d stories (corpus now holds %d)\n", len(stories), total)
	if rejected > 0 {
		fmt.Fprintf(out, "rejected %d records without text\n", rejected)
	}
	return nil
}

// readStoryFile parses a JSONL story file. Records without text are
// skipped and counted; a malformed line fails the whole file since it
// usually means the input is not JSONL at all.
func readStoryFile(path string) ([]domain.Story, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening story file: %w", err)
	}
	defer f.Close()

	var stories []domain.Story
	rejected := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var rec storyRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}
		if strings.TrimSpace(rec.Text) == "" {
			rejected++
			continue
		}
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		stories = append(stories, domain.Story{
			ID:        rec.ID,
			Title:     rec.Title,
			Text:      rec.Text,
			Tags:      rec.Tags,
			AuthorID:  rec.AuthorID,
			CreatedAt: rec.CreatedAt,
			ParentID:  rec.ParentID,
			ThreadID:  rec.ThreadID,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading story file: %w", err)
	}
	if len(stories) == 0 {
		return nil, rejected, fmt.Errorf("no stories found in %s", path)
	}
	return stories, rejected, nil
}
