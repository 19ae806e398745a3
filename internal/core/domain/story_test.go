package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStory_Fields tests Story structure fields
func TestStory_Fields(t *testing.T) {
	now := time.Now()
	parentID := "story-parent"
	threadID := "thread-1"

	story := Story{
		ID:        "story-123",
		Title:     "Getting through it",
		Text:      "I remember the first year after everything fell apart.",
		Tags:      []string{"loneliness", "recovery"},
		AuthorID:  "mentor-7",
		CreatedAt: now,
		ParentID:  &parentID,
		ThreadID:  &threadID,
	}

	assert.Equal(t, "story-123", story.ID)
	assert.Equal(t, "Getting through it", story.Title)
	assert.Equal(t, []string{"loneliness", "recovery"}, story.Tags)
	assert.Equal(t, "mentor-7", story.AuthorID)
	require.NotNil(t, story.ParentID)
	assert.Equal(t, "story-parent", *story.ParentID)
	require.NotNil(t, story.ThreadID)
	assert.Equal(t, "thread-1", *story.ThreadID)
	assert.Equal(t, now, story.CreatedAt)
}

// TestStory_EmbeddingText tests title concatenation for embedding
func TestStory_EmbeddingText(t *testing.T) {
	tests := []struct {
		name  string
		story Story
		want  string
	}{
		{
			name:  "title prepended to body",
			story: Story{Title: "Lonely years", Text: "Nobody called for months."},
			want:  "Lonely years Nobody called for months.",
		},
		{
			name:  "no title uses body alone",
			story: Story{Text: "Nobody called for months."},
			want:  "Nobody called for months.",
		},
		{
			name:  "whitespace title ignored",
			story: Story{Title: "   ", Text: "Nobody called for months."},
			want:  "Nobody called for months.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.story.EmbeddingText())
		})
	}
}

// TestStory_Indexable tests the minimum-length admission rule
func TestStory_Indexable(t *testing.T) {
	short := Story{Text: strings.Repeat("a", MinStoryLength-1)}
	exact := Story{Text: strings.Repeat("a", MinStoryLength)}
	long := Story{Text: strings.Repeat("a", MinStoryLength*3)}

	assert.False(t, short.Indexable())
	assert.True(t, exact.Indexable())
	assert.True(t, long.Indexable())
}

// TestStory_Indexable_CountsRunes ensures the threshold is measured in
// runes, not bytes
func TestStory_Indexable_CountsRunes(t *testing.T) {
	// 49 multi-byte runes: longer than 50 bytes but still too short.
	story := Story{Text: strings.Repeat("ä", MinStoryLength-1)}
	assert.False(t, story.Indexable())
}
