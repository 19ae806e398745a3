package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beenthere-labs/beenthere/internal/adapters/driving/tui/styles"
	"github.com/beenthere-labs/beenthere/internal/core/domain"
)

// fakeChat is a scripted chat service for driving the app in tests.
type fakeChat struct {
	reply domain.ChatReply
	err   error
	sent  []string
}

func (f *fakeChat) Start(context.Context, string) error { return nil }

func (f *fakeChat) Send(_ context.Context, _, message string) (domain.ChatReply, error) {
	f.sent = append(f.sent, message)
	return f.reply, f.err
}

func (f *fakeChat) Greeting() string { return "hello, I'm listening" }

func newTestApp(chat *fakeChat) *App {
	return NewApp(context.Background(), chat, styles.DefaultStyles())
}

// TestApp_View_ShowsGreeting tests that the greeting renders before any
// user input.
func TestApp_View_ShowsGreeting(t *testing.T) {
	app := newTestApp(&fakeChat{})

	view := app.View()

	assert.Contains(t, view, "been there")
	assert.Contains(t, view, "hello, I'm listening")
	assert.Contains(t, view, "enter to send")
}

// TestApp_Submit_SendsMessage tests that pressing enter dispatches the
// typed message to the chat service.
func TestApp_Submit_SendsMessage(t *testing.T) {
	chat := &fakeChat{reply: domain.ChatReply{SessionID: "s-1", Response: "that sounds hard"}}
	app := newTestApp(chat)
	app.input.SetValue("I lost my job")

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	app = model.(*App)
	assert.True(t, app.waiting)
	assert.Empty(t, app.input.Value())
	assert.Contains(t, app.View(), "I lost my job")

	// Drain the batch to run the send closure.
	drain(t, app, cmd)
	require.Equal(t, []string{"I lost my job"}, chat.sent)
}

// TestApp_Submit_IgnoresBlankInput tests that blank input does not
// produce a send command.
func TestApp_Submit_IgnoresBlankInput(t *testing.T) {
	app := newTestApp(&fakeChat{})
	app.input.SetValue("   ")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

// TestApp_Update_ReplyMsg tests that a completed exchange lands in the
// transcript and records the session ID.
func TestApp_Update_ReplyMsg(t *testing.T) {
	app := newTestApp(&fakeChat{})
	app.waiting = true

	model, _ := app.Update(replyMsg{reply: domain.ChatReply{
		SessionID: "s-42",
		Response:  "thank you for sharing that",
	}})

	app = model.(*App)
	assert.False(t, app.waiting)
	assert.Equal(t, "s-42", app.sessionID)
	assert.Contains(t, app.View(), "thank you for sharing that")
}

// TestApp_Update_ReplyWithSuggestions tests that suggested stories
// render with title and excerpt.
func TestApp_Update_ReplyWithSuggestions(t *testing.T) {
	app := newTestApp(&fakeChat{})

	model, _ := app.Update(replyMsg{reply: domain.ChatReply{
		SessionID: "s-1",
		Response:  "others have felt this too",
		SuggestedStories: []domain.MatchResult{
			{
				Story:           domain.Story{ID: "st-1", Title: "Starting over at forty", Text: "I was laid off after fifteen years."},
				SimilarityScore: 0.82,
			},
		},
		ReadyForStories: true,
	}})

	view := model.(*App).View()
	assert.Contains(t, view, "others have been there")
	assert.Contains(t, view, "Starting over at forty")
	assert.Contains(t, view, "laid off after fifteen years")
}

// TestApp_Update_ErrMsg tests that a failed exchange surfaces an error
// line and clears the waiting state.
func TestApp_Update_ErrMsg(t *testing.T) {
	app := newTestApp(&fakeChat{})
	app.waiting = true

	model, _ := app.Update(errMsg{err: domain.ErrChatServiceUnavailable})

	app = model.(*App)
	assert.False(t, app.waiting)
	assert.Contains(t, app.View(), "something went wrong")
}

// TestApp_Update_Quit tests that escape quits the program.
func TestApp_Update_Quit(t *testing.T) {
	app := newTestApp(&fakeChat{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

// TestExcerpt tests word-boundary truncation of story previews.
func TestExcerpt(t *testing.T) {
	short := "a short story"
	assert.Equal(t, short, excerpt(short))

	long := strings.Repeat("word ", 100)
	got := excerpt(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), excerptRunes+3)
}

// drain executes a command tree, feeding messages back into the app.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, c := range m {
			drain(t, app, c)
		}
	case nil:
	default:
		model, next := app.Update(m)
		*app = *model.(*App)
		drain(t, app, next)
	}
}
