// Package tui implements the terminal chat surface: a single-screen
// conversation with the intake listener, with matched peer stories
// rendered inline once the session is ready for them.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/beenthere-labs/beenthere/internal/adapters/driving/tui/styles"
	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driving"
)

const (
	inputCharLimit = domain.MaxChatMessageLength
	excerptRunes   = 220
)

// replyMsg carries a completed chat exchange back into the update loop.
type replyMsg struct {
	reply domain.ChatReply
}

// errMsg carries a failed chat exchange.
type errMsg struct {
	err error
}

// App is the chat TUI following the Elm architecture. It implements
// tea.Model for use with Bubbletea.
type App struct {
	ctx    context.Context
	chat   driving.ChatService
	styles *styles.Styles

	sessionID  string
	transcript []string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	waiting bool
	sized   bool
	width   int
	height  int
}

// NewApp creates the chat application.
func NewApp(ctx context.Context, chat driving.ChatService, s *styles.Styles) *App {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Tell me what's on your mind..."
	ti.CharLimit = inputCharLimit
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Muted

	app := &App{
		ctx:     ctx,
		chat:    chat,
		styles:  s,
		input:   ti,
		spinner: sp,
	}
	app.appendListener(chat.Greeting())
	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyEnter:
			return a, a.submit()
		}

	case replyMsg:
		a.waiting = false
		a.sessionID = msg.reply.SessionID
		a.appendListener(msg.reply.Response)
		a.appendSuggestions(msg.reply.SuggestedStories)
		a.refreshViewport()
		return a, nil

	case errMsg:
		a.waiting = false
		a.transcript = append(a.transcript,
			a.styles.Error.Render(fmt.Sprintf("something went wrong: %v", msg.err)))
		a.refreshViewport()
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("been there"))
	b.WriteString("\n\n")

	if a.sized {
		b.WriteString(a.viewport.View())
	} else {
		b.WriteString(strings.Join(a.transcript, "\n"))
	}
	b.WriteString("\n")

	if a.waiting {
		b.WriteString(a.spinner.View())
		b.WriteString(a.styles.Muted.Render("listening..."))
		b.WriteString("\n")
	}

	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("enter to send, esc to quit"))
	return b.String()
}

// submit sends the current input as the next user turn.
func (a *App) submit() tea.Cmd {
	text := strings.TrimSpace(a.input.Value())
	if text == "" || a.waiting {
		return nil
	}

	a.input.SetValue("")
	a.waiting = true
	a.transcript = append(a.transcript, "",
		a.styles.UserLabel.Render("you: ")+a.styles.Normal.Render(text))
	a.refreshViewport()

	ctx, chat, sessionID := a.ctx, a.chat, a.sessionID
	send := func() tea.Msg {
		reply, err := chat.Send(ctx, sessionID, text)
		if err != nil {
			return errMsg{err: err}
		}
		return replyMsg{reply: reply}
	}
	return tea.Batch(send, a.spinner.Tick)
}

func (a *App) appendListener(text string) {
	a.transcript = append(a.transcript, "",
		a.styles.ListenerLabel.Render("listener: ")+a.styles.Normal.Render(text))
}

// appendSuggestions renders gated peer stories into the transcript.
// A nil slice means the session is not ready yet; an empty one means
// nothing cleared the similarity floor, and neither prints anything.
func (a *App) appendSuggestions(stories []domain.MatchResult) {
	if len(stories) == 0 {
		return
	}

	a.transcript = append(a.transcript, "",
		a.styles.SuggestionTitle.Render("others have been there:"))
	for _, story := range stories {
		title := story.Title
		if title == "" {
			title = "a peer story"
		}
		a.transcript = append(a.transcript,
			a.styles.SuggestionTitle.Render(fmt.Sprintf("  * %s", title)),
			a.styles.SuggestionBody.Render(excerpt(story.Text)))
	}
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	// Header, spinner line, input box and help line take the rest.
	viewportHeight := height - 8
	if viewportHeight < 3 {
		viewportHeight = 3
	}
	if !a.sized {
		a.viewport = viewport.New(width, viewportHeight)
		a.sized = true
	} else {
		a.viewport.Width = width
		a.viewport.Height = viewportHeight
	}
	a.input.Width = width - 6
	a.refreshViewport()
}

func (a *App) refreshViewport() {
	if !a.sized {
		return
	}
	a.viewport.SetContent(strings.Join(a.transcript, "\n"))
	a.viewport.GotoBottom()
}

// excerpt truncates story text to a short preview on a word boundary.
func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= excerptRunes {
		return text
	}
	cut := string(runes[:excerptRunes])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// Run starts the chat TUI and blocks until the user quits.
func Run(ctx context.Context, chat driving.ChatService) error {
	app := NewApp(ctx, chat, styles.DefaultStyles())
	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
