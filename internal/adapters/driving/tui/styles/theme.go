// Package styles provides the colour theme and styling for the chat TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the chat TUI.
type Theme struct {
	// Primary is the main accent colour, used for the user's side of
	// the conversation.
	Primary lipgloss.Color

	// Secondary is the accent colour for the listener's side.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Suggestion highlights matched peer stories.
	Suggestion lipgloss.Color

	// Crisis is the colour for crisis support notices.
	Crisis lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme. The palette is kept
// deliberately soft; this is a support surface, not a dashboard.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#89B4FA"), // Blue
		Secondary:  lipgloss.Color("#CBA6F7"), // Lavender
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Suggestion: lipgloss.Color("#A6E3A1"), // Green
		Crisis:     lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles for the chat TUI.
type Styles struct {
	theme *Theme

	// Title style for the header line.
	Title lipgloss.Style

	// UserLabel prefixes the user's turns.
	UserLabel lipgloss.Style

	// ListenerLabel prefixes the assistant's turns.
	ListenerLabel lipgloss.Style

	// Normal style for turn text.
	Normal lipgloss.Style

	// Muted style for hints and timestamps.
	Muted lipgloss.Style

	// SuggestionTitle style for matched story headings.
	SuggestionTitle lipgloss.Style

	// SuggestionBody style for matched story excerpts.
	SuggestionBody lipgloss.Style

	// Crisis style for the crisis support notice.
	Crisis lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// InputField style for the message input area.
	InputField lipgloss.Style

	// Help style for the key hint line.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		ListenerLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		SuggestionTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Suggestion),

		SuggestionBody: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),

		Crisis: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Crisis),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
