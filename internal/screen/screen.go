// Package screen defines the contract between the router and the views it
// stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanadrill/internal/ui/layout"
)

// Screen is one full-page view of the app.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Scorer is implemented by game screens; the header shows the score.
type Scorer interface {
	Score() int
}

// Finisher is implemented by screens that wrap up on Esc instead of being
// popped outright.
type Finisher interface {
	Finish() tea.Cmd
}
