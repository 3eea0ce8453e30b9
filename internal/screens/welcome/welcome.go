// Package welcome is the splash shown at startup: the app's kana spelled
// out one character per tick, then the home screen on any key.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanadrill/internal/router"
	"github.com/abhisek/kanadrill/internal/screen"
	"github.com/abhisek/kanadrill/internal/ui/theme"
)

const tickInterval = 150 * time.Millisecond

// banner is revealed one character per tick.
var banner = []string{"か", "な", "ド", "リ", "ル"}

type tickMsg time.Time

// WelcomeScreen shows the splash before replacing itself with home.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	shown        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands over to the screen built by
// homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

// done reports whether the whole banner is visible.
func (w *WelcomeScreen) done() bool {
	return w.shown >= len(banner)
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done() {
			return w, nil
		}
		w.shown++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips whatever is left of the animation.
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
}

func (w *WelcomeScreen) View(width, height int) string {
	letters := make([]string, len(banner))
	for i, k := range banner {
		if i < w.shown {
			letters[i] = k
		} else {
			letters[i] = "　" // full-width space keeps the layout still
		}
	}

	sections := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(strings.Join(letters, " ")),
	}
	if w.done() {
		sections = append(sections,
			"",
			theme.Body.Bold(true).Render("hiragana & katakana, adaptively"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
