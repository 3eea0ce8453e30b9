package app

import (
	"fmt"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanadrill/internal/adaptive"
	"github.com/abhisek/kanadrill/internal/config"
	"github.com/abhisek/kanadrill/internal/drill"
	"github.com/abhisek/kanadrill/internal/kana"
	"github.com/abhisek/kanadrill/internal/router"
	"github.com/abhisek/kanadrill/internal/screen"
	"github.com/abhisek/kanadrill/internal/screens/home"
	"github.com/abhisek/kanadrill/internal/screens/recall"
	"github.com/abhisek/kanadrill/internal/screens/welcome"
	"github.com/abhisek/kanadrill/internal/screens/wordbuild"
	"github.com/abhisek/kanadrill/internal/ui/layout"
)

// Options holds dependencies for the app.
type Options struct {
	// Selector is shared by every game mode.
	Selector *adaptive.Selector
	Sink     drill.Sink
	Set      *kana.Set
	Drill    config.DrillConfig

	// SessionID tags recorded answers; generated when empty.
	SessionID string

	// Rand shuffles tiles; seeded from the clock when nil.
	Rand *rand.Rand

	// Splash shows the welcome animation before the home screen.
	Splash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// NewAppModel creates an AppModel showing the home screen.
func NewAppModel(opts Options) AppModel {
	if opts.SessionID == "" {
		opts.SessionID = drill.NewSessionID()
	}

	newHome := func() screen.Screen {
		return newHomeScreen(opts)
	}
	if opts.Splash {
		return AppModel{router: router.New(welcome.New(newHome))}
	}
	return AppModel{router: router.New(newHome())}
}

// newHomeScreen wires the game factories into the home menu.
func newHomeScreen(opts Options) screen.Screen {
	return home.New(home.Options{
		Groups:   opts.Drill.Groups,
		Alphabet: opts.Set.Len(),
		States:   opts.Selector,
		WordBuilder: func() screen.Screen {
			return wordbuild.New(&drill.WordGame{
				Picker:      opts.Selector,
				Sink:        opts.Sink,
				Set:         opts.Set,
				SessionID:   opts.SessionID,
				WordLength:  opts.Drill.WordLength,
				Distractors: opts.Drill.Distractors,
				Reverse:     opts.Drill.Reverse,
				Rand:        opts.Rand,
			})
		},
		Recall: func() screen.Screen {
			return recall.New(&drill.RecallGame{
				Picker:    opts.Selector,
				Sink:      opts.Sink,
				Set:       opts.Set,
				SessionID: opts.SessionID,
				Reverse:   opts.Drill.Reverse,
			})
		},
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if f, ok := m.router.Active().(screen.Finisher); ok {
				return m, f.Finish()
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer for the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	score := -1
	if s, ok := active.(screen.Scorer); ok {
		score = s.Score()
	}
	header := layout.RenderHeader(active.Title(), score, m.width)

	hints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
