// Package home is the landing screen: pick a game mode or quit.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kanadrill/internal/adaptive"
	"github.com/abhisek/kanadrill/internal/router"
	"github.com/abhisek/kanadrill/internal/screen"
	"github.com/abhisek/kanadrill/internal/ui/components"
	"github.com/abhisek/kanadrill/internal/ui/layout"
)

// weakestShown is how many heavy items the stats bar lists.
const weakestShown = 5

// StateSource exposes the selector's per-item state.
type StateSource interface {
	Params() adaptive.Params
	States() []adaptive.ItemState
}

// Options wires the home screen to the rest of the app.
type Options struct {
	Groups   []string
	Alphabet int
	States   StateSource

	// Game factories, called each time a mode is started.
	WordBuilder func() screen.Screen
	Recall      func() screen.Screen
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts    Options
	menu    components.Menu
	labels  []string
	weakest []adaptive.ItemState
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen.
func New(opts Options) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: factory()} }
		}
	}

	labels := []string{"BUILD WORDS", "RECALL", "QUIT"}
	items := []components.MenuItem{
		{Label: labels[0], Hint: "spell kana words from tiles", Action: push(opts.WordBuilder)},
		{Label: labels[1], Hint: "type the reading of one kana", Action: push(opts.Recall)},
		{Label: labels[2], Action: func() tea.Cmd { return tea.Quit }},
	}

	h := &HomeScreen{opts: opts, menu: components.NewMenu(items), labels: labels}
	h.refresh()
	return h
}

// Init refreshes the weakest-items panel; it runs again whenever a game
// screen is popped.
func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) refresh() {
	h.weakest = nil
	if h.opts.States == nil {
		return
	}
	baseline := h.opts.States.Params().DefaultWeight
	for _, st := range h.opts.States.States() {
		if len(h.weakest) == weakestShown {
			break
		}
		// Items at or below the starting weight are not struggling.
		if st.Seen && st.Weight > baseline {
			h.weakest = append(h.weakest, st)
		}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)
	compact := layout.IsCompactHeight(height + 6)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.opts.Alphabet, h.opts.Groups, h.weakest, cw),
		renderButtons(h.labels, h.menu.Selected, cw),
	}
	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
