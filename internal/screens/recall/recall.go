// Package recall is the single-item game: one kana is shown and its reading
// typed in, or the other way round in reverse mode.
package recall

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanadrill/internal/drill"
	"github.com/abhisek/kanadrill/internal/router"
	"github.com/abhisek/kanadrill/internal/screen"
	"github.com/abhisek/kanadrill/internal/screens/summary"
	"github.com/abhisek/kanadrill/internal/ui/components"
	"github.com/abhisek/kanadrill/internal/ui/layout"
	"github.com/abhisek/kanadrill/internal/ui/theme"
)

const inputLimit = 8

// RecallScreen runs a drill.RecallGame.
type RecallScreen struct {
	game   *drill.RecallGame
	prompt string
	input  components.TextInput
	result *drill.Result
	tally  drill.Tally
	err    error
	warn   error
}

var _ screen.Screen = (*RecallScreen)(nil)
var _ screen.KeyHintProvider = (*RecallScreen)(nil)
var _ screen.Finisher = (*RecallScreen)(nil)

// New creates the screen; the first prompt is picked on Init.
func New(game *drill.RecallGame) *RecallScreen {
	placeholder := "reading"
	if game.Reverse {
		placeholder = "kana"
	}
	return &RecallScreen{game: game, input: components.NewTextInput(placeholder, inputLimit)}
}

func (s *RecallScreen) Init() tea.Cmd {
	if s.prompt == "" && s.err == nil {
		s.next()
	}
	return s.input.Init()
}

func (s *RecallScreen) next() {
	p, err := s.game.Next()
	if err != nil {
		s.err = err
		return
	}
	s.prompt = p
	s.result = nil
	s.input.Clear()
}

func (s *RecallScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.err != nil {
		return s, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		switch {
		case s.result != nil:
			s.next()
		case s.input.Value() != "":
			res, err := s.game.Answer(context.Background(), s.input.Value())
			s.warn = err
			s.result = &res
			s.tally.Add([]string{s.prompt}, res.Correct)
			s.input.Submit(res.Correct)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// Finish swaps the game for its summary.
func (s *RecallScreen) Finish() tea.Cmd {
	data := summary.Data{Mode: drill.ModeRecall, Score: s.game.Score(), Tally: s.tally}
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: summary.New(data)} }
}

func (s *RecallScreen) Score() int {
	return s.game.Score()
}

func (s *RecallScreen) View(width, height int) string {
	if s.err != nil {
		return layout.Center(theme.Incorrect.Render(fmt.Sprintf("Cannot pick a prompt: %v", s.err)), width, height)
	}

	parts := []string{theme.Prompt.Render(s.prompt), "", s.input.View(), ""}
	switch {
	case s.result == nil:
		parts = append(parts, theme.Hint.Render("type the answer and press enter"))
	case s.result.Correct:
		parts = append(parts, theme.Correct.Render("Correct!"))
	default:
		parts = append(parts, theme.Incorrect.Render("Answer: "+strings.Join(s.result.Expected, " / ")))
	}
	if s.tally.Rounds > 0 {
		parts = append(parts, "", components.NewProgressBar("Accuracy", s.tally.Accuracy(), min(width-4, 40)).View())
	}
	if s.warn != nil {
		parts = append(parts, theme.Hint.Render("could not save answer: "+s.warn.Error()))
	}
	return layout.Center(lipgloss.JoinVertical(lipgloss.Center, parts...), width, height)
}

func (s *RecallScreen) Title() string {
	return "Recall"
}

func (s *RecallScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check / next"},
		{Key: "Esc", Description: "Finish"},
	}
}
