// Package wordbuild is the word-building game: the learner spells a short
// kana word by picking its readings from a rack of tiles.
package wordbuild

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

// WordBuildScreen runs a drill.WordGame.
type WordBuildScreen struct {
	game   *drill.WordGame
	word   *drill.Word
	rack   components.TileRack
	result *drill.Result
	tally  drill.Tally

	// err is a fatal round error; warn is a recording failure that does not
	// stop play.
	err  error
	warn error
}

var _ screen.Screen = (*WordBuildScreen)(nil)
var _ screen.KeyHintProvider = (*WordBuildScreen)(nil)
var _ screen.Finisher = (*WordBuildScreen)(nil)

// New creates the screen; the first word is built on Init.
func New(game *drill.WordGame) *WordBuildScreen {
	return &WordBuildScreen{game: game}
}

func (s *WordBuildScreen) Init() tea.Cmd {
	if s.word == nil && s.err == nil {
		s.next()
	}
	return nil
}

func (s *WordBuildScreen) next() {
	w, err := s.game.Next()
	if err != nil {
		s.err = err
		return
	}
	s.word = w
	s.rack = components.NewTileRack(w.Tiles, len(w.Items))
	s.result = nil
}

func (s *WordBuildScreen) submit() {
	res, err := s.game.Submit(context.Background(), s.rack.Placed())
	s.warn = err
	s.result = &res
	s.tally.Add(s.word.Items, res.Correct)
	s.rack.Lock()
}

func (s *WordBuildScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.err != nil {
		return s, nil
	}

	if s.result != nil {
		switch kmsg.String() {
		case "enter", "space":
			s.next()
		}
		return s, nil
	}

	if kmsg.String() == "enter" {
		if s.rack.Full() {
			s.submit()
		}
		return s, nil
	}

	s.rack, _ = s.rack.Update(msg)
	return s, nil
}

// Finish swaps the game for its summary.
func (s *WordBuildScreen) Finish() tea.Cmd {
	data := summary.Data{Mode: drill.ModeWord, Score: s.game.Score(), Tally: s.tally}
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: summary.New(data)} }
}

func (s *WordBuildScreen) Score() int {
	return s.game.Score()
}

func (s *WordBuildScreen) View(width, height int) string {
	if s.err != nil {
		return layout.Center(theme.Incorrect.Render(fmt.Sprintf("Cannot build a word: %v", s.err)), width, height)
	}
	if s.word == nil {
		return ""
	}

	prompt := theme.Prompt.Render(strings.Join(s.word.Items, " "))

	var feedback string
	switch {
	case s.result == nil:
		feedback = theme.Hint.Render(fmt.Sprintf("Spell it: %d of %d placed", len(s.rack.Placed()), len(s.word.Items)))
	case s.result.Correct:
		feedback = theme.Correct.Render("Correct! ") + theme.Hint.Render("press enter for the next word")
	default:
		feedback = theme.Incorrect.Render("Not quite: "+strings.Join(s.result.Expected, " ")) +
			"  " + theme.Hint.Render("press enter to continue")
	}

	parts := []string{prompt, "", s.rack.View(), "", feedback}
	if s.tally.Rounds > 0 {
		parts = append(parts, "", components.NewProgressBar("Accuracy", s.tally.Accuracy(), min(width-4, 40)).View())
	}
	if s.warn != nil {
		parts = append(parts, theme.Hint.Render("could not save answer: "+s.warn.Error()))
	}

	block := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return layout.Center(block, width, height)
}

func (s *WordBuildScreen) Title() string {
	return "Build Words"
}

func (s *WordBuildScreen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next word"},
			{Key: "Esc", Description: "Finish"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-9", Description: "Place tile"},
		{Key: "⌫", Description: "Undo"},
		{Key: "Enter", Description: "Check"},
		{Key: "Esc", Description: "Finish"},
	}
}
