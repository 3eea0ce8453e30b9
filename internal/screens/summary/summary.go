// Package summary shows how a game session went.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanadrill/internal/drill"
	"github.com/abhisek/kanadrill/internal/router"
	"github.com/abhisek/kanadrill/internal/screen"
	"github.com/abhisek/kanadrill/internal/ui/components"
	"github.com/abhisek/kanadrill/internal/ui/layout"
	"github.com/abhisek/kanadrill/internal/ui/theme"
)

const missedShown = 8

// Data is what a finished game hands to the summary.
type Data struct {
	Mode  drill.Mode
	Score int
	Tally drill.Tally
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	data Data
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(data Data) *SummaryScreen {
	return &SummaryScreen{data: data}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) Score() int {
	return s.data.Score
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	d := s.data
	if d.Tally.Rounds == 0 {
		return layout.Center(theme.Hint.Render("No rounds played."), width, height)
	}

	cw := min(width-4, 50)
	lines := []string{
		theme.Title.Width(cw).Render(strings.ToUpper(string(d.Mode)) + " COMPLETE"),
		"",
		theme.Body.Render(fmt.Sprintf("Rounds   %d", d.Tally.Rounds)),
		theme.Body.Render(fmt.Sprintf("Correct  %d", d.Tally.Correct)),
		theme.Body.Render(fmt.Sprintf("Score    %d", d.Score)),
		"",
		components.NewProgressBar("Accuracy", d.Tally.Accuracy(), cw).View(),
	}

	if missed := d.Tally.TopMissed(missedShown); len(missed) > 0 {
		parts := make([]string, len(missed))
		for i, m := range missed {
			parts[i] = theme.Incorrect.Render(m.Item) + theme.Hint.Render(fmt.Sprintf("×%d", m.Count))
		}
		lines = append(lines, "", theme.Body.Render("Missed"), strings.Join(parts, "  "))
	}

	card := theme.Card.Width(cw + 6).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return layout.Center(card, width, height)
}
