package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanadrill/internal/adaptive"
	"github.com/abhisek/kanadrill/internal/ui/theme"
)

const titleFull = `  ╔═╗   ┌─┐   ┌┬┐┬─┐┬┬  ┬
  ║ か  ├┤ な  ││├┬┘││  │
  ╚═╝   └─┘   ─┴┘┴└─┴┴─┘┴─┘`

const titleCompact = "か な · D R I L L"

// contentWidth returns the uniform inner width shared by every section.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 56)
}

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art))
}

// renderStatsBar shows the alphabet size and the items currently weighted
// heaviest by the selector.
func renderStatsBar(alphabet int, groups []string, weakest []adaptive.ItemState, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	lines := []string{
		label.Render("drilling ") + value.Render(fmt.Sprintf("%d kana", alphabet)) +
			label.Render(" from "+strings.Join(groups, ", ")),
	}

	if len(weakest) == 0 {
		lines = append(lines, label.Render("no history yet"))
	} else {
		parts := make([]string, len(weakest))
		for i, st := range weakest {
			parts[i] = value.Render(st.ID) + label.Render(fmt.Sprintf(" %.1f", st.Weight))
		}
		lines = append(lines, label.Render("needs work ")+strings.Join(parts, "  "))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

const buttonWidth = 22

func renderButtons(labels []string, selected, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	buttons := make([]string, len(labels))
	for i, l := range labels {
		if i == selected {
			buttons[i] = base.Bold(true).Foreground(theme.Primary).BorderForeground(theme.Primary).Render("▸ " + l)
		} else {
			buttons[i] = base.Foreground(theme.Text).BorderForeground(theme.Border).Render(l)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderCabinetFrame centres content inside a double border.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
