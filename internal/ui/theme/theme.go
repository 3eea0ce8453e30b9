package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: ink on washi, with vermilion and indigo accents.
var (
	Primary   = lipgloss.Color("#E4572E") // Vermilion
	Secondary = lipgloss.Color("#4C6EF5") // Indigo
	Accent    = lipgloss.Color("#F4B942") // Gold
	Success   = lipgloss.Color("#40C057") // Green
	Error     = lipgloss.Color("#FA5252") // Red
	Text      = lipgloss.Color("#F1F3F5")
	TextDim   = lipgloss.Color("#868E96")
	BgCard    = lipgloss.Color("#212529")
	Border    = lipgloss.Color("#495057")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Prompt renders the kana or romaji being asked about.
	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent).
		Padding(1, 4).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Border)
)

var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Tiles
var (
	Tile = lipgloss.NewStyle().
		Foreground(Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Padding(0, 1)

	TileUsed = lipgloss.NewStyle().
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)

	Slot = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(Border).
		Padding(0, 1)

	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
