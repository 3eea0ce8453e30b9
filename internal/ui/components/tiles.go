package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kanadrill/internal/ui/theme"
)

// TileRack holds the tiles of a word-building round and the ones placed so
// far. Tiles are picked with the digit keys 1-9 and taken back with
// backspace. Each tile can be placed once.
type TileRack struct {
	Tiles  []string
	Slots  int
	placed []int
	locked bool
}

// NewTileRack creates a rack with slots empty answer positions.
func NewTileRack(tiles []string, slots int) TileRack {
	return TileRack{Tiles: tiles, Slots: slots}
}

// Update handles tile placement keys.
func (r TileRack) Update(msg tea.Msg) (TileRack, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || r.locked {
		return r, nil
	}

	key := kmsg.String()
	switch {
	case key == "backspace":
		if len(r.placed) > 0 {
			r.placed = r.placed[:len(r.placed)-1]
		}
	case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
		idx := int(key[0] - '1')
		if idx < len(r.Tiles) && len(r.placed) < r.Slots && !r.used(idx) {
			r.placed = append(r.placed, idx)
		}
	}
	return r, nil
}

// Placed returns the tile values placed so far, in order.
func (r TileRack) Placed() []string {
	out := make([]string, len(r.placed))
	for i, idx := range r.placed {
		out[i] = r.Tiles[idx]
	}
	return out
}

// Full reports whether every slot has a tile.
func (r TileRack) Full() bool {
	return len(r.placed) == r.Slots
}

// Lock stops the rack from accepting input.
func (r *TileRack) Lock() {
	r.locked = true
}

func (r TileRack) used(idx int) bool {
	for _, p := range r.placed {
		if p == idx {
			return true
		}
	}
	return false
}

// View renders the answer slots above the numbered tiles.
func (r TileRack) View() string {
	placed := r.Placed()
	slots := make([]string, r.Slots)
	for i := range slots {
		v := "  "
		if i < len(placed) {
			v = placed[i]
		}
		slots[i] = theme.Slot.Render(v)
	}

	tiles := make([]string, len(r.Tiles))
	for i, t := range r.Tiles {
		label := fmt.Sprintf("%d %s", i+1, t)
		if r.used(i) {
			tiles[i] = theme.TileUsed.Render(label)
		} else {
			tiles[i] = theme.Tile.Render(label)
		}
	}

	return strings.Join([]string{
		lipgloss.JoinHorizontal(lipgloss.Bottom, slots...),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, tiles...),
	}, "\n")
}
