package model

import "slices"

// ClickResult describes what a click did to the game.
type ClickResult string

const (
	ClickIgnored    ClickResult = "ignored"
	ClickSelected   ClickResult = "selected"
	ClickDeselected ClickResult = "deselected"
	ClickMoved      ClickResult = "moved"
)

// Click advances the selection state machine. With nothing selected, a
// piece of the side to move becomes the selection. With a selection,
// clicking it again clears it, clicking one of its destinations plays the
// move, and clicking another own piece selects that piece instead. Every
// other click leaves the game untouched.
func (g *Game) Click(sq Square) ClickResult {
	if !sq.InBounds() {
		return ClickIgnored
	}
	clicked := g.board.At(sq)
	own := clicked != nil && clicked.Color == g.turn

	if g.selected == nil {
		if own {
			g.selected = &sq
			return ClickSelected
		}
		return ClickIgnored
	}

	from := *g.selected
	if from == sq {
		g.selected = nil
		return ClickDeselected
	}
	if slices.Contains(g.LegalMoves(from), sq) {
		g.ApplyMove(from, sq)
		return ClickMoved
	}
	if own {
		g.selected = &sq
		return ClickSelected
	}
	return ClickIgnored
}

// Deselect drops the current selection, if any.
func (g *Game) Deselect() {
	g.selected = nil
}
