package model

import (
	"fmt"
	"slices"
)

// Game owns the board, the side to move and the current selection. It is
// not safe for concurrent use; callers serialize access.
type Game struct {
	board    Board
	turn     Color
	selected *Square
	lastMove *Move
}

// GameState is the JSON snapshot handed to renderers.
type GameState struct {
	Board      Board    `json:"board"`
	Turn       Color    `json:"turn"`
	Selected   *Square  `json:"selected"`
	LegalMoves []Square `json:"legalMoves"`
	LastMove   *Move    `json:"lastMove"`
	FEN        string   `json:"fen"`
}

func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// Reset puts the pieces back on their starting squares with white to move.
func (g *Game) Reset() {
	g.board = StartingBoard()
	g.turn = White
	g.selected = nil
	g.lastMove = nil
}

func (g *Game) Turn() Color {
	return g.turn
}

// Board returns a copy of the grid.
func (g *Game) Board() Board {
	return g.board.Clone()
}

// PieceAt reports the piece on sq, if any.
func (g *Game) PieceAt(sq Square) (Piece, bool) {
	if !sq.InBounds() {
		return Piece{}, false
	}
	p := g.board.At(sq)
	if p == nil {
		return Piece{}, false
	}
	return *p, true
}

func (g *Game) Selected() (Square, bool) {
	if g.selected == nil {
		return Square{}, false
	}
	return *g.selected, true
}

func (g *Game) LastMove() (Move, bool) {
	if g.lastMove == nil {
		return Move{}, false
	}
	return *g.lastMove, true
}

// LegalMoves returns the pseudo-legal destinations from sq regardless of
// whose turn it is.
func (g *Game) LegalMoves(sq Square) []Square {
	return LegalMoves(&g.board, sq)
}

// ApplyMove relocates the piece on from to to, promotes a pawn reaching its
// last row to a queen and passes the turn. The caller must already have
// checked the move against LegalMoves; an empty origin is a no-op.
func (g *Game) ApplyMove(from, to Square) {
	piece := g.board.At(from)
	if piece == nil {
		return
	}
	g.board.set(to, piece)
	g.board.set(from, nil)
	if piece.Type == Pawn && to.Row == piece.Color.lastRow() {
		piece.Type = Queen
	}
	g.turn = g.turn.Opponent()
	g.selected = nil
	g.lastMove = &Move{From: from, To: to}
}

// Move validates from->to for the side to move and applies it.
func (g *Game) Move(from, to Square) error {
	if !from.InBounds() || !to.InBounds() {
		return fmt.Errorf("%w: %s->%s", ErrOutOfBounds, from, to)
	}
	piece := g.board.At(from)
	if piece == nil {
		return fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if piece.Color != g.turn {
		return fmt.Errorf("%w: %s to move", ErrNotYourTurn, g.turn)
	}
	if !slices.Contains(g.LegalMoves(from), to) {
		return fmt.Errorf("%w: %s->%s", ErrIllegalMove, from, to)
	}
	g.ApplyMove(from, to)
	return nil
}

// State snapshots the game. LegalMoves lists the destinations of the
// selected piece and is empty when nothing is selected.
func (g *Game) State() GameState {
	state := GameState{
		Board:      g.board.Clone(),
		Turn:       g.turn,
		LegalMoves: []Square{},
		FEN:        g.FEN(),
	}
	if g.selected != nil {
		sel := *g.selected
		state.Selected = &sel
		state.LegalMoves = g.LegalMoves(sel)
	}
	if g.lastMove != nil {
		last := *g.lastMove
		state.LastMove = &last
	}
	return state
}
