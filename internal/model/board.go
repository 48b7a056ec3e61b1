package model

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
)

// Size is the number of rows and columns on the board.
const Size = 8

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Letter returns the algebraic piece letter, empty for pawns.
func (p PieceType) Letter() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// pawnRow is the row pawns of this color start on.
func (c Color) pawnRow() int {
	if c == White {
		return 6
	}
	return 1
}

// lastRow is the row where pawns of this color promote.
func (c Color) lastRow() int {
	if c == White {
		return 0
	}
	return Size - 1
}

type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

var glyphs = map[Piece]rune{
	{King, White}: '♔', {Queen, White}: '♕', {Rook, White}: '♖',
	{Bishop, White}: '♗', {Knight, White}: '♘', {Pawn, White}: '♙',
	{King, Black}: '♚', {Queen, Black}: '♛', {Rook, Black}: '♜',
	{Bishop, Black}: '♝', {Knight, Black}: '♞', {Pawn, Black}: '♟',
}

// Glyph returns the Unicode chess symbol for the piece.
func (p Piece) Glyph() rune {
	if g, ok := glyphs[p]; ok {
		return g
	}
	return '?'
}

// Square addresses a cell by row and column. Row 0 is black's back rank and
// column 0 is the a-file.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < Size && s.Col >= 0 && s.Col < Size
}

func (s Square) offset(d Square) Square {
	return Square{Row: s.Row + d.Row, Col: s.Col + d.Col}
}

func (s Square) chessSquare() chess.Square {
	return chess.NewSquare(chess.File(s.Col), chess.Rank(Size-1-s.Row))
}

func squareFromChess(sq chess.Square) Square {
	return Square{Row: Size - 1 - int(sq.Rank()), Col: int(sq.File())}
}

// String returns the algebraic name of the square, e.g. "e2".
func (s Square) String() string {
	if !s.InBounds() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return s.chessSquare().String()
}

// ParseSquare reads an algebraic square name such as "e2".
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrOutOfBounds, name)
	}
	file, rank := strings.ToLower(name)[0], name[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("%w: %q", ErrOutOfBounds, name)
	}
	return Square{Row: Size - 1 - int(rank-'1'), Col: int(file - 'a')}, nil
}

// Board is the 8x8 grid. A nil entry is an empty square.
type Board [Size][Size]*Piece

func (b *Board) At(sq Square) *Piece {
	return b[sq.Row][sq.Col]
}

func (b *Board) set(sq Square, p *Piece) {
	b[sq.Row][sq.Col] = p
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() Board {
	var out Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p := b[r][c]; p != nil {
				cp := *p
				out[r][c] = &cp
			}
		}
	}
	return out
}

var backRank = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartingBoard returns the standard initial position.
func StartingBoard() Board {
	var board Board
	for i := 0; i < Size; i++ {
		board[0][i] = &Piece{Type: backRank[i], Color: Black}
		board[1][i] = &Piece{Type: Pawn, Color: Black}
		board[6][i] = &Piece{Type: Pawn, Color: White}
		board[7][i] = &Piece{Type: backRank[i], Color: White}
	}
	return board
}
