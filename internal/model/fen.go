package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/corentings/chess/v2"
)

// The chess package parses board fields through a shared buffer.
var fenMu sync.Mutex

var toChessPiece = map[Piece]chess.Piece{
	{King, White}: chess.WhiteKing, {Queen, White}: chess.WhiteQueen,
	{Rook, White}: chess.WhiteRook, {Bishop, White}: chess.WhiteBishop,
	{Knight, White}: chess.WhiteKnight, {Pawn, White}: chess.WhitePawn,
	{King, Black}: chess.BlackKing, {Queen, Black}: chess.BlackQueen,
	{Rook, Black}: chess.BlackRook, {Bishop, Black}: chess.BlackBishop,
	{Knight, Black}: chess.BlackKnight, {Pawn, Black}: chess.BlackPawn,
}

var fromChessPiece = func() map[chess.Piece]Piece {
	m := make(map[chess.Piece]Piece, len(toChessPiece))
	for p, cp := range toChessPiece {
		m[cp] = p
	}
	return m
}()

// FEN encodes the board and side to move. Castling and en passant do not
// exist in this game so those fields are always "-".
func (g *Game) FEN() string {
	squares := make(map[chess.Square]chess.Piece)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if p := g.board[r][c]; p != nil {
				squares[Square{Row: r, Col: c}.chessSquare()] = toChessPiece[*p]
			}
		}
	}
	active := "w"
	if g.turn == Black {
		active = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", chess.NewBoard(squares).String(), active)
}

// LoadFEN replaces the position with the one described by fen. Only the
// board and active color fields are read; a missing active color means
// white. Selection and last move are cleared.
func (g *Game) LoadFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidFEN)
	}

	var parsed chess.Board
	fenMu.Lock()
	err := parsed.UnmarshalText([]byte(fields[0]))
	fenMu.Unlock()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	turn := White
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
		case "b":
			turn = Black
		default:
			return fmt.Errorf("%w: active color %q", ErrInvalidFEN, fields[1])
		}
	}

	var board Board
	for sq, cp := range parsed.SquareMap() {
		p, ok := fromChessPiece[cp]
		if !ok {
			return fmt.Errorf("%w: piece %v", ErrInvalidFEN, cp)
		}
		board.set(squareFromChess(sq), &p)
	}

	g.board = board
	g.turn = turn
	g.selected = nil
	g.lastMove = nil
	return nil
}
