package model

import "errors"

var (
	ErrOutOfBounds = errors.New("square out of bounds")
	ErrNoPiece     = errors.New("no piece at from square")
	ErrNotYourTurn = errors.New("not your turn")
	ErrIllegalMove = errors.New("illegal move")
	ErrInvalidFEN  = errors.New("invalid FEN")
)
