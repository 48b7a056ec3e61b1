package model

var (
	rookDirs   = []Square{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	bishopDirs = []Square{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	queenDirs  = append(append([]Square{}, rookDirs...), bishopDirs...)
	kingDirs   = queenDirs
	knightDirs = []Square{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
)

// LegalMoves enumerates the pseudo-legal destinations of the piece on from.
// King safety is not considered. An empty or out-of-bounds origin yields no
// destinations.
func LegalMoves(board *Board, from Square) []Square {
	if !from.InBounds() {
		return []Square{}
	}
	piece := board.At(from)
	if piece == nil {
		return []Square{}
	}
	switch piece.Type {
	case Pawn:
		return pawnMoves(board, from, piece.Color)
	case Rook:
		return slideMoves(board, from, piece.Color, rookDirs)
	case Bishop:
		return slideMoves(board, from, piece.Color, bishopDirs)
	case Queen:
		return slideMoves(board, from, piece.Color, queenDirs)
	case Knight:
		return stepMoves(board, from, piece.Color, knightDirs)
	case King:
		return stepMoves(board, from, piece.Color, kingDirs)
	default:
		return []Square{}
	}
}

func pawnMoves(board *Board, from Square, color Color) []Square {
	moves := []Square{}
	dir := color.forward()

	one := from.offset(Square{Row: dir})
	if one.InBounds() && board.At(one) == nil {
		moves = append(moves, one)
		two := from.offset(Square{Row: 2 * dir})
		if from.Row == color.pawnRow() && two.InBounds() && board.At(two) == nil {
			moves = append(moves, two)
		}
	}
	for _, dc := range []int{-1, 1} {
		target := from.offset(Square{Row: dir, Col: dc})
		if !target.InBounds() {
			continue
		}
		if p := board.At(target); p != nil && p.Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}

func slideMoves(board *Board, from Square, color Color, dirs []Square) []Square {
	moves := []Square{}
	for _, dir := range dirs {
		target := from.offset(dir)
		for target.InBounds() {
			p := board.At(target)
			if p == nil {
				moves = append(moves, target)
			} else {
				if p.Color != color {
					moves = append(moves, target)
				}
				break
			}
			target = target.offset(dir)
		}
	}
	return moves
}

func stepMoves(board *Board, from Square, color Color, offsets []Square) []Square {
	moves := []Square{}
	for _, d := range offsets {
		target := from.offset(d)
		if !target.InBounds() {
			continue
		}
		if p := board.At(target); p == nil || p.Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}
