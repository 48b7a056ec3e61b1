package model

// Move is an origin/destination pair.
type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Notation renders the move in a short algebraic form, e.g. "Nf3" or "exd5".
// It is computed against the board before the move is applied.
func (m Move) Notation(board *Board) string {
	piece := board.At(m.From)
	if piece == nil {
		return m.From.String() + m.To.String()
	}
	capture := ""
	if board.At(m.To) != nil {
		capture = "x"
	}
	prefix := piece.Type.Letter()
	if piece.Type == Pawn && capture != "" {
		prefix = m.From.String()[:1]
	}
	suffix := ""
	if piece.Type == Pawn && m.To.Row == piece.Color.lastRow() {
		suffix = "=" + Queen.Letter()
	}
	return prefix + capture + m.To.String() + suffix
}
