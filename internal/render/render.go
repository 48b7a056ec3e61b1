package render

import (
	"slices"

	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/gdamore/tcell/v2"
)

const (
	leftMargin = 4
	topMargin  = 2
	squareW    = 2
)

// DefStyle is the default style for tcell rendering
var DefStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// squareBg picks the background of a square, highlights first.
func squareBg(state model.GameState, sq model.Square, t Theme) tcell.Color {
	switch {
	case state.Selected != nil && *state.Selected == sq:
		return t.SquareHigh
	case slices.Contains(state.LegalMoves, sq):
		return t.SquareHint
	case state.LastMove != nil && (state.LastMove.From == sq || state.LastMove.To == sq):
		return t.SquareLast
	case (sq.Row+sq.Col)%2 == 0:
		return t.SquareLight
	default:
		return t.SquareDark
	}
}

// drawSquare fills two columns so the square looks square.
func drawSquare(s tcell.Screen, x, y int, p *model.Piece, bg tcell.Color, t Theme) {
	style := tcell.StyleDefault.Background(bg)
	if p == nil {
		s.SetContent(x, y, ' ', nil, style)
		s.SetContent(x+1, y, ' ', nil, style)
		return
	}
	fg := t.White
	if p.Color == model.Black {
		fg = t.Black
	}
	s.SetContent(x, y, p.Glyph(), nil, style.Foreground(fg))
	s.SetContent(x+1, y, ' ', nil, style)
}

func drawBoard(s tcell.Screen, state model.GameState, t Theme) {
	labelStyle := tcell.StyleDefault.Foreground(t.Label)
	for r := 0; r < model.Size; r++ {
		y := topMargin + r
		s.SetContent(leftMargin-2, y, rune('8'-r), nil, labelStyle)
		for c := 0; c < model.Size; c++ {
			sq := model.Square{Row: r, Col: c}
			drawSquare(s, leftMargin+c*squareW, y, state.Board[r][c], squareBg(state, sq, t), t)
		}
	}
	for c := 0; c < model.Size; c++ {
		s.SetContent(leftMargin+c*squareW, topMargin+model.Size, rune('a'+c), nil, labelStyle)
	}
}

func drawMoveLabel(s tcell.Screen, turn model.Color, t Theme) {
	label := " White to move "
	if turn == model.Black {
		label = " Black to move "
	}
	style := tcell.StyleDefault.Background(t.MoveLabelBg).Foreground(t.MoveLabelFg)
	drawText(s, leftMargin, topMargin-2, style, label)
}

func drawMsg(s tcell.Screen, msg string, t Theme) {
	y := topMargin + model.Size + 2
	w, _ := s.Size()
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
	drawText(s, leftMargin, y, tcell.StyleDefault.Foreground(t.Msg), msg)
}

// Render draws the whole board and a message line, then shows the screen.
func Render(s tcell.Screen, state model.GameState, msg string, t Theme) {
	drawMoveLabel(s, state.Turn, t)
	drawBoard(s, state, t)
	drawMsg(s, msg, t)
	s.Show()
}

// SquareAt maps a screen cell back to the board square drawn there.
func SquareAt(x, y int) (model.Square, bool) {
	if x < leftMargin || y < topMargin {
		return model.Square{}, false
	}
	sq := model.Square{Row: y - topMargin, Col: (x - leftMargin) / squareW}
	return sq, sq.InBounds()
}
