package render

import (
	"testing"

	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	s.SetSize(40, 16)
	t.Cleanup(s.Fini)
	return s
}

// cellAt returns the screen position of the left column of sq.
func cellAt(sq model.Square) (int, int) {
	return leftMargin + sq.Col*squareW, topMargin + sq.Row
}

func TestSquareAt(t *testing.T) {
	for r := 0; r < model.Size; r++ {
		for c := 0; c < model.Size; c++ {
			want := model.Square{Row: r, Col: c}
			x, y := cellAt(want)
			for dx := 0; dx < squareW; dx++ {
				got, ok := SquareAt(x+dx, y)
				if !ok || got != want {
					t.Fatalf("(%d,%d): expected %v but got %v (%v)", x+dx, y, want, got, ok)
				}
			}
		}
	}
	for _, p := range [][2]int{{0, 0}, {leftMargin - 1, topMargin}, {leftMargin + 16, topMargin}, {leftMargin, topMargin + 8}} {
		if _, ok := SquareAt(p[0], p[1]); ok {
			t.Errorf("(%d,%d): expected no square", p[0], p[1])
		}
	}
}

func TestRenderStartingPosition(t *testing.T) {
	s := newScreen(t)
	Render(s, model.NewGame().State(), "", DefaultTheme)

	tests := []struct {
		sq   model.Square
		want rune
	}{
		{sq: model.Square{Row: 0, Col: 0}, want: '♜'},
		{sq: model.Square{Row: 0, Col: 4}, want: '♚'},
		{sq: model.Square{Row: 6, Col: 4}, want: '♙'},
		{sq: model.Square{Row: 7, Col: 3}, want: '♕'},
		{sq: model.Square{Row: 4, Col: 4}, want: ' '},
	}
	for _, tc := range tests {
		x, y := cellAt(tc.sq)
		got, _, _, _ := s.GetContent(x, y)
		if got != tc.want {
			t.Errorf("%s: expected %q but got %q", tc.sq, tc.want, got)
		}
	}

	if r, _, _, _ := s.GetContent(leftMargin-2, topMargin); r != '8' {
		t.Errorf("expected rank label 8 but got %q", r)
	}
	if r, _, _, _ := s.GetContent(leftMargin, topMargin+model.Size); r != 'a' {
		t.Errorf("expected file label a but got %q", r)
	}
}

func TestRenderHighlights(t *testing.T) {
	s := newScreen(t)
	g := model.NewGame()
	g.Click(model.Square{Row: 6, Col: 4})
	Render(s, g.State(), "", DefaultTheme)

	bgAt := func(sq model.Square) tcell.Color {
		x, y := cellAt(sq)
		_, _, style, _ := s.GetContent(x, y)
		_, bg, _ := style.Decompose()
		return bg
	}
	if bg := bgAt(model.Square{Row: 6, Col: 4}); bg != DefaultTheme.SquareHigh {
		t.Errorf("expected selected square highlight, got %v", bg)
	}
	for _, sq := range []model.Square{{Row: 5, Col: 4}, {Row: 4, Col: 4}} {
		if bg := bgAt(sq); bg != DefaultTheme.SquareHint {
			t.Errorf("%s: expected destination hint, got %v", sq, bg)
		}
	}
	if bg := bgAt(model.Square{Row: 0, Col: 0}); bg != DefaultTheme.SquareLight {
		t.Errorf("expected light a8, got %v", bg)
	}
	if bg := bgAt(model.Square{Row: 7, Col: 0}); bg != DefaultTheme.SquareDark {
		t.Errorf("expected dark a1, got %v", bg)
	}
}

func TestShellMouseMove(t *testing.T) {
	s := newScreen(t)
	g := model.NewGame()
	sh := NewShell(s, g, DefaultTheme)

	click := func(sq model.Square) {
		x, y := cellAt(sq)
		sh.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
		sh.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	}

	click(model.Square{Row: 7, Col: 6})
	click(model.Square{Row: 5, Col: 5})
	if g.Turn() != model.Black {
		t.Fatalf("expected black to move but got %s", g.Turn())
	}
	if sh.msg != "Nf3" {
		t.Fatalf("expected message Nf3 but got %q", sh.msg)
	}
	x, y := cellAt(model.Square{Row: 5, Col: 5})
	if r, _, _, _ := s.GetContent(x, y); r != '♘' {
		t.Fatalf("expected knight drawn on f3 but got %q", r)
	}
}

func TestShellHeldButtonClicksOnce(t *testing.T) {
	s := newScreen(t)
	g := model.NewGame()
	sh := NewShell(s, g, DefaultTheme)

	x, y := cellAt(model.Square{Row: 6, Col: 4})
	sh.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	sh.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if _, ok := g.Selected(); !ok {
		t.Fatalf("a held button should not deselect")
	}
}

func TestShellKeys(t *testing.T) {
	s := newScreen(t)
	g := model.NewGame()
	sh := NewShell(s, g, DefaultTheme)
	g.ApplyMove(model.Square{Row: 6, Col: 4}, model.Square{Row: 4, Col: 4})

	if !sh.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone)) {
		t.Fatalf("f should not quit")
	}
	if sh.msg != g.FEN() {
		t.Fatalf("expected FEN message but got %q", sh.msg)
	}
	sh.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if g.Turn() != model.White {
		t.Fatalf("expected reset to white")
	}
	if sh.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatalf("q should quit")
	}
	if sh.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatalf("escape should quit")
	}
}
