package render

import (
	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/gdamore/tcell/v2"
)

const helpMsg = "click a piece, then a square  [r]eset [f]en [q]uit"

// Shell plays a local game on a terminal screen with the mouse.
type Shell struct {
	screen  tcell.Screen
	game    *model.Game
	theme   Theme
	msg     string
	pressed bool
}

func NewShell(s tcell.Screen, g *model.Game, t Theme) *Shell {
	return &Shell{screen: s, game: g, theme: t, msg: helpMsg}
}

func (sh *Shell) Draw() {
	Render(sh.screen, sh.game.State(), sh.msg, sh.theme)
}

// Run draws and handles events until the user quits or the screen is
// finalized.
func (sh *Shell) Run() {
	sh.Draw()
	for {
		ev := sh.screen.PollEvent()
		if ev == nil || !sh.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent applies one terminal event. It returns false once the user
// asked to quit.
func (sh *Shell) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return false
		case ev.Rune() == 'r':
			sh.game.Reset()
			sh.msg = helpMsg
		case ev.Rune() == 'f':
			sh.msg = sh.game.FEN()
		}
	case *tcell.EventMouse:
		// act on press only, tcell repeats the event while the button is held
		if ev.Buttons()&tcell.Button1 == 0 {
			sh.pressed = false
			return true
		}
		if sh.pressed {
			return true
		}
		sh.pressed = true
		if sq, ok := SquareAt(ev.Position()); ok {
			sh.click(sq)
		}
	case *tcell.EventResize:
		sh.screen.Sync()
	}
	sh.Draw()
	return true
}

func (sh *Shell) click(sq model.Square) {
	board := sh.game.Board()
	from, selected := sh.game.Selected()
	var notation string
	if selected {
		notation = model.Move{From: from, To: sq}.Notation(&board)
	}

	switch sh.game.Click(sq) {
	case model.ClickMoved:
		sh.msg = notation
	case model.ClickSelected:
		sh.msg = sq.String()
	case model.ClickDeselected:
		sh.msg = helpMsg
	}
}
