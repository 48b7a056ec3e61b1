package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/benbeisheim/chessboard-backend/internal/model"
	"github.com/benbeisheim/chessboard-backend/internal/render"
	"github.com/gdamore/tcell/v2"
)

func main() {
	fen := flag.String("fen", "", "start from this position instead of the initial one")
	flag.Parse()

	game := model.NewGame()
	if *fen != "" {
		if err := game.LoadFEN(*fen); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "screen:", err)
		os.Exit(1)
	}
	if err := s.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "screen:", err)
		os.Exit(1)
	}
	defer s.Fini()
	s.EnableMouse()
	s.SetStyle(render.DefStyle)
	s.Clear()

	render.NewShell(s, game, render.DefaultTheme).Run()
}
