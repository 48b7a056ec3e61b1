package render

import "github.com/gdamore/tcell/v2"

// Theme colors the terminal board.
type Theme struct {
	MoveLabelBg tcell.Color
	MoveLabelFg tcell.Color
	SquareDark  tcell.Color
	SquareLight tcell.Color
	SquareHigh  tcell.Color
	SquareHint  tcell.Color
	SquareLast  tcell.Color
	White       tcell.Color
	Black       tcell.Color
	Label       tcell.Color
	Msg         tcell.Color
}

// DefaultTheme follows the browser shell palette.
var DefaultTheme = Theme{
	MoveLabelBg: tcell.ColorDarkSlateGray,
	MoveLabelFg: tcell.ColorWhite,
	SquareDark:  tcell.NewRGBColor(0x76, 0x96, 0x56),
	SquareLight: tcell.NewRGBColor(0xee, 0xee, 0xd2),
	SquareHigh:  tcell.NewRGBColor(0xf6, 0xf6, 0x69),
	SquareHint:  tcell.NewRGBColor(0x14, 0x55, 0x1e),
	SquareLast:  tcell.NewRGBColor(0xba, 0xca, 0x44),
	White:       tcell.ColorWhite,
	Black:       tcell.ColorBlack,
	Label:       tcell.ColorGray,
	Msg:         tcell.ColorRed,
}
