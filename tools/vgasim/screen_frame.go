package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/charmap"

	"kterm/device/tty"
	"kterm/device/video/console"
)

// egaToANSI maps the EGA palette (attribute order) to the ANSI palette. The
// two orders differ in the position of the blue and red components.
var egaToANSI = [16]int{0, 4, 2, 6, 1, 5, 3, 7, 8, 12, 10, 14, 9, 13, 11, 15}

// cellWidth measures decoded runes. Ambiguous-width runes are treated as
// narrow since every text-mode cell is one column wide.
var cellWidth = func() *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	return cond
}()

// screenFrame is a console.Frame that renders cells into a tcell screen at
// its top-left corner. Characters are decoded as code page 437.
type screenFrame struct {
	screen tcell.Screen
	cells  [console.Width * console.Height]console.Cell
}

func newScreenFrame(screen tcell.Screen) *screenFrame {
	return &screenFrame{screen: screen}
}

// WriteCell implements console.Frame.
func (f *screenFrame) WriteCell(index uint32, c console.Cell) {
	if index >= uint32(len(f.cells)) {
		return
	}

	f.cells[index] = c
	f.screen.SetContent(int(index%console.Width), int(index/console.Width), cellRune(c), nil, attrStyle(c.Attr()))
}

// ReadCell implements console.Frame.
func (f *screenFrame) ReadCell(index uint32) console.Cell {
	if index >= uint32(len(f.cells)) {
		return console.EmptyCell
	}
	return f.cells[index]
}

// cellRune returns the rune displayed for c. Empty cells, line breaks and
// characters that do not occupy exactly one column (control codes) are shown
// as blanks.
func cellRune(c console.Cell) rune {
	if c.IsEmpty() || c.Char() == tty.LineBreak {
		return ' '
	}

	r := charmap.CodePage437.DecodeByte(c.Char())
	if cellWidth.RuneWidth(r) != 1 {
		return ' '
	}
	return r
}

func attrStyle(attr console.Attr) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(egaToANSI[attr.Foreground()])).
		Background(tcell.PaletteColor(egaToANSI[attr.Background()]))
}
