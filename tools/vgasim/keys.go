package main

import (
	"github.com/gdamore/tcell/v2"

	"kterm/device/input"
)

// translateKey converts a tcell key event into the key a PS/2 keyboard would
// report. It returns false for keys with no equivalent.
func translateKey(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r < ' ' || r > '~' {
			return input.Key{}, false
		}
		return input.Printable(byte(r)), true
	case tcell.KeyEnter:
		return input.Key{Kind: input.KeyEnter}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.Key{Kind: input.KeyBackspace}, true
	case tcell.KeyTab:
		return input.Key{Kind: input.KeyTab}, true
	case tcell.KeyLeft:
		return input.Key{Kind: input.KeyArrowLeft}, true
	case tcell.KeyRight:
		return input.Key{Kind: input.KeyArrowRight}, true
	case tcell.KeyUp:
		return input.Key{Kind: input.KeyArrowUp}, true
	case tcell.KeyDown:
		return input.Key{Kind: input.KeyArrowDown}, true
	}

	if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
		return input.Function(uint8(ev.Key()-tcell.KeyF1) + 1), true
	}

	return input.Key{}, false
}
