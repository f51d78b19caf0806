package main

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"kterm/device/video/console"
)

// crtc emulates the CRTC index/data port pair of a VGA adapter and mirrors
// the cursor registers into a tcell screen.
type crtc struct {
	screen tcell.Screen
	log    *zap.SugaredLogger
	blink  bool

	index uint8
	regs  [256]uint8
}

func newCRTC(screen tcell.Screen, blink bool, log *zap.SugaredLogger) *crtc {
	return &crtc{screen: screen, blink: blink, log: log}
}

// writePort implements console.PortWriter.
func (c *crtc) writePort(port uint16, val uint8) {
	switch port {
	case console.CRTCIndexPort:
		c.index = val
	case console.CRTCDataPort:
		c.regs[c.index] = val
		switch c.index {
		case console.CRTCCursorStart, console.CRTCCursorEnd:
			c.applyShape()
		case console.CRTCLocationLow, console.CRTCLocationHigh:
			c.applyPos()
		}
	default:
		c.log.Debugw("ignoring write to unknown port", "port", port, "val", val)
	}
}

// cursorPos returns the cursor location programmed into the CRTC.
func (c *crtc) cursorPos() (col, row int) {
	pos := int(c.regs[console.CRTCLocationHigh])<<8 | int(c.regs[console.CRTCLocationLow])
	return pos % console.Width, pos / console.Width
}

func (c *crtc) hidden() bool {
	return c.regs[console.CRTCCursorStart]&console.CursorDisableBit != 0
}

func (c *crtc) applyPos() {
	if c.hidden() {
		return
	}
	c.screen.ShowCursor(c.cursorPos())
}

func (c *crtc) applyShape() {
	if c.hidden() {
		c.screen.HideCursor()
		return
	}

	start := c.regs[console.CRTCCursorStart] & 0x1f
	end := c.regs[console.CRTCCursorEnd] & 0x1f

	c.log.Debugw("cursor shape changed", "start", start, "end", end)
	c.screen.SetCursorStyle(cursorStyle(start, end, c.blink))
	c.screen.ShowCursor(c.cursorPos())
}

// cursorStyle maps a scanline range onto the closest terminal cursor style:
// a cursor covering at least half of the character cell is drawn as a block,
// anything smaller as an underline.
func cursorStyle(start, end uint8, blink bool) tcell.CursorStyle {
	block := end >= start && end-start >= 7

	switch {
	case block && blink:
		return tcell.CursorStyleBlinkingBlock
	case block:
		return tcell.CursorStyleSteadyBlock
	case blink:
		return tcell.CursorStyleBlinkingUnderline
	default:
		return tcell.CursorStyleSteadyUnderline
	}
}
