package tty

import (
	"kterm/device/input"
	"kterm/device/video/console"
	"kterm/kernel"
)

var errOutOfBounds = &kernel.Error{Module: "tty", Message: "write outside visible screen"}

// Editor is a line-editing terminal backed by a scrollback buffer. It keeps
// a logical cursor inside the visible console.Width x console.Height window,
// supports inserting and deleting in the middle of a line, explicit line
// breaks, line wrapping and scrolling, and mirrors the visible window and
// the cursor into a console.Frame and the hardware cursor.
//
// The editor never reports errors: every boundary condition is absorbed by a
// clamp or turns the operation into a no-op. The clamping rules are:
//   - the cursor column saturates at 0 and console.Width-1 and the row at 0
//     and console.Height-1;
//   - the scroll position saturates at 0 and MaxLines-console.Height;
//   - characters typed at the last visible cell are dropped;
//   - new lines are refused once the last buffer row is on screen and the
//     cursor is on it;
//   - backspace with the cursor on the first buffer cell does nothing.
//
// Inserting a character shifts the rest of the text block one cell to the
// right together with the line break that terminates it, so a row ending in
// an explicit new line keeps that line break after its last character.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	frame  console.Frame
	cursor console.Cursor
	state  State

	buffer Scrollback
	attr   console.Attr

	// Cursor position within the visible window and the buffer row shown
	// at the top of the window.
	x, y       uint32
	lineOffset uint32
}

// NewEditor returns an active editor attached to frame that programs the
// hardware cursor through ports.
func NewEditor(frame console.Frame, ports console.PortWriter) *Editor {
	e := &Editor{}
	e.AttachTo(frame, ports)
	e.SetState(StateActive)
	return e
}

// AttachTo connects the editor to a frame and to the port used to program the
// hardware cursor, resetting the cursor, scroll position and colors. The
// buffer contents are preserved.
func (e *Editor) AttachTo(frame console.Frame, ports console.PortWriter) {
	e.frame = frame
	e.cursor = console.NewCursor(ports)
	e.attr = console.DefaultAttr
	e.x, e.y, e.lineOffset = 0, 0, 0

	if e.state == StateActive {
		e.activate()
	}
}

// State returns the editor's state.
func (e *Editor) State() State {
	return e.state
}

// SetState updates the editor's state. An editor that becomes active shapes
// the hardware cursor and syncs the frame with its contents.
func (e *Editor) SetState(newState State) {
	if e.state == newState {
		return
	}

	e.state = newState
	if e.state == StateActive {
		e.activate()
	}
}

func (e *Editor) activate() {
	e.cursor.Resize(cursorStartScanline, cursorEndScanline)
	e.commit()
}

// CursorPosition returns the cursor column and row within the visible window.
func (e *Editor) CursorPosition() (uint32, uint32) {
	return e.x, e.y
}

// LineOffset returns the buffer row displayed at the top of the screen.
func (e *Editor) LineOffset() uint32 {
	return e.lineOffset
}

// Attr returns the attribute applied to newly written characters.
func (e *Editor) Attr() console.Attr {
	return e.attr
}

// CellAt returns the buffer cell at column col of buffer row row.
func (e *Editor) CellAt(col, row uint32) (console.Cell, bool) {
	if col >= console.Width || row >= MaxLines {
		return console.EmptyCell, false
	}
	return e.buffer.At(row*console.Width + col)
}

// WriteChar inserts c at the cursor position, shifting the rest of the text
// block one cell to the right, and advances the cursor.
func (e *Editor) WriteChar(c byte) {
	e.writeChar(c)
	e.commit()
}

// DeleteChar moves the cursor one cell back and clears the cell it lands on.
// At the start of a row the cursor moves to the end of the previous row,
// scrolling the window up when needed; deleting a line break this way joins
// the two rows.
func (e *Editor) DeleteChar() {
	e.deleteChar()
	e.commit()
}

// NewLine terminates the current row with a line break and moves the cursor
// to the start of the next row, scrolling when the cursor is on the bottom
// row.
func (e *Editor) NewLine() {
	e.newLine()
	e.commit()
}

// ScrollDown scrolls the window one row down, clearing the newly exposed
// bottom row, and moves the cursor to the bottom row.
func (e *Editor) ScrollDown() {
	e.scrollDown()
	e.commit()
}

// MoveCursor moves the cursor one step in the requested direction. Moving
// right jumps to the end of the text block under the cursor.
func (e *Editor) MoveCursor(dir Direction) {
	switch dir {
	case DirectionUp:
		if e.y > 0 {
			e.y--
		}
	case DirectionDown:
		if e.y < console.Height-1 {
			e.y++
		}
	case DirectionLeft:
		if e.x > 0 {
			e.x--
		}
	case DirectionRight:
		e.x += e.buffer.BlockLength(e.x, e.row())
		if e.x > console.Width-1 {
			e.x = console.Width - 1
		}
	}

	e.commit()
}

// ClearScreen empties every visible cell. The cursor is left in place.
func (e *Editor) ClearScreen() {
	for y := uint32(0); y < console.Height; y++ {
		for x := uint32(0); x < console.Width; x++ {
			_ = e.putCell(x, y, console.EmptyCell)
		}
	}
	e.commit()
}

// SetForegroundColor sets the foreground color for characters written from
// now on.
func (e *Editor) SetForegroundColor(fg console.Color) {
	e.attr = e.attr.WithForeground(fg)
	e.commit()
}

// SetBackgroundColor sets the background color for characters written from
// now on.
func (e *Editor) SetBackgroundColor(bg console.Color) {
	e.attr = e.attr.WithBackground(bg)
	e.commit()
}

// Flush copies the visible window to the attached frame. Inactive editors
// and editors without a frame do nothing.
func (e *Editor) Flush() {
	if e.state != StateActive || e.frame == nil {
		return
	}

	for index, cell := range e.buffer.Slice(e.lineOffset) {
		e.frame.WriteCell(uint32(index), cell)
	}
}

// Write implements io.Writer. Bytes are interpreted as by WriteByte and the
// frame is flushed once after the whole slice is processed.
func (e *Editor) Write(data []byte) (int, error) {
	for _, b := range data {
		e.put(b)
	}
	e.commit()

	return len(data), nil
}

// WriteByte implements io.ByteWriter. The following bytes are interpreted:
//   - \n starts a new line
//   - \r moves the cursor to the start of the row
//   - \b deletes the previous character
//   - \t inserts DefaultTabWidth spaces
//   - 0 is ignored
//
// Any other byte is inserted at the cursor.
func (e *Editor) WriteByte(b byte) error {
	e.put(b)
	e.commit()
	return nil
}

// HandleKey applies the edit bound to a decoded key. Function keys are not
// handled by the editor.
func (e *Editor) HandleKey(key input.Key) {
	switch key.Kind {
	case input.KeyPrintable:
		e.WriteChar(key.Char)
	case input.KeyBackspace:
		e.DeleteChar()
	case input.KeyEnter:
		e.NewLine()
	case input.KeyTab:
		_ = e.WriteByte('\t')
	case input.KeyArrowUp:
		e.MoveCursor(DirectionUp)
	case input.KeyArrowDown:
		e.MoveCursor(DirectionDown)
	case input.KeyArrowLeft:
		e.MoveCursor(DirectionLeft)
	case input.KeyArrowRight:
		e.MoveCursor(DirectionRight)
	}
}

func (e *Editor) put(b byte) {
	switch b {
	case 0:
	case '\n':
		e.newLine()
	case '\r':
		e.x = 0
	case '\b':
		e.deleteChar()
	case '\t':
		for i := 0; i < DefaultTabWidth; i++ {
			e.writeChar(' ')
		}
	default:
		e.writeChar(b)
	}
}

// commit mirrors the cursor into the hardware cursor and flushes the frame.
func (e *Editor) commit() {
	if e.state != StateActive {
		return
	}

	e.cursor.UpdatePos(e.x, e.y)
	e.Flush()
}

// row returns the buffer row under the cursor.
func (e *Editor) row() uint32 {
	return e.lineOffset + e.y
}

// atLastCell returns true if the cursor is on the last visible cell.
func (e *Editor) atLastCell() bool {
	return e.x == console.Width-1 && e.y == console.Height-1
}

func (e *Editor) writeChar(c byte) {
	if e.atLastCell() {
		return
	}

	e.shiftRight(e.x, e.row())
	_ = e.putCell(e.x, e.y, console.MakeCell(c, e.attr))
	e.incCursor()
}

func (e *Editor) deleteChar() {
	if !e.decCursor() {
		return
	}
	_ = e.putCell(e.x, e.y, console.EmptyCell)
}

func (e *Editor) newLine() {
	if e.y == console.Height-1 && e.lineOffset == maxLineOffset {
		return
	}

	row := e.row()
	_ = e.putAbs(row*console.Width+e.buffer.BlockLength(0, row), console.MakeCell(LineBreak, e.attr))

	e.x = 0
	e.y++
	if e.y > console.Height-1 {
		e.scrollDown()
	}
}

func (e *Editor) scrollDown() {
	if e.lineOffset == maxLineOffset {
		return
	}

	e.lineOffset++
	e.y = console.Height - 1
	for x := uint32(0); x < console.Width; x++ {
		_ = e.putCell(x, e.y, console.EmptyCell)
	}
}

// shiftRight moves the text block starting at (col, row) one cell to the
// right, including the line break that terminates it. Cells are moved
// starting from the end of the block so none is overwritten before it is
// relocated; a cell pushed past the end of a row continues on the next one.
func (e *Editor) shiftRight(col, row uint32) {
	start := row*console.Width + col
	span := e.buffer.BlockLength(col, row)
	if cell, ok := e.buffer.At(start + span); ok && isLineBreak(cell) {
		span++
	}

	for index := start + span; index > start; index-- {
		cell, _ := e.buffer.At(index - 1)
		_ = e.putAbs(index, cell)
	}
}

// incCursor advances the cursor one cell, wrapping to the next row. The
// cursor never moves past the last visible cell.
func (e *Editor) incCursor() {
	if e.atLastCell() {
		return
	}

	e.x++
	if e.x == console.Width {
		e.x = 0
		e.y++
	}
}

// decCursor moves the cursor one cell back and reports whether it moved. At
// column 0 it moves to the end of the previous row, scrolling the window up
// if the cursor is on the top row. Nothing precedes the first buffer cell.
func (e *Editor) decCursor() bool {
	switch {
	case e.x > 0:
		e.x--
	case e.y > 0:
		e.y--
		e.x = e.rowEnd(e.row())
	case e.lineOffset > 0:
		e.lineOffset--
		e.x = e.rowEnd(e.row())
	default:
		return false
	}
	return true
}

// rowEnd returns the column of the last cell holding content in row, counting
// a terminating line break as content. The result saturates at
// console.Width-1 for rows whose text wraps into the next row.
func (e *Editor) rowEnd(row uint32) uint32 {
	n := e.buffer.BlockLength(0, row)
	if cell, ok := e.buffer.At(row*console.Width + n); ok && isLineBreak(cell) {
		n++
	}

	switch {
	case n == 0:
		return 0
	case n >= console.Width:
		return console.Width - 1
	default:
		return n - 1
	}
}

// putCell stores cell at visible position (x, y).
func (e *Editor) putCell(x, y uint32, cell console.Cell) *kernel.Error {
	if x >= console.Width || y >= console.Height {
		return errOutOfBounds
	}

	e.buffer.Write(e.lineOffset+y, x, cell)
	return nil
}

// putAbs stores cell at an absolute buffer index if that index is visible.
func (e *Editor) putAbs(index uint32, cell console.Cell) *kernel.Error {
	windowStart := e.lineOffset * console.Width
	if index < windowStart {
		return errOutOfBounds
	}

	rel := index - windowStart
	return e.putCell(rel%console.Width, rel/console.Width, cell)
}
