package tty

import "kterm/device/video/console"

// Scrollback stores MaxLines rows of console.Width cells, the visible screen
// being a window of console.Height rows into it. Position (col, row) lives at
// index row*console.Width + col. The zero value is an empty buffer.
type Scrollback struct {
	cells [console.Width * MaxLines]console.Cell
}

// Len returns the number of cells in the buffer.
func (b *Scrollback) Len() uint32 {
	return uint32(len(b.cells))
}

// Write stores entry at rowOffset*console.Width + relIndex. Writes past the
// end of the buffer are dropped.
func (b *Scrollback) Write(rowOffset, relIndex uint32, entry console.Cell) {
	index, ok := b.index(relIndex, rowOffset)
	if !ok {
		return
	}
	b.cells[index] = entry
}

// At returns the cell at the supplied absolute index.
func (b *Scrollback) At(index uint32) (console.Cell, bool) {
	if index >= b.Len() {
		return console.EmptyCell, false
	}
	return b.cells[index], true
}

// Slice returns the console.Width*console.Height cells of the window whose
// first row is lineOffset. lineOffset saturates at MaxLines-console.Height.
func (b *Scrollback) Slice(lineOffset uint32) []console.Cell {
	if lineOffset > maxLineOffset {
		lineOffset = maxLineOffset
	}

	start := lineOffset * console.Width
	return b.cells[start : start+console.Width*console.Height]
}

// BlockLength returns the number of cells between (fromCol, fromRow) and the
// first line break at or after it. If an empty cell comes first, the distance
// to that cell is returned instead. The scan may continue past the end of
// fromRow into the rows below it.
func (b *Scrollback) BlockLength(fromCol, fromRow uint32) uint32 {
	start, ok := b.index(fromCol, fromRow)
	if !ok {
		return 0
	}

	var n uint32
	for ; start+n < b.Len(); n++ {
		if cell := b.cells[start+n]; cell.IsEmpty() || isLineBreak(cell) {
			break
		}
	}
	return n
}

func isLineBreak(c console.Cell) bool {
	return c.Char() == LineBreak
}

// index returns the absolute index of (col, row). col may run past the end
// of row into the rows below it. Both coordinates are range-checked before
// they are combined so that large values cannot wrap into a valid index.
func (b *Scrollback) index(col, row uint32) (uint32, bool) {
	if row >= MaxLines || col >= b.Len() {
		return 0, false
	}

	index := row*console.Width + col
	return index, index < b.Len()
}
