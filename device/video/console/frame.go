package console

// Frame is a sink for the cells of a Width x Height text screen. Cells are
// addressed by their linear index (row*Width + col). Implementations silently
// ignore indices outside the screen.
type Frame interface {
	// WriteCell stores c at the specified index.
	WriteCell(index uint32, c Cell)

	// ReadCell returns the cell at the specified index.
	ReadCell(index uint32) Cell
}

// MemFrame is a Frame backed by regular memory. It stands in for the
// hardware framebuffer in tests and before a display is detected.
type MemFrame struct {
	cells [Width * Height]Cell
}

// WriteCell implements Frame.
func (f *MemFrame) WriteCell(index uint32, c Cell) {
	if index >= uint32(len(f.cells)) {
		return
	}
	f.cells[index] = c
}

// ReadCell implements Frame.
func (f *MemFrame) ReadCell(index uint32) Cell {
	if index >= uint32(len(f.cells)) {
		return EmptyCell
	}
	return f.cells[index]
}

// Row returns the characters stored in the specified row, stopping at the
// first empty cell.
func (f *MemFrame) Row(row uint32) string {
	if row >= Height {
		return ""
	}

	var (
		buf   [Width]byte
		n     int
		start = row * Width
	)
	for ; n < Width && !f.cells[start+uint32(n)].IsEmpty(); n++ {
		buf[n] = f.cells[start+uint32(n)].Char()
	}
	return string(buf[:n])
}
