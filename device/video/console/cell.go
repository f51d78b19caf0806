package console

// The dimensions of the VGA text mode (mode 0x3) screen in characters.
const (
	Width  = 80
	Height = 25
)

// Color is one of the 16 EGA text-mode colors.
type Color uint8

// The EGA palette in attribute order.
const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	Yellow
	White
)

var colorNames = [...]string{
	"black", "blue", "green", "cyan", "red", "magenta", "brown", "light-gray",
	"dark-gray", "light-blue", "light-green", "light-cyan", "light-red",
	"light-magenta", "yellow", "white",
}

// String returns the lower-case name of the color.
func (c Color) String() string {
	return colorNames[c&0xf]
}

// ColorByName looks up a color by the name returned by its String method.
func ColorByName(name string) (Color, bool) {
	for i, n := range colorNames {
		if n == name {
			return Color(i), true
		}
	}
	return Black, false
}

// Attr packs a foreground color (low nibble) and a background color (high
// nibble) into the attribute byte of a text-mode cell.
type Attr uint8

// DefaultAttr renders white text on a black background.
const DefaultAttr = Attr(White) | Attr(Black)<<4

// MakeAttr packs fg and bg into an attribute byte.
func MakeAttr(fg, bg Color) Attr {
	return Attr(fg&0xf) | Attr(bg&0xf)<<4
}

// Foreground returns the foreground color.
func (a Attr) Foreground() Color { return Color(a & 0xf) }

// Background returns the background color.
func (a Attr) Background() Color { return Color(a >> 4) }

// WithForeground returns a copy of a with its foreground replaced by fg.
func (a Attr) WithForeground(fg Color) Attr {
	return a&0xf0 | Attr(fg&0xf)
}

// WithBackground returns a copy of a with its background replaced by bg.
func (a Attr) WithBackground(bg Color) Attr {
	return a&0x0f | Attr(bg&0xf)<<4
}

// Cell is a single text-mode character: the character code in the low byte
// and its attribute in the high byte, exactly as laid out in the hardware
// framebuffer.
type Cell uint16

// EmptyCell marks a position that has never been written.
const EmptyCell Cell = 0

// MakeCell combines a character and an attribute into a Cell.
func MakeCell(ch byte, attr Attr) Cell {
	return Cell(attr)<<8 | Cell(ch)
}

// Char returns the character code of the cell.
func (c Cell) Char() byte { return byte(c) }

// Attr returns the attribute byte of the cell.
func (c Cell) Attr() Attr { return Attr(c >> 8) }

// IsEmpty returns true if the cell has never been written.
func (c Cell) IsEmpty() bool { return c.Char() == 0 }
