package tty

import (
	"io"
	"kterm/device/input"
	"kterm/device/video/console"
)

const (
	// MaxLines is the number of rows kept by the scrollback buffer,
	// including the console.Height rows that are visible.
	MaxLines = 100

	// LineBreak is the character stored at the end of a row terminated by
	// an explicit new line. It is distinct from the zero character that
	// marks cells that were never written.
	LineBreak byte = 0xff

	// DefaultTabWidth defines the number of spaces that tabs expand to.
	DefaultTabWidth = 4

	// maxLineOffset is the largest scroll position that still shows
	// console.Height buffer rows.
	maxLineOffset = MaxLines - console.Height
)

// The default cursor shape covers the bottom scanlines of the character cell.
const (
	cursorStartScanline uint8 = 0x0d
	cursorEndScanline   uint8 = 0x0f
)

// State defines the supported terminal state values.
type State uint8

const (
	// StateInactive marks the terminal as inactive. Edits only update the
	// terminal's buffer; the frame and hardware cursor are left alone.
	StateInactive State = iota

	// StateActive marks the terminal as active. Every edit is also
	// flushed to the attached frame.
	StateActive
)

// Direction selects where MoveCursor moves the cursor.
type Direction uint8

// The supported cursor directions.
const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// Device is implemented by objects that can be used as a terminal device.
type Device interface {
	io.Writer
	io.ByteWriter

	// AttachTo connects the terminal to a frame and to the port used to
	// program the hardware cursor.
	AttachTo(console.Frame, console.PortWriter)

	// State returns the terminal's state.
	State() State

	// SetState updates the terminal's state.
	SetState(State)

	// CursorPosition returns the 0-based cursor column and row within the
	// visible screen.
	CursorPosition() (uint32, uint32)

	// HandleKey applies the edit associated with a decoded key.
	HandleKey(input.Key)
}
