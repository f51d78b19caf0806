package console

// CRTC registers used to control the text-mode cursor. The CRTC is programmed
// by writing a register index to CRTCIndexPort followed by the register value
// to CRTCDataPort.
const (
	CRTCIndexPort uint16 = 0x3d4
	CRTCDataPort  uint16 = 0x3d5

	CRTCCursorStart  uint8 = 0x0a
	CRTCCursorEnd    uint8 = 0x0b
	CRTCLocationHigh uint8 = 0x0e
	CRTCLocationLow  uint8 = 0x0f

	// CursorDisableBit hides the cursor when set in CRTCCursorStart.
	CursorDisableBit uint8 = 0x20

	// scanlineMask limits the start/end registers to their 5-bit range.
	scanlineMask uint8 = 0x1f
)

// PortWriter writes a byte to an I/O port. The kernel uses cpu.PortWriteByte;
// tests and the host simulator substitute their own.
type PortWriter func(port uint16, val uint8)

// Cursor drives the hardware text-mode cursor. It keeps no state besides the
// port used to reach the CRTC; every call is a fire-and-forget register
// update.
type Cursor struct {
	ports PortWriter
}

// NewCursor returns a Cursor that programs the CRTC through ports.
func NewCursor(ports PortWriter) Cursor {
	return Cursor{ports: ports}
}

// UpdatePos moves the hardware cursor to (col, row). Positions outside the
// visible screen are ignored.
func (c Cursor) UpdatePos(col, row uint32) {
	if col >= Width || row >= Height {
		return
	}

	pos := row*Width + col
	c.write(CRTCLocationLow, uint8(pos&0xff))
	c.write(CRTCLocationHigh, uint8((pos>>8)&0xff))
}

// Resize sets the first and last scanline covered by the cursor. Scanlines
// are truncated to the 0-31 range the registers can hold.
func (c Cursor) Resize(start, end uint8) {
	c.write(CRTCCursorStart, start&scanlineMask)
	c.write(CRTCCursorEnd, end&scanlineMask)
}

// Disable hides the hardware cursor until the next call to Resize.
func (c Cursor) Disable() {
	c.write(CRTCCursorStart, CursorDisableBit)
}

func (c Cursor) write(index, val uint8) {
	if c.ports == nil {
		return
	}

	c.ports(CRTCIndexPort, index)
	c.ports(CRTCDataPort, val)
}
