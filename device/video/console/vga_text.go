package console

import (
	"io"
	"kterm/device"
	"kterm/kernel"
	"kterm/kernel/kfmt"
	"unsafe"
)

// VgaTextFramePhysAddr is the physical address of the color text-mode
// framebuffer.
const VgaTextFramePhysAddr uintptr = 0xb8000

var errFrameNotMapped = &kernel.Error{Module: "vga_text_frame", Message: "framebuffer could not be mapped"}

// VgaTextFrame is a Frame that stores cells directly into the VGA text-mode
// framebuffer. Each framebuffer entry is a uint16 holding the character code
// in its low byte and the attribute in its high byte, which is exactly the
// Cell layout.
//
// The framebuffer is only reachable while the kernel runs with the first
// megabyte identity-mapped. The kernel is the only writer; nothing else may
// hold a reference to the mapped region.
type VgaTextFrame struct {
	fbPhysAddr uintptr
	fb         []uint16
}

// NewVgaTextFrame creates a frame for the framebuffer located at fbPhysAddr.
// The framebuffer is mapped when the driver is initialized.
func NewVgaTextFrame(fbPhysAddr uintptr) *VgaTextFrame {
	return &VgaTextFrame{fbPhysAddr: fbPhysAddr}
}

// WriteCell implements Frame.
func (f *VgaTextFrame) WriteCell(index uint32, c Cell) {
	if index >= uint32(len(f.fb)) {
		return
	}
	f.fb[index] = uint16(c)
}

// ReadCell implements Frame.
func (f *VgaTextFrame) ReadCell(index uint32) Cell {
	if index >= uint32(len(f.fb)) {
		return EmptyCell
	}
	return Cell(f.fb[index])
}

// DriverName returns the name of this driver.
func (f *VgaTextFrame) DriverName() string {
	return "vga_text_frame"
}

// DriverVersion returns the version of this driver.
func (f *VgaTextFrame) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit maps the framebuffer so cells can be written to it.
func (f *VgaTextFrame) DriverInit(w io.Writer) *kernel.Error {
	f.fb = mapFramebufferFn(f.fbPhysAddr, Width*Height)
	if f.fb == nil {
		return errFrameNotMapped
	}

	kfmt.Fprintf(w, "mapped %dx%d framebuffer at 0x%x\n", Width, Height, f.fbPhysAddr)
	return nil
}

// overlayFramebuffer returns a slice of cells uint16 entries overlaid on top
// of the memory region starting at physAddr.
func overlayFramebuffer(physAddr uintptr, cells int) []uint16 {
	if physAddr == 0 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(physAddr)), cells)
}

// probeForVgaTextFrame returns the driver for the color text-mode
// framebuffer.
func probeForVgaTextFrame() device.Driver {
	return NewVgaTextFrame(VgaTextFramePhysAddr)
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderConsole,
		Probe: probeForVgaTextFrame,
	})
}
