// Package ps2 implements a polling driver for the PS/2 keyboard controller.
package ps2

import (
	"io"
	"kterm/device"
	"kterm/device/input"
	"kterm/kernel"
	"kterm/kernel/cpu"
	"kterm/kernel/kfmt"
)

const (
	dataPort   uint16 = 0x60
	statusPort uint16 = 0x64

	// statusOutputFull is set while a byte is waiting in the output buffer.
	statusOutputFull uint8 = 1 << 0

	// maxDrain bounds the number of stale bytes discarded at init time.
	maxDrain = 16
)

var (
	// portReadByteFn is mocked by tests.
	portReadByteFn = cpu.PortReadByte
)

// Keyboard decodes scancode set 1 bytes read from the PS/2 controller. It
// tracks the shift keys and the 0xe0 extended-code prefix across reads.
type Keyboard struct {
	leftShift, rightShift bool
	extended              bool
}

// NewKeyboard returns a keyboard with no modifiers held.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// ReadIfReady returns the next decoded key if the controller has a byte
// waiting. It never blocks; bytes that do not decode to a key (key releases,
// prefixes, unmapped keys) yield false.
func (kb *Keyboard) ReadIfReady() (input.Key, bool) {
	if portReadByteFn(statusPort)&statusOutputFull == 0 {
		return input.Key{}, false
	}

	return kb.decode(portReadByteFn(dataPort))
}

// decode updates the modifier state with code and translates it to a key.
func (kb *Keyboard) decode(code uint8) (input.Key, bool) {
	if code == scancodeExtended {
		kb.extended = true
		return input.Key{}, false
	}

	extended := kb.extended
	kb.extended = false

	released := code&scancodeReleased != 0
	code &^= scancodeReleased

	switch code {
	case scancodeLeftShift, scancodeRightShift:
		// e0 2a / e0 aa are fake shifts emitted around extended keys.
		if extended {
			return input.Key{}, false
		}
		if code == scancodeLeftShift {
			kb.leftShift = !released
		} else {
			kb.rightShift = !released
		}
		return input.Key{}, false
	}

	if released {
		return input.Key{}, false
	}

	if int(code) < len(specialKeys) && specialKeys[code].Kind != input.KeyPrintable {
		return specialKeys[code], true
	}

	if extended || int(code) >= len(scancodeToASCII) {
		return input.Key{}, false
	}

	ch := scancodeToASCII[code]
	if kb.leftShift || kb.rightShift {
		ch = scancodeToShiftedASCII[code]
	}
	if ch == 0 {
		return input.Key{}, false
	}

	return input.Printable(ch), true
}

// DriverName returns the name of this driver.
func (kb *Keyboard) DriverName() string {
	return "ps2_keyboard"
}

// DriverVersion returns the version of this driver.
func (kb *Keyboard) DriverVersion() (uint16, uint16, uint16) {
	return 0, 1, 0
}

// DriverInit discards any bytes left in the controller output buffer by the
// firmware so the first ReadIfReady call sees a fresh key.
func (kb *Keyboard) DriverInit(w io.Writer) *kernel.Error {
	var drained int
	for ; drained < maxDrain && portReadByteFn(statusPort)&statusOutputFull != 0; drained++ {
		portReadByteFn(dataPort)
	}

	if drained != 0 {
		kfmt.Fprintf(w, "discarded %d stale bytes\n", drained)
	}
	return nil
}

func probeForKeyboard() device.Driver {
	return NewKeyboard()
}

func init() {
	device.RegisterDriver(&device.DriverInfo{
		Order: device.DetectOrderBeforeConsole,
		Probe: probeForKeyboard,
	})
}
