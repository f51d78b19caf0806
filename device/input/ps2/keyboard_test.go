package ps2

import (
	"bytes"
	"kterm/device"
	"kterm/device/input"
	"kterm/kernel/cpu"
	"testing"
)

// mockController feeds queued scancodes through portReadByteFn.
type mockController struct {
	queue []uint8
}

func (c *mockController) readByte(port uint16) uint8 {
	switch port {
	case statusPort:
		if len(c.queue) == 0 {
			return 0
		}
		return statusOutputFull
	case dataPort:
		if len(c.queue) == 0 {
			return 0
		}
		code := c.queue[0]
		c.queue = c.queue[1:]
		return code
	}
	return 0xff
}

func TestReadIfReady(t *testing.T) {
	defer func() {
		portReadByteFn = cpu.PortReadByte
	}()

	specs := []struct {
		codes   []uint8
		expKeys []input.Key
	}{
		// nothing pending
		{nil, nil},
		// make + break for 'h', 'i'
		{[]uint8{0x23, 0xa3, 0x17, 0x97}, []input.Key{input.Printable('h'), input.Printable('i')}},
		// left shift held while pressing '1' and 'a'
		{
			[]uint8{0x2a, 0x02, 0x82, 0x1e, 0x9e, 0xaa, 0x1e},
			[]input.Key{input.Printable('!'), input.Printable('A'), input.Printable('a')},
		},
		// right shift
		{[]uint8{0x36, 0x35, 0xb6, 0x35}, []input.Key{input.Printable('?'), input.Printable('/')}},
		// special keys
		{
			[]uint8{0x0e, 0x0f, 0x1c, 0x39},
			[]input.Key{{Kind: input.KeyBackspace}, {Kind: input.KeyTab}, {Kind: input.KeyEnter}, input.Printable(' ')},
		},
		// extended arrows with fake shifts around them
		{
			[]uint8{0xe0, 0x2a, 0xe0, 0x48, 0xe0, 0xc8, 0xe0, 0xaa, 0xe0, 0x50, 0xe0, 0x4b, 0xe0, 0x4d},
			[]input.Key{
				{Kind: input.KeyArrowUp}, {Kind: input.KeyArrowDown},
				{Kind: input.KeyArrowLeft}, {Kind: input.KeyArrowRight},
			},
		},
		// keypad arrows without the prefix
		{[]uint8{0x48, 0x4b}, []input.Key{{Kind: input.KeyArrowUp}, {Kind: input.KeyArrowLeft}}},
		// function keys
		{[]uint8{0x3b, 0x3e, 0x58}, []input.Key{input.Function(1), input.Function(4), input.Function(12)}},
		// unmapped codes (escape, ctrl, extended keypad slash)
		{[]uint8{0x01, 0x1d, 0xe0, 0x35}, nil},
	}

	for specIndex, spec := range specs {
		ctrl := &mockController{queue: append([]uint8(nil), spec.codes...)}
		portReadByteFn = ctrl.readByte

		var (
			kb   = NewKeyboard()
			keys []input.Key
		)
		for len(ctrl.queue) != 0 {
			if key, ok := kb.ReadIfReady(); ok {
				keys = append(keys, key)
			}
		}

		if _, ok := kb.ReadIfReady(); ok {
			t.Errorf("[spec %d] expected ReadIfReady to return false with an empty controller", specIndex)
		}

		if len(keys) != len(spec.expKeys) {
			t.Errorf("[spec %d] expected %d keys; got %d (%v)", specIndex, len(spec.expKeys), len(keys), keys)
			continue
		}

		for i, exp := range spec.expKeys {
			if keys[i] != exp {
				t.Errorf("[spec %d] key %d: expected %+v; got %+v", specIndex, i, exp, keys[i])
			}
		}
	}
}

func TestKeyboardDriverInterface(t *testing.T) {
	defer func() {
		portReadByteFn = cpu.PortReadByte
	}()

	var dev device.Driver = NewKeyboard()

	if dev.DriverName() == "" {
		t.Fatal("DriverName() returned an empty string")
	}

	if major, minor, patch := dev.DriverVersion(); major+minor+patch == 0 {
		t.Fatal("DriverVersion() returned an invalid version number")
	}

	t.Run("init drains stale bytes", func(t *testing.T) {
		ctrl := &mockController{queue: []uint8{0xfa, 0xaa}}
		portReadByteFn = ctrl.readByte

		var buf bytes.Buffer
		if err := dev.DriverInit(&buf); err != nil {
			t.Fatal(err)
		}

		if len(ctrl.queue) != 0 {
			t.Fatalf("expected DriverInit to drain the controller; %d bytes left", len(ctrl.queue))
		}

		if exp, got := "discarded 2 stale bytes\n", buf.String(); got != exp {
			t.Fatalf("expected init output %q; got %q", exp, got)
		}
	})

	t.Run("init gives up on a stuck controller", func(t *testing.T) {
		var reads int
		portReadByteFn = func(port uint16) uint8 {
			reads++
			return statusOutputFull
		}

		if err := dev.DriverInit(nil); err != nil {
			t.Fatal(err)
		}

		if reads > 2*maxDrain+1 {
			t.Fatalf("expected DriverInit to stop after %d bytes; performed %d reads", maxDrain, reads)
		}
	})
}

func TestKeyboardProbe(t *testing.T) {
	if _, ok := probeForKeyboard().(*Keyboard); !ok {
		t.Fatal("expected probeForKeyboard to return a *Keyboard")
	}
}
