package hal

import (
	"bytes"
	"io"
	"kterm/device"
	"kterm/device/input"
	"kterm/device/tty"
	"kterm/device/video/console"
	"kterm/kernel"
	"kterm/kernel/cpu"
	"kterm/kernel/kfmt"
	"strings"
	"testing"
)

type mockFrame struct {
	console.MemFrame
}

func (f *mockFrame) DriverName() string                      { return "mock_frame" }
func (f *mockFrame) DriverVersion() (uint16, uint16, uint16) { return 1, 2, 3 }
func (f *mockFrame) DriverInit(_ io.Writer) *kernel.Error    { return nil }

type mockKeyboard struct {
	queue []input.Key
}

func (kb *mockKeyboard) DriverName() string                      { return "mock_kbd" }
func (kb *mockKeyboard) DriverVersion() (uint16, uint16, uint16) { return 0, 1, 0 }
func (kb *mockKeyboard) DriverInit(w io.Writer) *kernel.Error {
	kfmt.Fprintf(w, "queued %d keys\n", len(kb.queue))
	return nil
}

func (kb *mockKeyboard) ReadIfReady() (input.Key, bool) {
	if len(kb.queue) == 0 {
		return input.Key{}, false
	}
	key := kb.queue[0]
	kb.queue = kb.queue[1:]
	return key, true
}

type failingDriver struct{}

func (failingDriver) DriverName() string                      { return "broken" }
func (failingDriver) DriverVersion() (uint16, uint16, uint16) { return 0, 0, 1 }
func (failingDriver) DriverInit(w io.Writer) *kernel.Error {
	return &kernel.Error{Module: "broken", Message: "device not responding"}
}

func resetHAL() {
	devices = managedDevices{}
	terminals = [NumTerminals]tty.Editor{}
	activeTerminal = 0
	driverListFn = device.DriverList
	portWriteByteFn = cpu.PortWriteByte
	panicFn = kfmt.Panic

	// Drop any captured early output
	kfmt.SetOutputSink(io.Discard)
	kfmt.SetOutputSink(nil)
}

func TestProbe(t *testing.T) {
	defer resetHAL()
	resetHAL()

	var (
		buf   bytes.Buffer
		frame = &mockFrame{}
		kbd   = &mockKeyboard{}
	)
	kfmt.SetOutputSink(&buf)

	probe(device.DriverInfoList{
		{Probe: func() device.Driver { return nil }},
		{Probe: func() device.Driver { return failingDriver{} }},
		{Probe: func() device.Driver { return kbd }},
		{Probe: func() device.Driver { return frame }},
		{Probe: func() device.Driver { return &mockFrame{} }},
	})

	exp := "[hal] broken(0.0.1): init failed: device not responding\n" +
		"[hal] mock_kbd(0.1.0): queued 0 keys\n" +
		"[hal] mock_kbd(0.1.0): initialized\n" +
		"[hal] mock_frame(1.2.3): initialized\n" +
		"[hal] mock_frame(1.2.3): initialized\n"
	if got := buf.String(); got != exp {
		t.Fatalf("expected probe output:\n%q\ngot:\n%q", exp, got)
	}

	if devices.activeFrame != console.Frame(frame) {
		t.Fatal("expected the first detected frame to be adopted")
	}

	if devices.keySource != input.Source(kbd) {
		t.Fatal("expected the keyboard to be adopted as key source")
	}

	if exp, got := 3, len(devices.activeDrivers); got != exp {
		t.Fatalf("expected %d active drivers; got %d", exp, got)
	}
}

func TestDetectHardware(t *testing.T) {
	defer resetHAL()
	resetHAL()

	var (
		frame      = &mockFrame{}
		kbd        = &mockKeyboard{queue: []input.Key{input.Printable('x')}}
		portWrites int
	)

	driverListFn = func() device.DriverInfoList {
		return device.DriverInfoList{
			{Order: device.DetectOrderConsole, Probe: func() device.Driver { return frame }},
			{Order: device.DetectOrderBeforeConsole, Probe: func() device.Driver { return kbd }},
		}
	}
	portWriteByteFn = func(_ uint16, _ uint8) { portWrites++ }
	panicFn = func(e interface{}) {
		t.Fatalf("unexpected call to panic: %v", e)
	}

	DetectHardware()

	if got := ActiveTerminal(); got != &terminals[0] {
		t.Fatal("expected terminal 0 to be active")
	}

	for i := range terminals {
		exp := tty.StateInactive
		if i == 0 {
			exp = tty.StateActive
		}
		if got := terminals[i].State(); got != exp {
			t.Errorf("expected terminal %d state to be %d; got %d", i, exp, got)
		}
	}

	// The probe log was captured early and replayed to the active terminal
	if exp, got := "[hal] mock_kbd(0.1.0): queued 1 keys\xff", frame.Row(0); got != exp {
		t.Fatalf("expected frame row 0 to be %q; got %q", exp, got)
	}

	if portWrites == 0 {
		t.Fatal("expected the hardware cursor to be programmed")
	}

	key, ok := ReadKey()
	if !ok || key != input.Printable('x') {
		t.Fatalf("expected to read the queued key; got %+v (ok: %t)", key, ok)
	}

	if _, ok = ReadKey(); ok {
		t.Fatal("expected no more pending keys")
	}
}

func TestDetectHardwareWithoutFrame(t *testing.T) {
	defer resetHAL()
	resetHAL()

	var panicErr interface{}
	driverListFn = func() device.DriverInfoList { return nil }
	panicFn = func(e interface{}) { panicErr = e }

	DetectHardware()

	if panicErr != interface{}(errNoFrame) {
		t.Fatalf("expected panic with errNoFrame; got %v", panicErr)
	}

	if _, ok := ReadKey(); ok {
		t.Fatal("expected ReadKey to fail without a keyboard")
	}
}

func TestSwitchTerminal(t *testing.T) {
	defer resetHAL()
	resetHAL()

	frame := &mockFrame{}
	AttachTerminals(frame, func(_ uint16, _ uint8) {})

	kfmt.Printf("first")
	if exp, got := "first", frame.Row(0); got != exp {
		t.Fatalf("expected frame row 0 to be %q; got %q", exp, got)
	}

	if err := SwitchTerminal(1); err != nil {
		t.Fatal(err)
	}
	if got := ActiveTerminalIndex(); got != 1 {
		t.Fatalf("expected terminal 1 to be active; got %d", got)
	}
	if got := frame.Row(0); got != "" {
		t.Fatalf("expected the frame to show the empty terminal 1; got %q", got)
	}

	ActiveTerminal().HandleKey(input.Printable('2'))

	// kfmt output stays on terminal 0 while it is hidden
	kfmt.Printf(" second")
	if exp, got := "2", frame.Row(0); got != exp {
		t.Fatalf("expected frame row 0 to be %q; got %q", exp, got)
	}

	if err := SwitchTerminal(0); err != nil {
		t.Fatal(err)
	}
	if exp, got := "first second", frame.Row(0); !strings.HasPrefix(got, exp) {
		t.Fatalf("expected frame row 0 to be %q; got %q", exp, got)
	}

	for _, index := range []int{-1, NumTerminals} {
		if err := SwitchTerminal(index); err != errInvalidTerminal {
			t.Errorf("expected SwitchTerminal(%d) to return errInvalidTerminal; got %v", index, err)
		}
	}

	if err := SwitchTerminal(0); err != nil {
		t.Fatalf("expected switching to the active terminal to succeed; got %v", err)
	}
}

func TestDispatchKey(t *testing.T) {
	defer resetHAL()
	resetHAL()

	frame := &mockFrame{}
	AttachTerminals(frame, nil)

	specs := []struct {
		key         input.Key
		expTerminal int
		expRow0     string
	}{
		{input.Printable('a'), 0, "a"},
		{input.Function(3), 2, ""},
		{input.Printable('c'), 2, "c"},
		{input.Function(NumTerminals + 1), 2, "c"},
		{input.Function(0), 2, "c"},
		{input.Function(1), 0, "a"},
	}

	for specIndex, spec := range specs {
		DispatchKey(spec.key)

		if got := ActiveTerminalIndex(); got != spec.expTerminal {
			t.Errorf("[spec %d] expected terminal %d to be active; got %d", specIndex, spec.expTerminal, got)
		}
		if got := frame.Row(0); got != spec.expRow0 {
			t.Errorf("[spec %d] expected row 0 to be %q; got %q", specIndex, spec.expRow0, got)
		}
	}

	if Terminal(2) != &terminals[2] || Terminal(-1) != nil || Terminal(NumTerminals) != nil {
		t.Fatal("expected Terminal to return pool members for valid indices only")
	}
}
