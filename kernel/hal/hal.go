// Package hal detects the available hardware and multiplexes a fixed pool of
// terminals onto the detected console frame.
package hal

import (
	"bytes"
	"kterm/device"
	"kterm/device/input"
	"kterm/device/tty"
	"kterm/device/video/console"
	"kterm/kernel"
	"kterm/kernel/cpu"
	"kterm/kernel/kfmt"
	"sort"
)

// NumTerminals is the number of terminals that share the console frame.
const NumTerminals = 4

// managedDevices contains the devices discovered by the HAL.
type managedDevices struct {
	activeFrame console.Frame
	keySource   input.Source

	// activeDrivers tracks all initialized device drivers.
	activeDrivers []device.Driver
}

var (
	devices managedDevices
	strBuf  bytes.Buffer

	// The terminal pool is statically allocated; only one terminal is
	// active at any time.
	terminals      [NumTerminals]tty.Editor
	activeTerminal int

	// The following functions are mocked by tests.
	driverListFn    = device.DriverList
	portWriteByteFn = cpu.PortWriteByte
	panicFn         = kfmt.Panic

	errNoFrame         = &kernel.Error{Module: "hal", Message: "no console frame detected"}
	errInvalidTerminal = &kernel.Error{Module: "hal", Message: "invalid terminal index"}
)

// DetectHardware probes for hardware devices, initializes the appropriate
// drivers and attaches the terminal pool to the first detected console frame.
func DetectHardware() {
	// Get driver list and sort by detection priority
	drivers := driverListFn()
	sort.Sort(drivers)

	probe(drivers)

	if devices.activeFrame == nil {
		panicFn(errNoFrame)
		return
	}

	AttachTerminals(devices.activeFrame, portWriteByteFn)
}

// AttachTerminals resets every terminal in the pool and connects it to frame
// and ports. The first terminal is activated and installed as the kfmt output
// sink.
func AttachTerminals(frame console.Frame, ports console.PortWriter) {
	for i := range terminals {
		terminals[i] = tty.Editor{}
		terminals[i].AttachTo(frame, ports)
	}

	activeTerminal = 0
	terminals[activeTerminal].SetState(tty.StateActive)
	kfmt.SetOutputSink(&terminals[activeTerminal])
}

// ActiveTerminal returns the terminal currently attached to the screen.
func ActiveTerminal() *tty.Editor {
	return &terminals[activeTerminal]
}

// Terminal returns terminal index of the pool or nil if index is out of
// range.
func Terminal(index int) *tty.Editor {
	if index < 0 || index >= NumTerminals {
		return nil
	}
	return &terminals[index]
}

// ActiveTerminalIndex returns the index of the active terminal.
func ActiveTerminalIndex() int {
	return activeTerminal
}

// SwitchTerminal makes terminal index the active one. The previously active
// terminal keeps its contents and can be switched back to later.
func SwitchTerminal(index int) *kernel.Error {
	if index < 0 || index >= NumTerminals {
		return errInvalidTerminal
	}

	if index == activeTerminal {
		return nil
	}

	terminals[activeTerminal].SetState(tty.StateInactive)
	activeTerminal = index
	terminals[activeTerminal].SetState(tty.StateActive)
	return nil
}

// DispatchKey applies a decoded key. Function keys F1 to F<NumTerminals>
// select the active terminal; every other key is an edit for the active
// terminal.
func DispatchKey(key input.Key) {
	if key.Kind != input.KeyFunction {
		ActiveTerminal().HandleKey(key)
		return
	}

	if key.Fn >= 1 && int(key.Fn) <= NumTerminals {
		_ = SwitchTerminal(int(key.Fn) - 1)
	}
}

// ReadKey returns the next key from the detected keyboard without blocking.
// It returns false if no key is pending or no keyboard was detected.
func ReadKey() (input.Key, bool) {
	if devices.keySource == nil {
		return input.Key{}, false
	}
	return devices.keySource.ReadIfReady()
}

// probe executes the probe function for each driver and invokes
// onDriverInit for each successfully initialized driver.
func probe(driverInfoList device.DriverInfoList) {
	var w = kfmt.PrefixWriter{Sink: kfmt.GetOutputSink()}

	for _, info := range driverInfoList {
		drv := info.Probe()
		if drv == nil {
			continue
		}

		strBuf.Reset()
		major, minor, patch := drv.DriverVersion()
		kfmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)
		w.Prefix = strBuf.Bytes()

		if err := drv.DriverInit(&w); err != nil {
			kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
			continue
		}

		kfmt.Fprintf(&w, "initialized\n")
		onDriverInit(drv)
		devices.activeDrivers = append(devices.activeDrivers, drv)
	}
}

// onDriverInit is invoked by probe() whenever a piece of hardware is detected
// and successfully initialized. The first frame and the first key source
// found are adopted.
func onDriverInit(drv device.Driver) {
	if frame, ok := drv.(console.Frame); ok && devices.activeFrame == nil {
		devices.activeFrame = frame
	}

	if src, ok := drv.(input.Source); ok && devices.keySource == nil {
		devices.keySource = src
	}
}
