package kmain

import (
	"kterm/kernel/hal"
	"kterm/kernel/kfmt"

	// Drivers register themselves with the hal when initialized.
	_ "kterm/device/input/ps2"
	_ "kterm/device/video/console"
)

var (
	// The following functions are mocked by tests.
	detectHardwareFn = hal.DetectHardware
	readKeyFn        = hal.ReadKey
)

// Kmain is the only Go symbol that is visible (exported) from the rt0
// initialization code. It is invoked by the rt0 assembly code once a minimal
// Go environment has been set up and never returns: after the console is
// initialized the kernel keeps polling the keyboard and forwards each key to
// the active terminal.
//
//go:noinline
func Kmain() {
	initConsole()

	for {
		pollKeyboard()
	}
}

// initConsole detects the available hardware and greets the user on the
// active terminal.
func initConsole() {
	detectHardwareFn()
	kfmt.Printf("kterm: %d terminals available, use F1-F%d to switch\n", hal.NumTerminals, hal.NumTerminals)
}

// pollKeyboard consumes at most one pending key and applies it.
func pollKeyboard() {
	if key, ok := readKeyFn(); ok {
		hal.DispatchKey(key)
	}
}
