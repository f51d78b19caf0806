package main

import "kterm/kernel/kmain"

// main makes a dummy call to the actual kernel main entrypoint function. It
// is intentionally defined to prevent the Go compiler from optimizing away the
// real kernel code.
//
// The rt0 code calls kmain.Kmain directly; main is never invoked on the
// target and Kmain is not expected to return.
func main() {
	kmain.Kmain()
}
