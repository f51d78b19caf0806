package kernel

// Error is the error type shared by the terminal, driver and hal packages.
// Values are declared once as package-level pointers (see tty.errOutOfBounds
// or hal.errNoFrame) and returned as-is, so reporting an error never needs
// the Go allocator.
type Error struct {
	// Module names the package or driver that raised the error, e.g. "tty",
	// "hal" or "vga_text_frame". kfmt.Panic prints it between brackets.
	Module string

	// Message is a short lower-case description without trailing newline.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
