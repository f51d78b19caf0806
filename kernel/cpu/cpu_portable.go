//go:build !amd64

package cpu

// Halt blocks the calling goroutine forever.
func Halt() {
	select {}
}

// PortWriteByte discards the value; there are no I/O ports to write to.
func PortWriteByte(port uint16, val uint8) {}

// PortReadByte always returns 0.
func PortReadByte(port uint16) uint8 {
	return 0
}
