// Package cpu exposes the handful of privileged instructions that the display
// and keyboard drivers need. The function bodies live in cpu_amd64.s; other
// architectures get the inert versions in cpu_portable.go so that host tools
// linking the terminal code still build.
package cpu

// Halt stops instruction execution.
func Halt()

// PortWriteByte writes a uint8 value to the requested port.
func PortWriteByte(port uint16, val uint8)

// PortReadByte reads a uint8 value from the requested port.
func PortReadByte(port uint16) uint8
