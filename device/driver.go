package device

import (
	"io"
	"kterm/kernel"
)

// Driver is an interface implemented by all drivers.
type Driver interface {
	// DriverName returns the name of the driver.
	DriverName() string

	// DriverVersion returns the driver version.
	DriverVersion() (major uint16, minor uint16, patch uint16)

	// DriverInit initializes the device driver. If the driver init code
	// needs to log some output, it can use the supplied io.Writer in
	// conjunction with a call to kfmt.Fprintf.
	DriverInit(io.Writer) *kernel.Error
}

// ProbeFn is a function that scans for the presence of a particular
// piece of hardware and returns a driver for it.
type ProbeFn func() Driver

// DetectOrder specifies when a driver's probe function will be invoked
// relative to the other registered drivers.
type DetectOrder int8

const (
	// DetectOrderEarly specifies that the driver must be probed before
	// any other driver.
	DetectOrderEarly DetectOrder = -128

	// DetectOrderBeforeConsole specifies that the driver must be probed
	// before the console frame is detected.
	DetectOrderBeforeConsole DetectOrder = -1

	// DetectOrderConsole specifies that the driver provides the console
	// frame the terminals render into.
	DetectOrderConsole DetectOrder = 0

	// DetectOrderLast specifies that the driver must be probed after all
	// other drivers.
	DetectOrderLast DetectOrder = 127
)

// DriverInfo describes a driver that can be probed by the hal package.
type DriverInfo struct {
	// Order specifies at which stage of the hardware detection process
	// this driver will be probed.
	Order DetectOrder

	// Probe is a function that checks for the presence of the hardware
	// supported by the driver and returns a Driver instance for it.
	Probe ProbeFn
}

// DriverInfoList is a list of registered drivers that implements
// sort.Interface.
type DriverInfoList []*DriverInfo

// Len returns the length of the driver info list.
func (l DriverInfoList) Len() int { return len(l) }

// Swap exchanges 2 elements in the driver info list.
func (l DriverInfoList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less compares 2 elements of the driver info list by their detect order.
func (l DriverInfoList) Less(i, j int) bool { return l[i].Order < l[j].Order }

var registeredDrivers DriverInfoList

// RegisterDriver adds the supplied driver info to the list of drivers that
// will be probed by the hal. Drivers call it from an init() block.
func RegisterDriver(info *DriverInfo) {
	registeredDrivers = append(registeredDrivers, info)
}

// DriverList returns the list of registered drivers.
func DriverList() DriverInfoList {
	return registeredDrivers
}
