package platform

import "time"

// DeviceType distinguishes the two USB device shapes the core cares about.
type DeviceType int

const (
	// DeviceTypeHID is a USB HID function (bootloader, raw HID, or Seremu).
	DeviceTypeHID DeviceType = iota
	// DeviceTypeSerial is a USB CDC-ACM serial function.
	DeviceTypeSerial
)

// DeviceStatus is reported by the adapter's list/refresh callbacks.
type DeviceStatus int

const (
	// DeviceStatusOnline means the device is present and usable.
	DeviceStatusOnline DeviceStatus = iota
	// DeviceStatusDisconnected means the device has been unplugged.
	DeviceStatusDisconnected
)

// HandleMode selects read/write access when opening a device.
type HandleMode int

const (
	HandleModeRead HandleMode = iota
	HandleModeWrite
	HandleModeReadWrite
)

// SerialConfig configures a CDC-ACM serial handle.
type SerialConfig struct {
	Baudrate int
}

// Device is a pure accessor surface over one USB endpoint-set as reported by
// the platform layer. Implementations are opaque handles owned by the
// adapter; this module never constructs one directly.
type Device interface {
	VendorID() uint16
	ProductID() uint16
	Type() DeviceType
	Location() string
	SerialNumberString() string
	ProductString() string
	HIDUsagePage() uint16
	HIDUsage() uint16

	// Open acquires a Handle for I/O. Closing the returned Handle releases
	// any platform resources it holds.
	Open(mode HandleMode) (Handle, error)
}

// Handle is the I/O surface for an opened Device. Only the methods matching
// the device's Type are meaningful; a family driver never calls
// HIDRead/HIDWrite on a serial device or vice versa.
type Handle interface {
	Close() error

	HIDRead(buf []byte, timeout time.Duration) (int, error)
	HIDWrite(buf []byte) (int, error)
	HIDSendFeatureReport(buf []byte) (int, error)

	SerialRead(buf []byte, timeout time.Duration) (int, error)
	SerialWrite(buf []byte) (int, error)
	SerialSetConfig(cfg SerialConfig) error
}

// DeviceCallback is invoked once per affected device during List/Refresh.
// Returning a non-nil error stops iteration and propagates the error.
type DeviceCallback func(dev Device, status DeviceStatus) error

// Descriptor is an opaque, platform-defined pollable token (a file
// descriptor on Unix, a HANDLE on Windows, ...). The core never inspects it;
// it only threads descriptors through to Poller.
type Descriptor any

// DescriptorSet collects descriptors to poll together, each tagged so the
// caller can tell which subsystem became ready.
type DescriptorSet struct {
	entries []taggedDescriptor
}

type taggedDescriptor struct {
	desc Descriptor
	tag  int
}

// Add appends a descriptor to the set under the given tag.
func (s *DescriptorSet) Add(desc Descriptor, tag int) {
	s.entries = append(s.entries, taggedDescriptor{desc: desc, tag: tag})
}

// Entries returns the accumulated descriptors in insertion order, without
// their tags.
func (s *DescriptorSet) Entries() []Descriptor {
	out := make([]Descriptor, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.desc
	}
	return out
}

// Poller waits for readiness on a DescriptorSet.
type Poller interface {
	// Poll blocks until a descriptor in set is ready or timeout elapses.
	// A negative timeout means block indefinitely. Returns true if a
	// descriptor became ready, false on timeout.
	Poll(set *DescriptorSet, timeout time.Duration) (bool, error)
}

// Clock is the millisecond clock and sleep primitive the core uses for
// deadline arithmetic; injectable so tests run without wall-clock delays.
type Clock interface {
	Millis() uint64
	Sleep(d time.Duration)
}

// Timer is a one-shot deadline timer the monitor arms to the earliest
// pending missing-board deadline.
type Timer interface {
	// Set arms (or re-arms) the timer to fire after d.
	Set(d time.Duration) error
	// Rearm reports whether the timer has fired since it was last armed,
	// clearing the fired state as a side effect.
	Rearm() bool
	// Descriptors returns the descriptor(s) a Poller can wait on for this
	// timer to become ready.
	Descriptors() []Descriptor
	Close() error
}

// MonitorAdapter is the platform's hotplug watcher: it owns the underlying
// USB monitor handle, lists currently-present devices, and reports
// subsequent additions/removals through Refresh.
type MonitorAdapter interface {
	// Start begins watching for device changes.
	Start() error
	// Descriptor returns the notify descriptor that becomes readable when
	// device state changes.
	Descriptor() Descriptor
	// List invokes cb for every currently present device, all as
	// DeviceStatusOnline.
	List(cb DeviceCallback) error
	// Refresh invokes cb for devices that changed status since the last
	// List/Refresh call.
	Refresh(cb DeviceCallback) error
	Close() error
}
