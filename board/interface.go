package board

import "github.com/tyboard/tycore/platform"

// Interface is one USB endpoint-set (CDC serial function or HID function)
// contributing capabilities to a Board.
//
// An Interface is created once a family's Classifier accepts the underlying
// device, and lives until the device disconnects (or the board it belongs
// to is dropped). Its Board back-reference is a non-owning pointer set once
// by the aggregator; Go's garbage collector, unlike the manual reference
// counting of the original C implementation, handles the resulting
// board<->interface cycle without help, so no refcount field is carried
// here (see DESIGN.md).
type Interface struct {
	Dev    platform.Device
	Handle platform.Handle

	VID, PID     uint16
	Type         platform.DeviceType
	HIDUsagePage uint16
	HIDUsage     uint16

	// RoleName is the human-readable role: "HalfKay", "RawHID", "Seremu" or
	// "Serial".
	RoleName string

	// Model is the identified model, or the family's unknown placeholder if
	// identification failed.
	Model *Model

	// Serial is the interface's own parsed serial number (0 if absent or
	// unparseable; an AVR bootloader with no serial string reports the
	// family's fixed marker value instead).
	Serial uint64

	Capabilities Capability

	// Board is the owning board, set once the interface is merged in.
	Board *Board
}

// HasCapability reports whether iface contributes capability c.
func (i *Interface) HasCapability(c Capability) bool {
	return i.Capabilities.Has(c)
}
