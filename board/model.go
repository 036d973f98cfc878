package board

import (
	"sync"

	"github.com/tyboard/tycore/platform"
)

// Model is an immutable, statically defined board variant: a specific MCU,
// flash size, HalfKay protocol version, block size and HID usage id.
//
// The zero value is not a valid Model; every real model is constructed by a
// family package at init time and referenced by pointer thereafter, so
// identity comparison (==) is meaningful and used throughout this module.
type Model struct {
	Name           string
	MCU            string
	CodeSize       int
	HalfKayVersion int
	BlockSize      int
	UsageID        uint16
	Experimental   bool
	Family         *Family
}

// IsReal reports whether m identifies an actual board variant as opposed to
// a family's "unknown model" placeholder. A nil model, or one with no
// CodeSize, is never real and is never used for upload.
func (m *Model) IsReal() bool {
	return m != nil && m.CodeSize > 0
}

// UploadProgressFunc reports upload progress; offset is the number of bytes
// written so far, out of size. Returning a non-nil error aborts the upload.
type UploadProgressFunc func(b *Board, offset, size int) error

// InterfaceOps is the per-family "vtable" for interface-level I/O: opening
// and closing a handle, serial-style read/write (used by both real CDC
// serial and Seremu HID emulation), firmware upload, application reset, and
// bootloader reboot. One InterfaceOps value is shared by every interface of
// a family regardless of role; individual methods dispatch on the
// interface's device type as needed.
type InterfaceOps interface {
	OpenInterface(iface *Interface) error
	CloseInterface(iface *Interface) error

	SerialRead(iface *Interface, buf []byte, timeout int) (int, error)
	SerialWrite(iface *Interface, buf []byte) (int, error)

	Upload(iface *Interface, image []byte, allowExperimental bool, progress UploadProgressFunc) error
	Reset(iface *Interface) error
	Reboot(iface *Interface) error
}

// Classifier decides whether a device belongs to a family and, if so, how
// to populate the resulting Interface (role, capabilities, model). It also
// merges a classified interface into a board record and scans firmware
// images for candidate models.
type Classifier interface {
	// ClassifyInterface inspects dev and populates iface if the device
	// belongs to this family. Returns false (no error) if the device is
	// simply not one of this family's devices.
	ClassifyInterface(dev platform.Device, iface *Interface) (accepted bool, err error)

	// UpdateBoard merges iface's identification into b (model upgrade,
	// serial reconciliation, capability refinement). Returns false if the
	// interface is incompatible with the board's current identity.
	UpdateBoard(iface *Interface, b *Board) (compatible bool, err error)

	// ScanFirmware returns up to max candidate models for image, in
	// priority order, per the family's firmware signature table.
	ScanFirmware(image []byte, max int) []*Model
}

// Family groups the model table and behavior for one product line sharing
// identification, upload, and firmware-scan logic.
type Family struct {
	Name   string
	Models []*Model

	Classifier Classifier
	Ops        InterfaceOps
}

// ModelByUsage returns the model in f whose UsageID matches usage, or nil.
func (f *Family) ModelByUsage(usage uint16) *Model {
	for _, m := range f.Models {
		if m.UsageID == usage {
			return m
		}
	}
	return nil
}

var (
	registryMu sync.Mutex
	registry   []*Family
)

// Register adds a family to the process-wide registry. Families typically
// register themselves from an init() function.
func Register(f *Family) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, f)
}

// Families returns the ordered list of registered families.
func Families() []*Family {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]*Family, len(registry))
	copy(out, registry)
	return out
}
