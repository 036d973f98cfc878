package teensy

import (
	"github.com/tyboard/tycore/board"
	"github.com/tyboard/tycore/firmware"
	"github.com/tyboard/tycore/halfkay"
)

// vendorID is the USB vendor id PJRC registers all Teensy PIDs under.
const vendorID = 0x16C0

// HID usage pages that distinguish a Teensy HID interface's role.
const (
	usagePageBootloader = 0xFF9C
	usagePageRawHID      = 0xFFAB
	usagePageSeremu      = 0xFFC9
)

// seremuTxSize and seremuRxSize are the fixed HID report payload sizes the
// Seremu serial-emulation role frames its byte stream into.
const (
	seremuTxSize = 32
	seremuRxSize = 64
)

var teensyFamily = &board.Family{Name: "Teensy"}

// unknownModel is assigned to any classified interface that can't be mapped
// to a real model: its zero CodeSize is what board.Model.IsReal and the
// bootloader/runtime branch in UpdateBoard key off.
var unknownModel = &board.Model{Name: "Teensy", Family: teensyFamily}

var (
	modelPP10 = &board.Model{
		Name: "Teensy++ 1.0", MCU: "at90usb646", Family: teensyFamily,
		UsageID: 0x1A, Experimental: true,
		CodeSize: 64512, HalfKayVersion: 1, BlockSize: 256,
	}
	model20 = &board.Model{
		Name: "Teensy 2.0", MCU: "atmega32u4", Family: teensyFamily,
		UsageID: 0x1B, Experimental: true,
		CodeSize: 32256, HalfKayVersion: 1, BlockSize: 128,
	}
	modelPP20 = &board.Model{
		Name: "Teensy++ 2.0", MCU: "at90usb1286", Family: teensyFamily,
		UsageID:  0x1C,
		CodeSize: 130048, HalfKayVersion: 2, BlockSize: 256,
	}
	model30 = &board.Model{
		Name: "Teensy 3.0", MCU: "mk20dx128", Family: teensyFamily,
		UsageID:  0x1D,
		CodeSize: 131072, HalfKayVersion: 3, BlockSize: 1024,
	}
	model31 = &board.Model{
		Name: "Teensy 3.1", MCU: "mk20dx256", Family: teensyFamily,
		UsageID:  0x1E,
		CodeSize: 262144, HalfKayVersion: 3, BlockSize: 1024,
	}
	modelLC = &board.Model{
		Name: "Teensy LC", MCU: "mkl26z64", Family: teensyFamily,
		UsageID:  0x20,
		CodeSize: 63488, HalfKayVersion: 3, BlockSize: 512,
	}
	model32 = &board.Model{
		Name: "Teensy 3.2", MCU: "mk20dx256", Family: teensyFamily,
		UsageID:  0x21,
		CodeSize: 262144, HalfKayVersion: 3, BlockSize: 1024,
	}
	modelK64 = &board.Model{
		Name: "Teensy 3.4", MCU: "mk64fx512", Family: teensyFamily,
		UsageID:  0x23,
		CodeSize: 524288, HalfKayVersion: 3, BlockSize: 1024,
	}
	modelK66 = &board.Model{
		Name: "Teensy 3.5", MCU: "mk66fx1m0", Family: teensyFamily,
		UsageID:  0x22,
		CodeSize: 1048576, HalfKayVersion: 3, BlockSize: 1024,
	}
)

// signatures is the firmware identification table. Teensy 3.1 and 3.2 share
// an MCU and startup layout, so they legitimately share a magic at priority
// 0 — the ambiguity is resolved by HID usage id when the target board is
// already known, not by firmware content alone.
var signatures = []firmware.Signature{
	{Magic: 0x0C94007EFFCFF894, Model: modelPP10, Priority: 0},
	{Magic: 0x0C94003FFFCFF894, Model: model20, Priority: 0},
	{Magic: 0x0C9400FEFFCFF894, Model: modelPP20, Priority: 0},
	{Magic: 0x38800440823F0400, Model: model30, Priority: 0},
	{Magic: 0x30800440823F0400, Model: model31, Priority: 0},
	{Magic: 0x34800440823F0000, Model: modelLC, Priority: 0},
	{Magic: 0x30800440823F0400, Model: model32, Priority: 0},
	{Magic: 0x0100002B88ED00E0, Model: modelK64, Priority: 1},
	{Magic: 0x002008E003000085, Model: modelK66, Priority: 2},
}

func init() {
	teensyFamily.Models = []*board.Model{
		modelPP10, model20, modelPP20, model30, model31, modelLC, model32, modelK64, modelK66,
	}
	teensyFamily.Classifier = classifier{}
	teensyFamily.Ops = NewOps(halfkay.DefaultTiming())
	board.Register(teensyFamily)
}

// SetTiming replaces the Teensy family's HalfKay timing, for callers that
// load a config.Config after this package's init has already registered it
// with the defaults.
func SetTiming(timing halfkay.Timing) {
	teensyFamily.Ops = NewOps(timing)
}
