package halfkay

import (
	"github.com/tyboard/tycore/board"
	"github.com/tyboard/tycore/platform"
)

// Upload writes image to iface's bootloader handle, one block at a time, per
// spec.md §4.5. allowExperimental gates models flagged board.Model.Experimental
// — callers resolve it once from config (the environment-variable lookup the
// original performed inline on every upload), not from an env read here.
//
// progress, if non-nil, is called with offset 0 before the first block and
// with the new offset after every block write; a non-nil return aborts the
// upload immediately without writing further blocks.
func Upload(iface *board.Interface, image []byte, allowExperimental bool, timing Timing, clock platform.Clock, progress board.UploadProgressFunc) error {
	model := iface.Model
	if model.Experimental && !allowExperimental {
		return &board.UnsupportedError{Reason: "model " + model.Name + " is experimental and TY_EXPERIMENTAL_BOARDS is unset"}
	}
	if len(image) > model.CodeSize {
		return &board.RangeError{Model: model.Name, Size: len(image), CodeSize: model.CodeSize}
	}

	size := len(image)
	if progress != nil {
		if err := progress(iface.Board, 0, size); err != nil {
			return err
		}
	}

	for addr, first := 0, true; addr < size; addr, first = addr+model.BlockSize, false {
		end := addr + model.BlockSize
		if end > size {
			end = size
		}

		packet, err := BuildPacket(model, addr, image[addr:end])
		if err != nil {
			return err
		}
		if err := SendPacket(iface.Handle, packet, timing.UploadRetryDeadline, timing.RetryInterval, clock); err != nil {
			return err
		}

		if first {
			clock.Sleep(timing.EraseDelay)
		} else {
			clock.Sleep(timing.BlockDelay)
		}

		if progress != nil {
			if err := progress(iface.Board, end, size); err != nil {
				return err
			}
		}
	}

	return nil
}

// resetAddr is the magic jump-to-application address: 0xFFFFFF.
const resetAddr = 0xFFFFFF

// Reset sends a zero-length packet to resetAddr, instructing the bootloader
// to jump to the application. Uses timing.ResetRetryDeadline (250ms default).
func Reset(iface *board.Interface, timing Timing, clock platform.Clock) error {
	packet, err := BuildPacket(iface.Model, resetAddr, nil)
	if err != nil {
		return err
	}
	return SendPacket(iface.Handle, packet, timing.ResetRetryDeadline, timing.RetryInterval, clock)
}

// rebootBaudMagic is the magic baud rate that signals the CDC-ACM serial
// driver to reboot the attached Teensy into its bootloader.
const rebootBaudMagic = 134

// runtimeBaud is the baud rate restored immediately after the magic value,
// so the host driver doesn't cache 134 across the next open.
const runtimeBaud = 115200

// RebootSerial reboots a board exposing a Serial role into its bootloader:
// set baud to the magic value, then immediately restore a sane baud. Errors
// from the restore step are swallowed — by the time it runs the device has
// usually already disconnected to re-enumerate as a bootloader.
func RebootSerial(h platform.Handle) error {
	if err := h.SerialSetConfig(platform.SerialConfig{Baudrate: rebootBaudMagic}); err != nil {
		return err
	}
	_ = h.SerialSetConfig(platform.SerialConfig{Baudrate: runtimeBaud})
	return nil
}

// seremuRebootReport is the 5-byte HID feature report that reboots a Seremu
// role into the bootloader.
var seremuRebootReport = []byte{0x00, 0xA9, 0x45, 0xC2, 0x6B}

// RebootSeremu reboots a board exposing a Seremu role by sending the magic
// feature report.
func RebootSeremu(h platform.Handle) error {
	_, err := h.HIDSendFeatureReport(seremuRebootReport)
	return err
}

// Reboot dispatches to RebootSerial or RebootSeremu by iface's role. Any
// other role is unsupported.
func Reboot(iface *board.Interface) error {
	switch iface.RoleName {
	case "Serial":
		return RebootSerial(iface.Handle)
	case "Seremu":
		return RebootSeremu(iface.Handle)
	default:
		return &board.UnsupportedError{Reason: "role " + iface.RoleName + " has no reboot capability"}
	}
}
