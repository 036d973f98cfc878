package teensy

import (
	"bytes"
	"time"

	"github.com/tyboard/tycore/board"
	"github.com/tyboard/tycore/halfkay"
	"github.com/tyboard/tycore/platform"
)

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// runtimeBaud is restored right after opening a serial interface; some
// hosts cache the bootloader-reboot baud magic (134) across opens, which
// would otherwise send the board rebooting in a loop.
const runtimeBaud = 115200

// ops implements board.InterfaceOps for the Teensy family, delegating the
// protocol-level work to the halfkay package. timing is baked in at
// construction so a caller can tune retry/erase/block pacing (config.Config)
// without threading it through every board.InterfaceOps call.
type ops struct {
	timing halfkay.Timing
}

// NewOps builds a Teensy InterfaceOps using timing for every HalfKay
// operation. Family registration uses NewOps(halfkay.DefaultTiming()); a
// caller with a config.Config can install its own with
// teensy.SetTiming(cfg.Timing) before the monitor starts.
func NewOps(timing halfkay.Timing) board.InterfaceOps {
	return ops{timing: timing}
}

// OpenInterface implements board.InterfaceOps.
func (ops) OpenInterface(iface *board.Interface) error {
	h, err := iface.Dev.Open(platform.HandleModeReadWrite)
	if err != nil {
		return err
	}
	iface.Handle = h

	if iface.Type == platform.DeviceTypeSerial {
		_ = h.SerialSetConfig(platform.SerialConfig{Baudrate: runtimeBaud})
	}
	return nil
}

// CloseInterface implements board.InterfaceOps.
func (ops) CloseInterface(iface *board.Interface) error {
	if iface.Handle == nil {
		return nil
	}
	err := iface.Handle.Close()
	iface.Handle = nil
	return err
}

// SerialRead implements board.InterfaceOps. On a Seremu HID interface, the
// stream is framed into fixed-size reports whose terminating NUL marks the
// end of the data actually written; binary transfers aren't possible.
func (ops) SerialRead(iface *board.Interface, buf []byte, timeout int) (int, error) {
	if iface.Type == platform.DeviceTypeSerial {
		return iface.Handle.SerialRead(buf, msToDuration(timeout))
	}

	hidBuf := make([]byte, seremuRxSize+1)
	n, err := iface.Handle.HIDRead(hidBuf, msToDuration(timeout))
	if err != nil {
		return 0, err
	}
	if n < 2 {
		return 0, nil
	}

	payload := hidBuf[1:n]
	if nul := bytes.IndexByte(payload, 0); nul >= 0 {
		payload = payload[:nul]
	}
	return copy(buf, payload), nil
}

// SerialWrite implements board.InterfaceOps, framing Seremu writes into
// 32-byte report payloads.
func (ops) SerialWrite(iface *board.Interface, buf []byte) (int, error) {
	if iface.Type == platform.DeviceTypeSerial {
		return iface.Handle.SerialWrite(buf)
	}

	report := make([]byte, seremuTxSize+1)
	total := 0
	for total < len(buf) {
		for i := range report {
			report[i] = 0
		}
		copy(report[1:], buf[total:])

		written, err := iface.Handle.HIDWrite(report)
		if err != nil {
			return total, err
		}
		if written == 0 {
			break
		}
		total += written - 1
	}
	return total, nil
}

// Upload implements board.InterfaceOps, delegating to halfkay.Upload.
// allowExperimental is resolved by the caller from its config.Config, once,
// rather than read from the environment here.
func (o ops) Upload(iface *board.Interface, image []byte, allowExperimental bool, progress board.UploadProgressFunc) error {
	return halfkay.Upload(iface, image, allowExperimental, o.timing, platform.SystemClock{}, progress)
}

// Reset implements board.InterfaceOps, delegating to halfkay.Reset.
func (o ops) Reset(iface *board.Interface) error {
	return halfkay.Reset(iface, o.timing, platform.SystemClock{})
}

// Reboot implements board.InterfaceOps, delegating to halfkay.Reboot.
func (ops) Reboot(iface *board.Interface) error {
	return halfkay.Reboot(iface)
}
