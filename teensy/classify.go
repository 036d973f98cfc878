package teensy

import (
	"github.com/tyboard/tycore/board"
	"github.com/tyboard/tycore/firmware"
	"github.com/tyboard/tycore/platform"
)

// classifier implements board.Classifier for the Teensy family.
type classifier struct{}

// serialPIDs are the CDC serial product ids Teensy boards enumerate under
// in runtime mode. HID interfaces (bootloader/raw/Seremu) share the same
// PID as the board's serial function and are distinguished by device type
// and HID usage page instead.
var serialPIDs = map[uint16]bool{
	0x478: true, 0x482: true, 0x483: true, 0x484: true,
	0x485: true, 0x486: true, 0x487: true, 0x488: true,
}

func modelByUsage(usage uint16) *board.Model {
	for _, m := range teensyFamily.Models {
		if m.UsageID == usage {
			return m
		}
	}
	return nil
}

// ClassifyInterface implements board.Classifier. It also resolves iface's
// own serial number here, since which parser applies (hex bootloader vs.
// decimal runtime) is decided by the same role/model distinction this
// method already computes.
func (classifier) ClassifyInterface(dev platform.Device, iface *board.Interface) (bool, error) {
	if dev.VendorID() != vendorID {
		return false, nil
	}
	if !serialPIDs[dev.ProductID()] {
		return false, nil
	}

	switch dev.Type() {
	case platform.DeviceTypeSerial:
		iface.RoleName = "Serial"
		iface.Capabilities |= board.CapRun | board.CapSerial | board.CapReboot

	case platform.DeviceTypeHID:
		switch dev.HIDUsagePage() {
		case usagePageBootloader:
			iface.RoleName = "HalfKay"
			if m := modelByUsage(dev.HIDUsage()); m != nil {
				iface.Model = m
				iface.Capabilities |= board.CapUpload | board.CapReset
			}

		case usagePageRawHID:
			iface.RoleName = "RawHID"
			iface.Capabilities |= board.CapRun

		case usagePageSeremu:
			iface.RoleName = "Seremu"
			iface.Capabilities |= board.CapRun | board.CapSerial | board.CapReboot

		default:
			return false, nil
		}

	default:
		return false, nil
	}

	if iface.Model == nil {
		iface.Model = unknownModel
	}
	iface.VID, iface.PID = dev.VendorID(), dev.ProductID()
	iface.Type = dev.Type()
	iface.HIDUsagePage, iface.HIDUsage = dev.HIDUsagePage(), dev.HIDUsage()

	if iface.Model.IsReal() {
		iface.Serial = parseBootloaderSerial(dev.SerialNumberString())
	} else if s := dev.SerialNumberString(); s != "" {
		iface.Serial = parseRuntimeSerial(s)
	}

	// AVR boards always report 12345 and can't be told apart; a board with
	// no serial at all (serial == 0) is likewise not unique. uint32Max is
	// the serial an unprogrammed EEPROM reads back as and is equally
	// useless for identity.
	if iface.Serial != 0 && iface.Serial != avrMarkerSerial && iface.Serial != uint32MaxSerial {
		iface.Capabilities |= board.CapUnique
	}

	return true, nil
}

// UpdateBoard implements board.Classifier, mirroring teensy_update_board's
// bootloader-vs-runtime identity-merge branches. iface.Serial is already
// resolved by ClassifyInterface; this only reconciles it against a board
// that may have been identified by a different interface already.
func (classifier) UpdateBoard(iface *board.Interface, b *board.Board) (bool, error) {
	if iface.Model.IsReal() {
		if existing := b.Model(); existing.IsReal() && existing != iface.Model {
			return false, nil
		}
		b.SetIdentity(iface.Model, 0)

		if iface.Serial != 0 {
			if b.Serial() == 0 {
				b.SetIdentity(iface.Model, iface.Serial)
			} else if iface.Serial != b.Serial() {
				// Boards running Teensyduino older than 1.19 report a
				// decimal serial one digit short of what the bootloader
				// reports; accept the mismatch rather than splitting into
				// two boards, since there is no way to recover the correct
				// value from here.
				if iface.Serial != b.Serial()*10 {
					return false, nil
				}
			}
		}

		if b.Description() == "" {
			b.SetDescription("Teensy (HalfKay)")
		}
	} else {
		if iface.Serial != 0 {
			if b.Serial() == 0 {
				b.SetIdentity(iface.Model, iface.Serial)
			} else if iface.Serial != b.Serial() {
				return false, nil
			}
		}

		desc := iface.Dev.ProductString()
		if desc == "" {
			desc = "Teensy"
		}
		b.SetDescription(desc)
	}

	return true, nil
}

// ScanFirmware implements board.Classifier.
func (classifier) ScanFirmware(image []byte, max int) []*board.Model {
	return firmware.Scan(image, signatures, max)
}
