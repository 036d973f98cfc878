package halfkay

import (
	"fmt"

	"github.com/tyboard/tycore/board"
)

// v3 packets pad their block header out to 64 bytes; the payload begins
// right after it.
const v3HeaderSize = 64

// BuildPacket formats one HalfKay write packet for model at the given block
// address, per spec.md §4.5. Every packet is 1 (report id) + header +
// model.BlockSize bytes, zero-padded; data shorter than BlockSize (the
// final block of an image) is zero-padded in place.
func BuildPacket(model *board.Model, addr int, data []byte) ([]byte, error) {
	if len(data) > model.BlockSize {
		return nil, fmt.Errorf("halfkay: block data length %d exceeds model block size %d", len(data), model.BlockSize)
	}

	switch model.HalfKayVersion {
	case 1:
		// AVR 16-bit address: header = addr_lo, addr_hi at [1..3), payload at byte 3.
		buf := make([]byte, 3+model.BlockSize)
		buf[1] = byte(addr & 0xFF)
		buf[2] = byte((addr >> 8) & 0xFF)
		copy(buf[3:], data)
		return buf, nil

	case 2:
		// AVR 24-bit address >=64KB: header = addr_mid, addr_hi at [1..3), payload at byte 3.
		buf := make([]byte, 3+model.BlockSize)
		buf[1] = byte((addr >> 8) & 0xFF)
		buf[2] = byte((addr >> 16) & 0xFF)
		copy(buf[3:], data)
		return buf, nil

	case 3:
		// ARM 24-bit address: header = addr_lo, addr_mid, addr_hi at [1..4), payload at byte 65.
		buf := make([]byte, 1+v3HeaderSize+model.BlockSize)
		buf[1] = byte(addr & 0xFF)
		buf[2] = byte((addr >> 8) & 0xFF)
		buf[3] = byte((addr >> 16) & 0xFF)
		copy(buf[1+v3HeaderSize:], data)
		return buf, nil

	default:
		return nil, fmt.Errorf("halfkay: unsupported protocol version %d", model.HalfKayVersion)
	}
}
