package firmware

import (
	"encoding/binary"

	"github.com/tyboard/tycore/board"
)

// Signature is one entry in a family's firmware identification table: an
// 8-byte big-endian magic value that, found anywhere in an image, identifies
// it as targeting Model. Priority arbitrates when one image matches magics
// of several models; higher wins.
type Signature struct {
	Magic    uint64
	Model    *board.Model
	Priority int
}

// windowSize is the width, in bytes, of the sliding match window.
const windowSize = 8

// Scan slides an 8-byte window across image and matches it against sigs,
// per spec.md §4.6. It returns up to max candidate models, all sharing the
// highest priority seen among matching signatures; scanning continues after
// the candidate buffer fills so a later higher-priority hit can still
// displace everything collected so far.
func Scan(image []byte, sigs []Signature, max int) []*board.Model {
	if max <= 0 || len(image) < windowSize {
		return nil
	}

	var (
		candidates   []*board.Model
		bestPriority = -1
	)

	for offset := 0; offset+windowSize <= len(image); offset++ {
		window := binary.BigEndian.Uint64(image[offset : offset+windowSize])

		for _, sig := range sigs {
			if sig.Magic != window {
				continue
			}
			switch {
			case sig.Priority > bestPriority:
				bestPriority = sig.Priority
				candidates = candidates[:0]
				candidates = append(candidates, sig.Model)
			case sig.Priority == bestPriority && len(candidates) < max:
				candidates = append(candidates, sig.Model)
			}
		}
	}

	return candidates
}
