package halfkay

import (
	"errors"
	"time"

	"github.com/tyboard/tycore/board"
	"github.com/tyboard/tycore/platform"
)

// Timing holds the deadlines and delays the protocol engine paces itself
// with. DefaultTiming reproduces the constants spec.md §4.5 hardcodes;
// callers (the config package, in practice) may adjust it for slower hosts.
type Timing struct {
	// UploadRetryDeadline bounds how long a single block write may be
	// retried against transient I/O errors.
	UploadRetryDeadline time.Duration `yaml:"uploadRetryDeadline"`
	// ResetRetryDeadline is the equivalent bound for the reset command.
	ResetRetryDeadline time.Duration `yaml:"resetRetryDeadline"`
	// RetryInterval is the sleep between retries of a failing write.
	RetryInterval time.Duration `yaml:"retryInterval"`
	// EraseDelay is applied after the first block write, while the
	// bootloader performs a full chip erase.
	EraseDelay time.Duration `yaml:"eraseDelay"`
	// BlockDelay is applied after every subsequent block write, to avoid
	// triggering a HalfKay STALL.
	BlockDelay time.Duration `yaml:"blockDelay"`
}

// DefaultTiming reproduces the original's hardcoded constants.
func DefaultTiming() Timing {
	return Timing{
		UploadRetryDeadline: 3000 * time.Millisecond,
		ResetRetryDeadline:  250 * time.Millisecond,
		RetryInterval:       10 * time.Millisecond,
		EraseDelay:          200 * time.Millisecond,
		BlockDelay:          20 * time.Millisecond,
	}
}

// SendPacket writes packet to h, retrying on transient I/O errors
// (errors.Is(err, board.ErrIO)) every retryInterval until deadline elapses.
// Any other error aborts immediately without retrying.
func SendPacket(h platform.Handle, packet []byte, deadline, retryInterval time.Duration, clock platform.Clock) error {
	start := clock.Millis()
	for {
		_, err := h.HIDWrite(packet)
		if err == nil {
			return nil
		}
		if !errors.Is(err, board.ErrIO) {
			return err
		}
		if clock.Millis()-start >= uint64(deadline/time.Millisecond) {
			return err
		}
		clock.Sleep(retryInterval)
	}
}
