package monitor

import (
	"errors"
	"sync"
	"time"

	"github.com/tyboard/tycore/board"
	"github.com/tyboard/tycore/platform"
)

// ErrNoPoller is returned by Wait's sequential mode (ParallelWait unset)
// when the monitor wasn't constructed with a Poller.
var ErrNoPoller = errors.New("monitor: sequential wait requires a poller (see WithPoller)")

// WaitFunc is evaluated by Wait after every refresh (sequential mode) or
// every wake (ParallelWait mode). Returning done=true ends the wait
// successfully; a non-nil error ends it and propagates.
type WaitFunc func(m *Monitor) (done bool, err error)

// remainingOrInfinite mirrors ty_adjust_timeout's pass-through convention:
// a negative timeout means "wait forever" and is never clamped.
func remainingOrInfinite(timeout time.Duration, start uint64, clock platform.Clock) time.Duration {
	if timeout < 0 {
		return -1
	}
	return adjustTimeout(timeout, start, clock)
}

// waitCondTimeout blocks on c.Wait, but also wakes (via a synthetic
// broadcast) after timeout if no real broadcast arrives first. A negative
// timeout waits with no synthetic wakeup at all.
func waitCondTimeout(c *sync.Cond, timeout time.Duration) {
	if timeout < 0 {
		c.Wait()
		return
	}
	t := time.AfterFunc(timeout, func() {
		c.L.Lock()
		c.Broadcast()
		c.L.Unlock()
	})
	defer t.Stop()
	c.Wait()
}

// Wait evaluates f repeatedly until it reports done, returns an error, or
// timeout elapses (a negative timeout waits forever). In ParallelWait mode
// it blocks on the refresh condvar between evaluations, for callers that
// run Refresh on a separate goroutine; f may be nil only in that mode, in
// which case Wait simply blocks until the next broadcast or timeout.
//
// In sequential mode, Wait calls Refresh itself on every iteration and
// polls the monitor's descriptors for the remaining time between passes.
func (m *Monitor) Wait(f WaitFunc, timeout time.Duration) (bool, error) {
	start := m.clock.Millis()

	if m.flags&ParallelWait != 0 {
		m.refreshMu.Lock()
		defer m.refreshMu.Unlock()

		for {
			if f != nil {
				done, err := f(m)
				if err != nil {
					return false, err
				}
				if done {
					return true, nil
				}
			}
			remaining := remainingOrInfinite(timeout, start, m.clock)
			if remaining == 0 {
				return false, nil
			}
			waitCondTimeout(m.refreshCond, remaining)
			if remaining >= 0 && remainingOrInfinite(timeout, start, m.clock) == 0 {
				return false, nil
			}
		}
	}

	set := &platform.DescriptorSet{}
	m.GetDescriptors(set, 1)

	for {
		if err := m.Refresh(); err != nil {
			return false, err
		}
		if f != nil {
			done, err := f(m)
			if err != nil {
				return false, err
			}
			if done {
				return true, nil
			}
		}

		remaining := remainingOrInfinite(timeout, start, m.clock)
		if remaining == 0 {
			return false, nil
		}
		if m.poller == nil {
			return false, ErrNoPoller
		}
		ready, err := m.poller.Poll(set, remaining)
		if err != nil {
			return false, err
		}
		if !ready {
			return false, nil
		}
	}
}

// List synchronously invokes f(board, EventAdded) for every currently
// online board, in insertion order, stopping (and returning the error) at
// the first non-nil error.
func (m *Monitor) List(f func(b *board.Board, event Event) error) error {
	for _, b := range m.boards {
		if b.State() != board.StateOnline {
			continue
		}
		if err := f(b, EventAdded); err != nil {
			return err
		}
	}
	return nil
}
