package monitor

import (
	"time"

	"github.com/tyboard/tycore/platform"
)

// adjustTimeout returns how much of base remains since startMillis,
// clamped to zero once elapsed.
func adjustTimeout(base time.Duration, startMillis uint64, clock platform.Clock) time.Duration {
	elapsed := time.Duration(clock.Millis()-startMillis) * time.Millisecond
	remaining := base - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// drainMissing drops every board at the head of the missing queue whose
// grace period has elapsed, then (re)arms the timer for whichever board is
// now earliest, if any remain.
func (m *Monitor) drainMissing() error {
	for len(m.missing) > 0 {
		b := m.missing[0]
		remaining := adjustTimeout(m.dropDelay, b.MissingSince(), m.clock)
		if remaining > 0 {
			if m.timer != nil {
				return m.timer.Set(remaining)
			}
			return nil
		}

		m.missing = m.missing[1:]
		if err := m.dropBoard(b); err != nil {
			return err
		}
	}
	return nil
}

// Refresh drains any elapsed missing-board deadlines, then performs either
// a full enumeration (the first call) or an incremental refresh (every call
// after), broadcasting the condvar after either one succeeds so
// ParallelWait callers wake up.
func (m *Monitor) Refresh() error {
	if m.timer == nil || m.timer.Rearm() {
		if err := m.drainMissing(); err != nil {
			return err
		}
	}

	m.callbackRet = nil

	cb := func(dev platform.Device, status platform.DeviceStatus) error {
		switch status {
		case platform.DeviceStatusOnline:
			return m.addInterface(dev)
		case platform.DeviceStatusDisconnected:
			return m.removeInterface(dev)
		default:
			return nil
		}
	}

	if !m.enumerated {
		m.enumerated = true
		if err := m.adapter.List(cb); err != nil {
			return m.translateErr(err)
		}
	} else if err := m.adapter.Refresh(cb); err != nil {
		return m.translateErr(err)
	}

	m.refreshMu.Lock()
	m.refreshCond.Broadcast()
	m.refreshMu.Unlock()

	return nil
}

// translateErr returns callbackRet in place of err when a callback abort was
// cached during this Refresh call, so the caller sees add/removeInterface's
// own error rather than whatever the adapter's List/Refresh wrapped it into.
func (m *Monitor) translateErr(err error) error {
	if err != nil && m.callbackRet != nil {
		return m.callbackRet
	}
	return err
}
