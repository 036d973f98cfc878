package platform

import "time"

// SystemClock is a real-time Clock backed by the standard library. Unlike
// Device, Handle and MonitorAdapter, which need an OS-specific backend this
// module deliberately doesn't provide, millisecond timekeeping needs
// nothing beyond stdlib time, so one ready-to-use implementation lives
// here rather than being left to an external adapter.
type SystemClock struct{}

// Millis returns the current Unix time in milliseconds.
func (SystemClock) Millis() uint64 {
	return uint64(time.Now().UnixMilli())
}

// Sleep blocks for d.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
