// Package monitor implements the device monitor and board aggregator: it
// drives a platform.MonitorAdapter's hotplug notifications through the
// registered board families' classifiers, reconciles the resulting
// interfaces into logical boards, runs the missing-board grace period, and
// dispatches ADDED/CHANGED/DISAPPEARED/DROPPED events to registered
// callbacks.
//
// A Monitor's board/interface/callback bookkeeping is owned by whichever
// goroutine calls Refresh and RegisterCallback/DeregisterCallback; it must
// not be called concurrently with itself. Read access to a Board already
// obtained from the monitor (via a Wait predicate, for instance) is safe
// from any goroutine, since Board guards its own fields with its own lock.
package monitor
