package monitor

import "github.com/tyboard/tycore/board"

// Event describes what happened to a board during a refresh.
type Event int

const (
	// EventAdded is emitted the first time a board is seen, and also by
	// List for every currently online board.
	EventAdded Event = iota
	// EventChanged is emitted when a board's interface set or identity
	// changes but at least one interface remains.
	EventChanged
	// EventDisappeared is emitted when a board's last interface vanishes;
	// the board enters its missing grace period.
	EventDisappeared
	// EventDropped is emitted once a missing board's grace period elapses,
	// or immediately when a reconnect is detected as a different board.
	EventDropped
)

func (e Event) String() string {
	switch e {
	case EventAdded:
		return "added"
	case EventChanged:
		return "changed"
	case EventDisappeared:
		return "disappeared"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// CallbackFunc is invoked once per board event. Its return value controls
// dispatch: negative aborts the remaining callbacks for this event and
// propagates as an error from Refresh; positive deregisters this callback
// before continuing; zero keeps it registered.
type CallbackFunc func(b *board.Board, event Event) int
