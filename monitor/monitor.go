package monitor

import (
	"sync"
	"time"

	"github.com/tyboard/tycore/board"
	"github.com/tyboard/tycore/platform"
)

// Flags configures a Monitor's waiting strategy.
type Flags uint

const (
	// ParallelWait enables condvar-based waiting for callers that refresh
	// on a separate goroutine from the one(s) that call Wait.
	ParallelWait Flags = 1 << iota
)

// dropBoardDelay is the grace period a board is kept around after its last
// interface disappears, before it is dropped for good.
const dropBoardDelay = 15000 * time.Millisecond

// Monitor tracks USB devices through a platform.MonitorAdapter, aggregates
// their interfaces into Boards, and dispatches events to registered
// callbacks. See the package doc for its concurrency discipline.
type Monitor struct {
	flags Flags

	adapter platform.MonitorAdapter
	timer   platform.Timer
	poller  platform.Poller
	clock   platform.Clock

	dropDelay time.Duration

	enumerated  bool
	callbackRet error

	boards     []*board.Board
	missing    []*board.Board
	interfaces map[platform.Device]*board.Interface

	callbacks      []callbackEntry
	nextCallbackID int

	// refreshMu/refreshCond back ParallelWait: Refresh broadcasts after
	// every successful pass, and Wait blocks on the condvar between
	// predicate checks.
	refreshMu   sync.Mutex
	refreshCond *sync.Cond
}

type callbackEntry struct {
	id int
	f  CallbackFunc
}

// Option configures a Monitor at construction.
type Option func(*Monitor)

// WithFlags sets the monitor's wait-strategy flags.
func WithFlags(f Flags) Option {
	return func(m *Monitor) { m.flags = f }
}

// WithTimer supplies the platform timer used to schedule missing-board
// drops. Without one, Refresh still drains boards whose deadline has
// passed on every call, it just can't sleep precisely until the next one.
func WithTimer(t platform.Timer) Option {
	return func(m *Monitor) { m.timer = t }
}

// WithPoller supplies the Poller used by Wait in its sequential (non
// ParallelWait) mode.
func WithPoller(p platform.Poller) Option {
	return func(m *Monitor) { m.poller = p }
}

// WithClock overrides the clock used for deadline arithmetic; tests use
// this to run the missing-board grace period without real delays.
func WithClock(c platform.Clock) Option {
	return func(m *Monitor) { m.clock = c }
}

// WithDropDelay overrides the default 15-second missing-board grace period.
func WithDropDelay(d time.Duration) Option {
	return func(m *Monitor) { m.dropDelay = d }
}

// New constructs a Monitor over adapter and starts it watching for device
// changes. Initial capacity for the interface table mirrors the original's
// hash table default of 64 entries.
func New(adapter platform.MonitorAdapter, opts ...Option) (*Monitor, error) {
	m := &Monitor{
		adapter:    adapter,
		clock:      platform.SystemClock{},
		dropDelay:  dropBoardDelay,
		interfaces: make(map[platform.Device]*board.Interface, 64),
	}
	m.refreshCond = sync.NewCond(&m.refreshMu)
	for _, opt := range opts {
		opt(m)
	}

	if err := adapter.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

// Close releases all boards without emitting further events, and closes
// the underlying adapter and timer.
func (m *Monitor) Close() error {
	m.boards = nil
	m.missing = nil
	m.callbacks = nil
	m.interfaces = make(map[platform.Device]*board.Interface)

	var err error
	if m.timer != nil {
		err = m.timer.Close()
	}
	if closeErr := m.adapter.Close(); err == nil {
		err = closeErr
	}
	return err
}

// RegisterCallback appends f to the callback list and returns a fresh,
// non-negative id that can later be passed to DeregisterCallback.
func (m *Monitor) RegisterCallback(f CallbackFunc) int {
	id := m.nextCallbackID
	m.nextCallbackID++
	m.callbacks = append(m.callbacks, callbackEntry{id: id, f: f})
	return id
}

// DeregisterCallback removes the callback matching id, if present.
func (m *Monitor) DeregisterCallback(id int) {
	for i, c := range m.callbacks {
		if c.id == id {
			m.callbacks = append(m.callbacks[:i], m.callbacks[i+1:]...)
			return
		}
	}
}

// GetDescriptors adds the adapter's notify descriptor and the timer's
// descriptors (if a timer is configured) to set, each labeled tag.
func (m *Monitor) GetDescriptors(set *platform.DescriptorSet, tag int) {
	set.Add(m.adapter.Descriptor(), tag)
	if m.timer != nil {
		for _, d := range m.timer.Descriptors() {
			set.Add(d, tag)
		}
	}
}

// triggerCallbacks dispatches event for b to every registered callback, per
// the tri-valued return contract in CallbackFunc's doc comment. An abort is
// also cached in callbackRet, since the adapter.List/Refresh call this runs
// under may translate or wrap the error it propagates back out of Refresh.
func (m *Monitor) triggerCallbacks(b *board.Board, event Event) error {
	i := 0
	for i < len(m.callbacks) {
		cb := m.callbacks[i]
		r := cb.f(b, event)
		switch {
		case r < 0:
			err := &CallbackAbortError{Code: r}
			m.callbackRet = err
			return err
		case r > 0:
			m.callbacks = append(m.callbacks[:i], m.callbacks[i+1:]...)
		default:
			i++
		}
	}
	return nil
}
