package board

import (
	"fmt"
	"sync"
)

// State is a board's lifecycle state.
type State int

const (
	// StateOnline means at least one interface is currently present.
	StateOnline State = iota
	// StateMissing means all interfaces have disappeared but the drop
	// grace period has not yet elapsed.
	StateMissing
	// StateDropped is terminal: the board has been released.
	StateDropped
)

func (s State) String() string {
	switch s {
	case StateOnline:
		return "online"
	case StateMissing:
		return "missing"
	case StateDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Board is a logical device aggregating one or more USB interfaces observed
// at the same hardware location.
//
// Board.ID and Board.Location never change after construction and are read
// without locking. All other identity and interface-set fields are guarded
// by mu: writes happen only from the goroutine driving the monitor's
// refresh loop, but reads are permitted from any goroutine holding a Board
// reference (e.g. a Wait predicate), so every accessor for them takes the
// lock.
type Board struct {
	mu sync.Mutex

	location string
	id       string

	model       *Model
	serial      uint64
	vid, pid    uint16
	description string

	interfaces   []*Interface
	capToIface   [numCapabilities]*Interface
	capabilities Capability

	state        State
	missingSince uint64
}

// New constructs a board identified by location, seeded with the model and
// serial of the interface that caused its creation.
func New(location string, model *Model, serial uint64, vid, pid uint16) *Board {
	return &Board{
		location: location,
		id:       fmt.Sprintf("%d-%s", serial, model.Family.Name),
		model:    model,
		serial:   serial,
		vid:      vid,
		pid:      pid,
		state:    StateOnline,
	}
}

// ID is the board's stable human-readable identity: "<serial>-<family>".
func (b *Board) ID() string { return b.id }

// Tag is an alias of ID, kept distinct in the API for callers that persist
// it as a separate concept (the original exposed both names over the same
// string).
func (b *Board) Tag() string { return b.id }

// Location is the stable USB path this board was discovered at.
func (b *Board) Location() string { return b.location }

func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Board) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

func (b *Board) Serial() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.serial
}

func (b *Board) Model() *Model {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.model
}

func (b *Board) VIDPID() (uint16, uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.vid, b.pid
}

func (b *Board) Description() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.description
}

func (b *Board) SetDescription(d string) {
	b.mu.Lock()
	b.description = d
	b.mu.Unlock()
}

// MissingSince is the millisecond timestamp at which the board's last
// interface disappeared. Meaningful only in StateMissing.
func (b *Board) MissingSince() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.missingSince
}

// Capabilities returns the union of capabilities across all current
// interfaces.
func (b *Board) Capabilities() Capability {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capabilities
}

func (b *Board) HasCapability(c Capability) bool {
	return b.Capabilities().Has(c)
}

// InterfaceFor returns the interface currently providing capability c, or
// nil if none does.
func (b *Board) InterfaceFor(c Capability) *Interface {
	idx := capabilityIndex(c)
	if idx < 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capToIface[idx]
}

// Interfaces returns a snapshot of the board's current interface set.
func (b *Board) Interfaces() []*Interface {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Interface, len(b.interfaces))
	copy(out, b.interfaces)
	return out
}

// SetIdentity upgrades the board's model (if iface carries a real one) and
// fills in its serial (if previously zero). It never downgrades an
// already-real model or overwrites a non-zero serial; the caller
// (aggregator) is responsible for the compatibility check that precedes
// this call.
func (b *Board) SetIdentity(model *Model, serial uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if model.IsReal() {
		b.model = model
	}
	if serial != 0 && b.serial == 0 {
		b.serial = serial
	}
}

// SetVIDPID overwrites the board's most-recently-seen vendor/product ID.
func (b *Board) SetVIDPID(vid, pid uint16) {
	b.mu.Lock()
	b.vid, b.pid = vid, pid
	b.mu.Unlock()
}

// AddInterface inserts iface into the board's interface set, sets its
// back-reference, and incrementally unions its capabilities into the
// board's capability map (invariant 1 in spec.md §8).
func (b *Board) AddInterface(iface *Interface) {
	iface.Board = b

	b.mu.Lock()
	defer b.mu.Unlock()

	b.interfaces = append(b.interfaces, iface)
	for i := 0; i < numCapabilities; i++ {
		bit := Capability(1) << uint(i)
		if iface.Capabilities&bit != 0 {
			b.capToIface[i] = iface
		}
	}
	b.capabilities |= iface.Capabilities
}

// RemoveInterface removes iface from the board's interface set and
// recomputes the capability map and union from the remaining interfaces
// (never incrementally — a removed interface may have been the sole
// provider of a capability another interface also exposes). Returns true
// if the board's interface set is now empty.
func (b *Board) RemoveInterface(iface *Interface) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, cur := range b.interfaces {
		if cur == iface {
			b.interfaces = append(b.interfaces[:i], b.interfaces[i+1:]...)
			break
		}
	}

	b.capToIface = [numCapabilities]*Interface{}
	b.capabilities = 0
	for _, cur := range b.interfaces {
		for i := 0; i < numCapabilities; i++ {
			bit := Capability(1) << uint(i)
			if cur.Capabilities&bit != 0 {
				b.capToIface[i] = cur
			}
		}
		b.capabilities |= cur.Capabilities
	}

	return len(b.interfaces) == 0
}

// Close empties the interface set and capability map in one step (used
// when a board is found incompatible with a newly classified interface, or
// when the monitor is freed without emitting further events) and returns
// the interfaces that were removed so the caller can release them.
func (b *Board) Close() []*Interface {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := b.interfaces
	b.interfaces = nil
	b.capToIface = [numCapabilities]*Interface{}
	b.capabilities = 0
	return removed
}

// MarkOnline transitions the board to StateOnline and clears missingSince.
func (b *Board) MarkOnline() {
	b.mu.Lock()
	b.state = StateOnline
	b.missingSince = 0
	b.mu.Unlock()
}

// MarkMissing transitions the board to StateMissing, recording the instant
// its last interface disappeared.
func (b *Board) MarkMissing(nowMillis uint64) {
	b.mu.Lock()
	b.state = StateMissing
	b.missingSince = nowMillis
	b.mu.Unlock()
}

// MarkDropped transitions the board to its terminal StateDropped.
func (b *Board) MarkDropped() {
	b.setState(StateDropped)
}
