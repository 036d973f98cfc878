package monitor

import (
	"errors"

	"github.com/tyboard/tycore/board"
	"github.com/tyboard/tycore/platform"
)

// classifyDevice runs dev through every registered family's classifier
// until one accepts it. A family that reports ErrNotFound or ErrAccess
// (the device vanished, or we lost the race to open it) is treated as "not
// this family's device" rather than a hard failure, mirroring
// open_new_interface's error masking.
func classifyDevice(dev platform.Device) (*board.Interface, error) {
	for _, fam := range board.Families() {
		iface := &board.Interface{Dev: dev}
		accepted, err := fam.Classifier.ClassifyInterface(dev, iface)
		if err != nil {
			if errors.Is(err, board.ErrNotFound) || errors.Is(err, board.ErrAccess) {
				continue
			}
			return nil, err
		}
		if accepted {
			return iface, nil
		}
	}
	return nil, nil
}

// ifaceIsCompatible is the generic (family-agnostic) heuristic that decides
// whether iface could plausibly belong to the board already occupying its
// USB location, before any family-specific reconciliation runs. It exists
// to catch missed or out-of-order disconnect notifications: if the newly
// arrived interface's model or serial flatly contradicts the board sitting
// at that location, the old board is dropped and a new one takes its
// place.
func ifaceIsCompatible(iface *board.Interface, b *board.Board) bool {
	boardModel := b.Model()
	if iface.Model.IsReal() && boardModel.IsReal() && iface.Model != boardModel {
		return false
	}
	if iface.Serial != 0 && b.Serial() != 0 && iface.Serial != b.Serial() {
		return false
	}
	return true
}

func (m *Monitor) findBoard(location string) *board.Board {
	for _, b := range m.boards {
		if b.Location() == location {
			return b
		}
	}
	return nil
}

// closeBoard empties b's interface set, removes its interfaces from the
// monitor's device index, and marks it missing as of now, firing
// EventDisappeared. Callers that are dropping b outright call dropBoard
// immediately afterward.
func (m *Monitor) closeBoard(b *board.Board, now uint64) error {
	for _, iface := range b.Close() {
		delete(m.interfaces, iface.Dev)
	}
	b.MarkMissing(now)
	return m.triggerCallbacks(b, EventDisappeared)
}

// dropBoard removes b from the board list (and the missing queue, if
// present) and fires EventDropped.
func (m *Monitor) dropBoard(b *board.Board) error {
	m.removeFromMissing(b)
	for i, cur := range m.boards {
		if cur == b {
			m.boards = append(m.boards[:i], m.boards[i+1:]...)
			break
		}
	}
	b.MarkDropped()
	return m.triggerCallbacks(b, EventDropped)
}

// addMissingBoard enqueues b (already marked missing by closeBoard) onto
// the FIFO missing queue and arms the timer for whichever board in the
// queue is closest to its drop deadline.
func (m *Monitor) addMissingBoard(b *board.Board) error {
	m.removeFromMissing(b)
	m.missing = append(m.missing, b)

	if m.timer == nil || len(m.missing) == 0 {
		return nil
	}
	earliest := m.missing[0]
	return m.timer.Set(adjustTimeout(m.dropDelay, earliest.MissingSince(), m.clock))
}

func (m *Monitor) removeFromMissing(b *board.Board) {
	for i, cur := range m.missing {
		if cur == b {
			m.missing = append(m.missing[:i], m.missing[i+1:]...)
			return
		}
	}
}

// addInterface implements the ADDED/CHANGED half of device_callback: dev
// just came online.
func (m *Monitor) addInterface(dev platform.Device) error {
	iface, err := classifyDevice(dev)
	if err != nil {
		return err
	}
	if iface == nil {
		return nil
	}

	if err := iface.Model.Family.Ops.OpenInterface(iface); err != nil {
		if errors.Is(err, board.ErrNotFound) || errors.Is(err, board.ErrAccess) {
			return nil
		}
		return err
	}

	now := m.clock.Millis()

	existing := m.findBoard(dev.Location())
	if existing != nil && !ifaceIsCompatible(iface, existing) {
		if existing.State() == board.StateOnline {
			if err := m.closeBoard(existing, now); err != nil {
				return err
			}
		}
		if err := m.dropBoard(existing); err != nil {
			return err
		}
		existing = nil
	}

	var b *board.Board
	event := EventChanged

	if existing == nil {
		b = board.New(dev.Location(), iface.Model, iface.Serial, dev.VendorID(), dev.ProductID())
		m.boards = append(m.boards, b)
		event = EventAdded
	} else {
		b = existing
		vid, pid := b.VIDPID()
		if vid != dev.VendorID() || pid != dev.ProductID() {
			if b.State() == board.StateOnline {
				if err := m.closeBoard(b, now); err != nil {
					return err
				}
			}
			b.SetVIDPID(dev.VendorID(), dev.ProductID())
		}
	}

	compatible, err := iface.Model.Family.Classifier.UpdateBoard(iface, b)
	if err != nil {
		return err
	}
	if !compatible {
		// The generic heuristic above let this interface through, but the
		// family's own merge logic is the final authority; replace the
		// board outright.
		if b.State() == board.StateOnline {
			if err := m.closeBoard(b, now); err != nil {
				return err
			}
		}
		if err := m.dropBoard(b); err != nil {
			return err
		}
		b = board.New(dev.Location(), iface.Model, iface.Serial, dev.VendorID(), dev.ProductID())
		m.boards = append(m.boards, b)
		if _, err := iface.Model.Family.Classifier.UpdateBoard(iface, b); err != nil {
			return err
		}
		event = EventAdded
	}

	b.AddInterface(iface)
	m.interfaces[dev] = iface
	m.removeFromMissing(b)
	b.MarkOnline()

	return m.triggerCallbacks(b, event)
}

// removeInterface implements the DISCONNECTED half of device_callback: dev
// just went offline.
func (m *Monitor) removeInterface(dev platform.Device) error {
	iface, ok := m.interfaces[dev]
	if !ok {
		return nil
	}
	b := iface.Board

	delete(m.interfaces, dev)
	empty := b.RemoveInterface(iface)
	_ = iface.Model.Family.Ops.CloseInterface(iface)

	if empty {
		now := m.clock.Millis()
		if err := m.closeBoard(b, now); err != nil {
			return err
		}
		return m.addMissingBoard(b)
	}
	return m.triggerCallbacks(b, EventChanged)
}
