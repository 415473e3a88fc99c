package memory

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotActive is returned when activating a slot that already has an owner.
	ErrSlotActive = errors.New("memory: slot already active")
	// ErrSlotFree is returned when releasing a slot that has no owner.
	ErrSlotFree = errors.New("memory: slot already free")
)

type slotState struct {
	owner  uint64
	gen    uint32
	active bool
}

// SlotTable tracks, for every slot of an arena, whether it is Free or
// Active and which owner key holds it. Each activation bumps the slot's
// generation, so a stale (handle, generation) pair can be told apart from
// the record that now occupies the slot.
type SlotTable struct {
	states []slotState
	active int
}

// NewSlotTable sizes the table for capacity slots.
func NewSlotTable(capacity int) *SlotTable {
	if capacity < 0 {
		capacity = 0
	}
	return &SlotTable{states: make([]slotState, capacity)}
}

func (t *SlotTable) state(h Handle) (*slotState, error) {
	if h == Nil || h.slot() >= len(t.states) {
		return nil, fmt.Errorf("memory: handle %d out of range", h)
	}
	return &t.states[h.slot()], nil
}

// Activate marks h as held by owner.
func (t *SlotTable) Activate(h Handle, owner uint64) error {
	s, err := t.state(h)
	if err != nil {
		return err
	}
	if s.active {
		return fmt.Errorf("%w: handle %d held by %d", ErrSlotActive, h, s.owner)
	}
	s.owner = owner
	s.active = true
	s.gen++
	t.active++
	return nil
}

// Release marks h as free again.
func (t *SlotTable) Release(h Handle) error {
	s, err := t.state(h)
	if err != nil {
		return err
	}
	if !s.active {
		return fmt.Errorf("%w: handle %d", ErrSlotFree, h)
	}
	s.active = false
	t.active--
	return nil
}

// Owner returns the owner key of h and whether the slot is active.
func (t *SlotTable) Owner(h Handle) (uint64, bool) {
	s, err := t.state(h)
	if err != nil || !s.active {
		return 0, false
	}
	return s.owner, true
}

// Generation is the number of times h has been activated.
func (t *SlotTable) Generation(h Handle) uint32 {
	s, err := t.state(h)
	if err != nil {
		return 0
	}
	return s.gen
}

// Active is the number of slots currently held.
func (t *SlotTable) Active() int { return t.active }
