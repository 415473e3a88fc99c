package orderbook

import "lob/infra/memory"

// slotRef is an index entry: the slot an order lives in and the slot
// generation it was activated under.
type slotRef struct {
	h   memory.Handle
	gen uint32
}

// index maps resting order ids to their arena slots.
type index struct {
	m map[OrderID]slotRef
}

func newIndex(capacity int) index {
	return index{m: make(map[OrderID]slotRef, capacity)}
}

func (x index) lookup(id OrderID) (memory.Handle, bool) {
	ref, ok := x.m[id]
	return ref.h, ok
}

func (x index) ref(id OrderID) (slotRef, bool) {
	ref, ok := x.m[id]
	return ref, ok
}

func (x index) contains(id OrderID) bool {
	_, ok := x.m[id]
	return ok
}

func (x index) insert(id OrderID, h memory.Handle, gen uint32) {
	x.m[id] = slotRef{h: h, gen: gen}
}

func (x index) remove(id OrderID) (memory.Handle, bool) {
	ref, ok := x.m[id]
	if ok {
		delete(x.m, id)
	}
	return ref.h, ok
}

func (x index) len() int { return len(x.m) }
