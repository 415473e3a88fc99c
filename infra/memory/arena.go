package memory

import (
	"errors"
	"unsafe"
)

// ErrArenaExhausted is returned by Alloc once every slot has been handed out.
var ErrArenaExhausted = errors.New("memory: arena exhausted")

// Handle addresses one slot of an Arena. The zero Handle is Nil and never
// refers to a slot, so it can be used as an empty link.
type Handle uint32

// Nil is the empty handle.
const Nil Handle = 0

// IsNil reports whether h refers to no slot.
func (h Handle) IsNil() bool { return h == Nil }

func (h Handle) slot() int { return int(h) - 1 }

// Arena is a fixed-capacity bump allocator of T records.
// Records never move: a pointer returned by At stays valid for the
// lifetime of the arena. There is no individual free; released slots are
// recycled by the caller (see FreeList).
type Arena[T any] struct {
	slots []T
	used  int
}

// NewArena pre-allocates capacity records.
func NewArena[T any](capacity int) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena[T]{slots: make([]T, capacity)}
}

// Alloc bumps the arena and returns the handle of a zeroed, never used slot.
func (a *Arena[T]) Alloc() (Handle, error) {
	if a.used == len(a.slots) {
		return Nil, ErrArenaExhausted
	}
	a.used++
	return Handle(a.used), nil
}

// At returns the record stored at h. It panics on Nil or on a handle that
// was never allocated.
func (a *Arena[T]) At(h Handle) *T {
	if h == Nil || h.slot() >= a.used {
		panic("memory: handle out of range")
	}
	return &a.slots[h.slot()]
}

// Contains reports whether h was handed out by this arena.
func (a *Arena[T]) Contains(h Handle) bool {
	return h != Nil && h.slot() < a.used
}

// Len is the number of slots bumped so far.
func (a *Arena[T]) Len() int { return a.used }

// RecordSize is the size in bytes of one T.
func (a *Arena[T]) RecordSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// CapacityBytes is the committed slot count × RecordSize.
func (a *Arena[T]) CapacityBytes() int { return len(a.slots) * a.RecordSize() }

// UsedBytes is Len × RecordSize. It only grows.
func (a *Arena[T]) UsedBytes() int { return a.used * a.RecordSize() }
