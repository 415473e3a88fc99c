package memory

// FreeList is a fixed-capacity LIFO stack of released handles.
// The last handle pushed is the first one reused, which keeps the
// working set of slots small and hot.
type FreeList struct {
	store []Handle
	top   int
}

// NewFreeList sizes the stack for capacity handles up front so Push never
// allocates.
func NewFreeList(capacity int) *FreeList {
	if capacity < 0 {
		capacity = 0
	}
	return &FreeList{store: make([]Handle, capacity)}
}

// Push stores h for reuse. It returns false when the stack is full.
func (f *FreeList) Push(h Handle) bool {
	if f.top == len(f.store) {
		return false
	}
	f.store[f.top] = h
	f.top++
	return true
}

// Pop returns the most recently pushed handle.
func (f *FreeList) Pop() (Handle, bool) {
	if f.top == 0 {
		return Nil, false
	}
	f.top--
	h := f.store[f.top]
	f.store[f.top] = Nil
	return h, true
}

// Len is the number of handles waiting for reuse.
func (f *FreeList) Len() int { return f.top }
