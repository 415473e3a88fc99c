// Package memory provides the fixed-capacity storage primitives the
// order book is built on: a bump Arena that hands out stable handles,
// a FreeList that recycles released handles, and a SlotTable that tags
// every slot Free or Active so double frees and dangling handles are
// detectable.
//
// None of the types allocate after construction and none of them are
// safe for concurrent use; a single owner drives them.
package memory
