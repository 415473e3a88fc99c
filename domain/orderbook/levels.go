package orderbook

import (
	"math"

	"github.com/tidwall/btree"

	"lob/infra/memory"
)

const levelDegree = 32

// levelIndex remembers the last order of every price level on each side
// so a new order finds its place in the chain in O(log L) instead of
// walking it.
//
// Each tree holds a sentinel key at the far end of its side (the highest
// price for bids, the lowest for asks) whose value is Nil while no real
// level sits there. The tree never empties, so the root node is kept and
// levels coming and going reuse existing nodes.
type levelIndex struct {
	tails [2]*btree.Map[Price, memory.Handle]

	found memory.Handle
	first func(Price, memory.Handle) bool
}

func sentinel(side Side) Price {
	if side == Buy {
		return math.MaxUint64
	}
	return 0
}

func newLevelIndex() *levelIndex {
	l := &levelIndex{}
	for _, side := range []Side{Buy, Sell} {
		l.tails[side] = btree.NewMap[Price, memory.Handle](levelDegree)
		l.tails[side].Set(sentinel(side), memory.Nil)
	}
	l.first = func(_ Price, tail memory.Handle) bool {
		l.found = tail
		return false
	}
	return l
}

// predecessor returns the order a new order at price must follow, or Nil
// when it becomes the head. Bids are chained high to low, so that is the
// tail of the lowest level at or above price; asks mirror it. An empty
// sentinel yields Nil.
func (l *levelIndex) predecessor(side Side, price Price) memory.Handle {
	l.found = memory.Nil
	if side == Buy {
		l.tails[Buy].Ascend(price, l.first)
	} else {
		l.tails[Sell].Descend(price, l.first)
	}
	return l.found
}

func (l *levelIndex) tail(side Side, price Price) (memory.Handle, bool) {
	h, ok := l.tails[side].Get(price)
	return h, ok && !h.IsNil()
}

func (l *levelIndex) setTail(side Side, price Price, h memory.Handle) {
	l.tails[side].Set(price, h)
}

func (l *levelIndex) drop(side Side, price Price) {
	if price == sentinel(side) {
		l.tails[side].Set(price, memory.Nil)
		return
	}
	l.tails[side].Delete(price)
}

// levels is the number of real price levels on side.
func (l *levelIndex) levels(side Side) int {
	n := l.tails[side].Len()
	if _, ok := l.tail(side, sentinel(side)); !ok {
		n--
	}
	return n
}

func (l *levelIndex) scan(side Side, fn func(price Price, tail memory.Handle) bool) {
	l.tails[side].Scan(func(price Price, tail memory.Handle) bool {
		if tail.IsNil() {
			return true
		}
		return fn(price, tail)
	})
}
