package orderbook

import "lob/infra/memory"

func (b *OrderBook) at(h memory.Handle) *Order { return b.arena.At(h) }

func (b *OrderBook) head(side Side) memory.Handle {
	if side == Buy {
		return b.bestBid
	}
	return b.bestAsk
}

func (b *OrderBook) setHead(side Side, h memory.Handle) {
	if side == Buy {
		b.bestBid = h
	} else {
		b.bestAsk = h
	}
}

// ranksBefore reports whether a new order at price goes in front of a
// resting order at resting. Equal prices never rank before, which keeps
// arrival order within a level.
func ranksBefore(side Side, price, resting Price) bool {
	if side == Buy {
		return price > resting
	}
	return price < resting
}

// insertSorted links h into side's chain after every order that is
// better priced or equally priced.
func (b *OrderBook) insertSorted(h memory.Handle, side Side, price Price) {
	var prev, curr memory.Handle
	if b.levels != nil {
		prev = b.levels.predecessor(side, price)
		if prev.IsNil() {
			curr = b.head(side)
		} else {
			curr = b.at(prev).next
		}
	} else {
		curr = b.head(side)
		for !curr.IsNil() {
			o := b.at(curr)
			if ranksBefore(side, price, o.price) {
				break
			}
			prev = curr
			curr = o.next
		}
	}

	o := b.at(h)
	o.prev = prev
	o.next = curr
	if !curr.IsNil() {
		b.at(curr).prev = h
	}
	if prev.IsNil() {
		b.setHead(side, h)
	} else {
		b.at(prev).next = h
	}

	if b.levels != nil {
		b.levels.setTail(side, price, h)
	}
}

// unlink splices h out of its chain. It leaves the index, slot table and
// free list alone.
func (b *OrderBook) unlink(h memory.Handle) {
	o := b.at(h)

	if b.levels != nil {
		if tail, ok := b.levels.tail(o.side, o.price); ok && tail == h {
			if !o.prev.IsNil() && b.at(o.prev).price == o.price {
				b.levels.setTail(o.side, o.price, o.prev)
			} else {
				b.levels.drop(o.side, o.price)
			}
		}
	}

	if !o.next.IsNil() {
		b.at(o.next).prev = o.prev
	}
	if !o.prev.IsNil() {
		b.at(o.prev).next = o.next
	} else if b.head(o.side) == h {
		b.setHead(o.side, o.next)
	}
	o.next, o.prev = memory.Nil, memory.Nil
}

// bestOf returns the head price of side.
func (b *OrderBook) bestOf(side Side) (Price, bool) {
	h := b.head(side)
	if h.IsNil() {
		return 0, false
	}
	return b.at(h).price, true
}
