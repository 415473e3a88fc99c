package orderbook

import (
	"fmt"

	"go.uber.org/multierr"

	"lob/infra/memory"
)

const defaultTradeBuffer = 16

// OrderBook is the single-writer book for one symbol.
type OrderBook struct {
	symbol string

	arena  *memory.Arena[Order]
	free   *memory.FreeList
	slots  *memory.SlotTable
	orders index
	levels *levelIndex

	bestBid memory.Handle
	bestAsk memory.Handle

	trades []Trade
}

// Option configures an OrderBook.
type Option func(*OrderBook)

// WithLevelIndex keeps an ordered index of price levels next to the
// chains so inserts no longer walk the book.
func WithLevelIndex() Option {
	return func(b *OrderBook) { b.levels = newLevelIndex() }
}

// WithTradeBuffer pre-sizes the buffer trades are collected in.
func WithTradeBuffer(n int) Option {
	return func(b *OrderBook) {
		if n > 0 {
			b.trades = make([]Trade, 0, n)
		}
	}
}

// New creates a book able to hold capacity resting orders. All record
// storage is committed here.
func New(symbol string, capacity int, opts ...Option) *OrderBook {
	b := &OrderBook{
		symbol: symbol,
		arena:  memory.NewArena[Order](capacity),
		free:   memory.NewFreeList(capacity),
		slots:  memory.NewSlotTable(capacity),
		orders: newIndex(capacity),
		trades: make([]Trade, 0, defaultTradeBuffer),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PlaceLimitOrder matches the order against the opposite side and rests
// whatever is left. The returned order is nil when nothing rests.
//
// On ErrExhaustedCapacity the trades already executed are returned and
// stay valid; only the unfilled remainder is dropped.
func (b *OrderBook) PlaceLimitOrder(id OrderID, side Side, price Price, qty Quantity) (*Order, []Trade, error) {
	b.trades = b.trades[:0]
	if b.orders.contains(id) {
		return nil, nil, fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}

	remaining := b.executeMatch(id, side, price, qty)
	if remaining == 0 {
		return nil, b.trades, nil
	}

	h, ok := b.acquire()
	if !ok {
		return nil, b.trades, fmt.Errorf("%w: order %d", ErrExhaustedCapacity, id)
	}
	o := b.at(h)
	o.reset(id, side, price, remaining)
	if err := b.slots.Activate(h, uint64(id)); err != nil {
		panic(err)
	}
	b.insertSorted(h, side, price)
	b.orders.insert(id, h, b.slots.Generation(h))

	return o, b.trades, nil
}

// acquire takes a recycled slot if there is one, otherwise bumps the arena.
func (b *OrderBook) acquire() (memory.Handle, bool) {
	if h, ok := b.free.Pop(); ok {
		return h, true
	}
	h, err := b.arena.Alloc()
	if err != nil {
		return memory.Nil, false
	}
	return h, true
}

// ModifyOrder changes the price or quantity of a resting order.
//
// Keeping the price and not growing the quantity shrinks the order in
// place and keeps its queue position; shrinking to zero cancels it. Any
// other change cancels the order and places it again with the new values,
// which loses priority and may trade immediately.
func (b *OrderBook) ModifyOrder(id OrderID, price Price, qty Quantity) (*Order, []Trade, error) {
	h, ok := b.orders.lookup(id)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	o := b.at(h)

	if o.price == price && qty <= o.qty {
		if qty == 0 {
			b.retire(h)
			return nil, nil, nil
		}
		o.qty = qty
		return o, nil, nil
	}

	// The cancel must finish before the new placement so the id is free again.
	side := o.side
	b.retire(h)
	return b.PlaceLimitOrder(id, side, price, qty)
}

// CancelOrder removes a resting order.
func (b *OrderBook) CancelOrder(id OrderID) (OrderID, error) {
	h, ok := b.orders.lookup(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	b.retire(h)
	return id, nil
}

// Lookup returns the resting order with the given id. An entry whose
// slot has since been reactivated under another generation is not
// returned.
func (b *OrderBook) Lookup(id OrderID) (*Order, bool) {
	ref, ok := b.orders.ref(id)
	if !ok || b.slots.Generation(ref.h) != ref.gen {
		return nil, false
	}
	return b.at(ref.h), true
}

// Walk visits side's resting orders best first until fn returns false.
// fn must not modify the book.
func (b *OrderBook) Walk(side Side, fn func(o *Order) bool) {
	for h := b.head(side); !h.IsNil(); {
		o := b.at(h)
		h = o.next
		if !fn(o) {
			return
		}
	}
}

// BestBidPrice is the highest resting buy price.
func (b *OrderBook) BestBidPrice() (Price, bool) { return b.bestOf(Buy) }

// BestAskPrice is the lowest resting sell price.
func (b *OrderBook) BestAskPrice() (Price, bool) { return b.bestOf(Sell) }

// Symbol is the instrument this book trades.
func (b *OrderBook) Symbol() string { return b.symbol }

// CapacityBytes is the record storage committed at construction.
func (b *OrderBook) CapacityBytes() int { return b.arena.CapacityBytes() }

// UsedBytes is the record storage taken from the arena so far. Reusing a
// recycled slot does not change it.
func (b *OrderBook) UsedBytes() int { return b.arena.UsedBytes() }

// ActiveOrders is the number of resting orders.
func (b *OrderBook) ActiveOrders() int { return b.orders.len() }

// FreeSlots is the number of recycled slots waiting for reuse.
func (b *OrderBook) FreeSlots() int { return b.free.Len() }

// CheckInvariants walks both chains and cross-checks them against the
// index, the slot table and the arena. It is O(N) and meant for tests and
// debugging.
func (b *OrderBook) CheckInvariants() error {
	var errs error
	linked := 0
	for _, side := range []Side{Buy, Sell} {
		n, err := b.checkChain(side)
		linked += n
		errs = multierr.Append(errs, err)
	}

	if linked != b.orders.len() {
		errs = multierr.Append(errs, fmt.Errorf("%d orders linked, %d indexed", linked, b.orders.len()))
	}
	if b.slots.Active() != b.orders.len() {
		errs = multierr.Append(errs, fmt.Errorf("%d slots active, %d indexed", b.slots.Active(), b.orders.len()))
	}
	if b.orders.len()+b.free.Len() != b.arena.Len() {
		errs = multierr.Append(errs, fmt.Errorf("%d active + %d free != %d slots taken",
			b.orders.len(), b.free.Len(), b.arena.Len()))
	}
	for id, ref := range b.orders.m {
		if owner, ok := b.slots.Owner(ref.h); !ok || OrderID(owner) != id {
			errs = multierr.Append(errs, fmt.Errorf("order %d indexed on slot %d not held by it", id, ref.h))
		}
		if gen := b.slots.Generation(ref.h); gen != ref.gen {
			errs = multierr.Append(errs, fmt.Errorf("order %d indexed under generation %d, slot %d is at %d",
				id, ref.gen, ref.h, gen))
		}
	}
	if b.levels != nil {
		errs = multierr.Append(errs, b.checkLevels())
	}
	return errs
}

func (b *OrderBook) checkChain(side Side) (int, error) {
	var errs error
	count := 0
	prev := memory.Nil
	for h := b.head(side); !h.IsNil(); h = b.at(h).next {
		if count > b.arena.Len() {
			return count, multierr.Append(errs, fmt.Errorf("%s chain has a cycle", side))
		}
		count++
		o := b.at(h)
		if o.prev != prev {
			errs = multierr.Append(errs, fmt.Errorf("order %d: back link %d, want %d", o.id, o.prev, prev))
		}
		if o.side != side {
			errs = multierr.Append(errs, fmt.Errorf("order %d: %s order in %s chain", o.id, o.side, side))
		}
		if o.qty == 0 {
			errs = multierr.Append(errs, fmt.Errorf("order %d: resting with zero quantity", o.id))
		}
		if ih, ok := b.orders.lookup(o.id); !ok || ih != h {
			errs = multierr.Append(errs, fmt.Errorf("order %d: linked but not indexed at slot %d", o.id, h))
		}
		if !prev.IsNil() && ranksBefore(side, o.price, b.at(prev).price) {
			errs = multierr.Append(errs, fmt.Errorf("%s chain out of order at order %d", side, o.id))
		}
		prev = h
	}
	return count, errs
}

func (b *OrderBook) checkLevels() error {
	var errs error
	for _, side := range []Side{Buy, Sell} {
		distinct := 0
		last, seen := Price(0), false
		b.Walk(side, func(o *Order) bool {
			if !seen || o.price != last {
				distinct++
			}
			last, seen = o.price, true
			return true
		})
		if n := b.levels.levels(side); n != distinct {
			errs = multierr.Append(errs, fmt.Errorf("%s: %d levels indexed, %d in chain", side, n, distinct))
		}
		b.levels.scan(side, func(price Price, tail memory.Handle) bool {
			if !b.arena.Contains(tail) {
				errs = multierr.Append(errs, fmt.Errorf("%s level %s: tail %d not allocated", side, price, tail))
				return true
			}
			o := b.at(tail)
			if o.price != price {
				errs = multierr.Append(errs, fmt.Errorf("%s level %s: tail priced %s", side, price, o.price))
			}
			if !o.next.IsNil() && b.at(o.next).price == price {
				errs = multierr.Append(errs, fmt.Errorf("%s level %s: tail is not last", side, price))
			}
			return true
		})
	}
	return errs
}
