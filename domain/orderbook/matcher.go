package orderbook

import "lob/infra/memory"

func crosses(takerSide Side, takerPrice, makerPrice Price) bool {
	if takerSide == Buy {
		return takerPrice >= makerPrice
	}
	return takerPrice <= makerPrice
}

// executeMatch runs an incoming order against the opposite chain,
// head first, appending one trade per fill to b.trades. It returns the
// quantity left once the taker is filled, the opposite side is empty, or
// the spread is no longer crossed.
func (b *OrderBook) executeMatch(takerID OrderID, side Side, price Price, qty Quantity) Quantity {
	opposite := side.Opposite()
	for qty > 0 {
		mh := b.head(opposite)
		if mh.IsNil() {
			break
		}
		maker := b.at(mh)
		if !crosses(side, price, maker.price) {
			break
		}
		if maker.qty == 0 {
			b.retire(mh)
			continue
		}

		fill := min(qty, maker.qty)
		b.trades = append(b.trades, Trade{
			MakerID:   maker.id,
			TakerID:   takerID,
			Price:     maker.price,
			Quantity:  fill,
			MakerSide: maker.side,
		})
		qty -= fill
		maker.qty -= fill

		if maker.qty == 0 {
			b.retire(mh)
		}
	}
	return qty
}

// retire removes a resting order completely: out of its chain, out of
// the index, and back onto the free list.
func (b *OrderBook) retire(h memory.Handle) {
	o := b.at(h)
	b.unlink(h)
	b.orders.remove(o.id)
	if err := b.slots.Release(h); err != nil {
		panic(err)
	}
	if !b.free.Push(h) {
		panic("orderbook: free list overflow")
	}
}
