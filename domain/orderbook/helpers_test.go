package orderbook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var modes = []struct {
	name string
	opts []Option
}{
	{"walk", nil},
	{"level-index", []Option{WithLevelIndex()}},
}

// eachMode runs fn once per insertion strategy. Both must behave the same.
func eachMode(t *testing.T, fn func(t *testing.T, newBook func(capacity int) *OrderBook)) {
	t.Helper()
	for _, m := range modes {
		t.Run(m.name, func(t *testing.T) {
			fn(t, func(capacity int) *OrderBook {
				return New("BTC-USDT", capacity, m.opts...)
			})
		})
	}
}

func place(t *testing.T, b *OrderBook, id OrderID, side Side, price Price, qty Quantity) (*Order, []Trade) {
	t.Helper()
	o, trades, err := b.PlaceLimitOrder(id, side, price, qty)
	require.NoError(t, err)
	require.NoError(t, b.CheckInvariants())
	return o, append([]Trade(nil), trades...)
}

func chainIDs(b *OrderBook, side Side) []OrderID {
	var ids []OrderID
	b.Walk(side, func(o *Order) bool {
		ids = append(ids, o.ID())
		return true
	})
	return ids
}

func recordSize(b *OrderBook) int { return b.arena.RecordSize() }
