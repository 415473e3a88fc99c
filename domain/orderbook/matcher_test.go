package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradesAtMakerPrice(t *testing.T) {
	eachMode(t, func(t *testing.T, newBook func(int) *OrderBook) {
		b := newBook(8)
		place(t, b, 1, Buy, 105, 5)
		place(t, b, 2, Buy, 103, 5)

		o, trades := place(t, b, 3, Sell, 100, 8)
		assert.Nil(t, o)
		assert.Equal(t, []Trade{
			{MakerID: 1, TakerID: 3, Price: 105, Quantity: 5, MakerSide: Buy},
			{MakerID: 2, TakerID: 3, Price: 103, Quantity: 3, MakerSide: Buy},
		}, trades)

		rest, ok := b.Lookup(2)
		require.True(t, ok)
		assert.Equal(t, Quantity(2), rest.Qty())
	})
}

func TestTakerRestsRemainder(t *testing.T) {
	eachMode(t, func(t *testing.T, newBook func(int) *OrderBook) {
		b := newBook(8)
		place(t, b, 1, Sell, 100, 5)
		place(t, b, 2, Sell, 110, 5)

		o, trades := place(t, b, 3, Buy, 105, 9)
		require.Len(t, trades, 1)
		require.NotNil(t, o)
		assert.Equal(t, Quantity(4), o.Qty())
		assert.Equal(t, Price(105), o.Price())

		bid, _ := b.BestBidPrice()
		ask, _ := b.BestAskPrice()
		assert.Equal(t, Price(105), bid)
		assert.Equal(t, Price(110), ask)
	})
}

func TestTouchingPricesCross(t *testing.T) {
	b := New("BTC-USDT", 4)
	place(t, b, 1, Buy, 100, 5)
	_, trades := place(t, b, 2, Sell, 100, 5)
	require.Len(t, trades, 1)
	assert.Equal(t, Price(100), trades[0].Price)
	assert.Zero(t, b.ActiveOrders())
}

func TestZeroQuantityPlacement(t *testing.T) {
	b := New("BTC-USDT", 4)
	place(t, b, 1, Sell, 100, 5)

	o, trades := place(t, b, 2, Buy, 200, 0)
	assert.Nil(t, o)
	assert.Empty(t, trades)
	assert.Equal(t, 1, b.ActiveOrders())
	assert.Equal(t, recordSize(b), b.UsedBytes())
}

func TestEmptyBookHasNoBest(t *testing.T) {
	b := New("BTC-USDT", 4)
	_, ok := b.BestBidPrice()
	assert.False(t, ok)
	_, ok = b.BestAskPrice()
	assert.False(t, ok)
	assert.Zero(t, b.UsedBytes())
	require.NoError(t, b.CheckInvariants())
}

func TestTradeBufferIsReused(t *testing.T) {
	b := New("BTC-USDT", 16, WithTradeBuffer(4))
	for i := OrderID(1); i <= 4; i++ {
		place(t, b, i, Sell, 100, 1)
	}
	_, first, err := b.PlaceLimitOrder(10, Buy, 100, 4)
	require.NoError(t, err)
	require.Len(t, first, 4)

	place(t, b, 11, Sell, 100, 1)
	_, second, err := b.PlaceLimitOrder(12, Buy, 100, 1)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Same(t, &first[0], &second[0])
}

func TestSteadyStateDoesNotAllocate(t *testing.T) {
	for _, m := range modes {
		t.Run(m.name, func(t *testing.T) {
			b := New("BTC-USDT", 64, m.opts...)
			_, _, _ = b.PlaceLimitOrder(1, Sell, 101, 10)
			_, _, _ = b.PlaceLimitOrder(2, Buy, 99, 10)

			allocs := testing.AllocsPerRun(200, func() {
				_, _, _ = b.PlaceLimitOrder(3, Buy, 98, 5)
				_, _ = b.CancelOrder(3)
				_, _, _ = b.PlaceLimitOrder(4, Sell, 100, 1)
				_, _, _ = b.PlaceLimitOrder(5, Buy, 100, 1)
				_, _, _ = b.ModifyOrder(2, 99, 9)
				_, _, _ = b.ModifyOrder(2, 99, 10)
			})
			require.NoError(t, b.CheckInvariants())
			// Order 2 is the only bid at 99, so the relist empties and
			// refills its level every run.
			assert.Zero(t, allocs)
		})
	}
}
