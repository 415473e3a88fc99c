package orderbook

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const (
	// PriceDecimals is the number of implied decimal places in a Price.
	PriceDecimals = 5
	// QuantityDecimals is the number of implied decimal places in a Quantity.
	QuantityDecimals = 3
)

// Side selects the chain an order rests in.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Opposite returns the side a taker on s matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Price is a fixed-point price with PriceDecimals implied decimals.
type Price uint64

// Decimal converts p to a decimal value.
func (p Price) Decimal() decimal.Decimal {
	return fixed(uint64(p), PriceDecimals)
}

// String renders p zero-padded to ten digits, e.g. 50000 is 00000.50000.
func (p Price) String() string {
	return pointed(fmt.Sprintf("%010d", uint64(p)), PriceDecimals)
}

// Quantity is a fixed-point size with QuantityDecimals implied decimals.
type Quantity uint64

// SaturatingSub returns q-o, or zero if o exceeds q.
func (q Quantity) SaturatingSub(o Quantity) Quantity {
	if o >= q {
		return 0
	}
	return q - o
}

// Decimal converts q to a decimal value.
func (q Quantity) Decimal() decimal.Decimal {
	return fixed(uint64(q), QuantityDecimals)
}

// String renders q zero-padded to six digits, e.g. 100 is 000.100.
func (q Quantity) String() string {
	return pointed(fmt.Sprintf("%06d", uint64(q)), QuantityDecimals)
}

// pointed places the decimal point before the last decimals digits.
func pointed(digits string, decimals int) string {
	cut := len(digits) - decimals
	return digits[:cut] + "." + digits[cut:]
}

func fixed(v uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), -decimals)
}

// OrderID is the caller-supplied order identifier. It is unique among
// active orders and may be reused once the order is gone.
type OrderID uint64

func (id OrderID) String() string {
	return fmt.Sprintf("ID:%d", uint64(id))
}

// Trade is one execution between a resting maker and an incoming taker.
// Price is always the maker's resting price.
type Trade struct {
	MakerID   OrderID
	TakerID   OrderID
	Price     Price
	Quantity  Quantity
	MakerSide Side
}

func (t Trade) String() string {
	return fmt.Sprintf("Trade{maker:%d taker:%d %s@%s %s}",
		t.MakerID, t.TakerID, t.Quantity, t.Price, t.MakerSide)
}
