package orderbook

import "lob/infra/memory"

// Order is a record in the book's arena. The link fields chain it to
// its neighbours on the same side; the book's best bid and best ask
// handles are the only way into a chain.
//
// Orders handed out by the book are read-only views: every change goes
// through ModifyOrder or CancelOrder so the chains stay sorted.
type Order struct {
	id    OrderID
	price Price
	qty   Quantity
	next  memory.Handle
	prev  memory.Handle
	side  Side
}

func (o *Order) reset(id OrderID, side Side, price Price, qty Quantity) {
	*o = Order{id: id, side: side, price: price, qty: qty}
}

// ID is the caller-supplied identifier.
func (o *Order) ID() OrderID { return o.id }

// Side is the chain the order rests in.
func (o *Order) Side() Side { return o.side }

// Price is the limit price.
func (o *Order) Price() Price { return o.price }

// Qty is the quantity still resting.
func (o *Order) Qty() Quantity { return o.qty }
