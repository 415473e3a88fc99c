package service

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lob/domain/orderbook"
	"lob/infra/config"
	"lob/infra/logging"
	"lob/infra/metrics"
	"lob/infra/sequence"
)

/*
OrderService is the ONLY write entry point into a book.

It is not safe for concurrent use: one goroutine issues commands. Stats
and Symbol may be called from any goroutine.
*/
type OrderService struct {
	book *orderbook.OrderBook
	seq  *sequence.Sequencer
	log  *zap.Logger

	active   atomic.Int64
	free     atomic.Int64
	used     atomic.Int64
	capacity int

	trades    atomic.Uint64
	dupes     atomic.Uint64
	notFound  atomic.Uint64
	exhausted atomic.Uint64
}

// Result is the outcome of one command. Order and Trades point into the
// book and are valid until the next command.
type Result struct {
	Seq    uint64
	Order  *orderbook.Order
	Trades []orderbook.Trade
}

// New validates cfg and builds the book it describes. With a nil log it
// builds its own at cfg.LogLevel.
func New(cfg config.Config, log *zap.Logger) (*OrderService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		var err error
		if log, err = logging.New(cfg.LogLevel); err != nil {
			return nil, err
		}
	}

	book := orderbook.New(cfg.Symbol, cfg.Capacity, cfg.BookOptions()...)
	s := &OrderService{
		book:     book,
		seq:      sequence.New(0),
		log:      log.With(zap.String("symbol", cfg.Symbol)),
		capacity: book.CapacityBytes(),
	}
	s.publish()

	s.log.Info("order book ready",
		zap.Int("capacity", cfg.Capacity),
		zap.Int("capacity_bytes", s.capacity),
		zap.Bool("level_index", cfg.LevelIndex),
	)
	return s, nil
}

//
// ──────────────────────────────────────────────────────────
// Commands
// ──────────────────────────────────────────────────────────
//

// PlaceOrder submits a limit order.
func (s *OrderService) PlaceOrder(id orderbook.OrderID, side orderbook.Side, price orderbook.Price, qty orderbook.Quantity) (Result, error) {
	seq := s.seq.Next()
	o, trades, err := s.book.PlaceLimitOrder(id, side, price, qty)
	s.after("place", seq, id, trades, err)
	return Result{Seq: seq, Order: o, Trades: trades}, err
}

// ModifyOrder changes the price or quantity of a resting order.
func (s *OrderService) ModifyOrder(id orderbook.OrderID, price orderbook.Price, qty orderbook.Quantity) (Result, error) {
	seq := s.seq.Next()
	o, trades, err := s.book.ModifyOrder(id, price, qty)
	s.after("modify", seq, id, trades, err)
	return Result{Seq: seq, Order: o, Trades: trades}, err
}

// CancelOrder removes a resting order.
func (s *OrderService) CancelOrder(id orderbook.OrderID) (Result, error) {
	seq := s.seq.Next()
	_, err := s.book.CancelOrder(id)
	s.after("cancel", seq, id, nil, err)
	return Result{Seq: seq}, err
}

func (s *OrderService) after(op string, seq uint64, id orderbook.OrderID, trades []orderbook.Trade, err error) {
	s.trades.Add(uint64(len(trades)))
	if err != nil {
		s.reject(op, seq, id, err)
	}
	s.publish()
}

func (s *OrderService) reject(op string, seq uint64, id orderbook.OrderID, err error) {
	switch {
	case errors.Is(err, orderbook.ErrDuplicateID):
		s.dupes.Add(1)
	case errors.Is(err, orderbook.ErrNotFound):
		s.notFound.Add(1)
	case errors.Is(err, orderbook.ErrExhaustedCapacity):
		s.exhausted.Add(1)
	}

	if ce := s.log.Check(zapcore.DebugLevel, "command rejected"); ce != nil {
		ce.Write(
			zap.String("op", op),
			zap.Uint64("seq", seq),
			zap.Uint64("order_id", uint64(id)),
			zap.Error(err),
		)
	}
}

func (s *OrderService) publish() {
	s.active.Store(int64(s.book.ActiveOrders()))
	s.free.Store(int64(s.book.FreeSlots()))
	s.used.Store(int64(s.book.UsedBytes()))
}

//
// ──────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────
//

// Level is one aggregated price level.
type Level struct {
	Price  orderbook.Price
	Qty    orderbook.Quantity
	Orders int
}

// Depth aggregates up to n price levels of side, best first. Like the
// commands it must be called from the owning goroutine.
func (s *OrderService) Depth(side orderbook.Side, n int) []Level {
	out := make([]Level, 0, n)
	if n <= 0 {
		return out
	}
	s.book.Walk(side, func(o *orderbook.Order) bool {
		if last := len(out) - 1; last >= 0 && out[last].Price == o.Price() {
			out[last].Qty += o.Qty()
			out[last].Orders++
			return true
		}
		if len(out) == n {
			return false
		}
		out = append(out, Level{Price: o.Price(), Qty: o.Qty(), Orders: 1})
		return true
	})
	return out
}

// BestBidPrice is the highest resting buy price.
func (s *OrderService) BestBidPrice() (orderbook.Price, bool) { return s.book.BestBidPrice() }

// BestAskPrice is the lowest resting sell price.
func (s *OrderService) BestAskPrice() (orderbook.Price, bool) { return s.book.BestAskPrice() }

// Symbol implements metrics.StatsSource.
func (s *OrderService) Symbol() string { return s.book.Symbol() }

// Stats implements metrics.StatsSource.
func (s *OrderService) Stats() metrics.Snapshot {
	return metrics.Snapshot{
		ActiveOrders:     int(s.active.Load()),
		FreeSlots:        int(s.free.Load()),
		UsedBytes:        int(s.used.Load()),
		CapacityBytes:    s.capacity,
		LastSequence:     s.seq.Last(),
		Trades:           s.trades.Load(),
		DuplicateIDs:     s.dupes.Load(),
		NotFound:         s.notFound.Load(),
		ExhaustedRejects: s.exhausted.Load(),
	}
}

var _ metrics.StatsSource = (*OrderService)(nil)
