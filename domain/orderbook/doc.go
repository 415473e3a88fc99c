// Package orderbook is the matching core for a single instrument.
//
// Resting limit orders are kept in two intrusive doubly-linked chains,
// one per side, sorted by price with ties broken by arrival. Records live
// in a fixed-capacity arena and are linked by handle rather than pointer;
// canceled and filled records go onto a free list and are reused before
// the arena is bumped again, so once the book has warmed up neither
// placement nor cancellation allocates.
//
// An OrderBook is single-writer: exactly one goroutine may call its
// methods. Orders and trade slices it returns are valid only until the
// next mutating call.
package orderbook
