// Package book implements the central limit order book: two price-indexed
// ladders of FIFO queues (spec.md §4.4), a hash index for O(log n) cancel
// and lookup, and a (trader, nonce) index for nonce uniqueness. Price
// levels are ordered with github.com/tidwall/btree.BTreeG, the same
// structure saiputravu-Exchange's engine.OrderBook uses for its bid/ask
// ladders.
package book

import (
	"clob/internal/decimal"
	"clob/internal/types"
)

// Order is the book's internal representation of a live order. RestingAmount
// starts equal to Amount and monotonically decreases as the order fills; the
// order is live iff it is reachable from the book and RestingAmount > 0.
type Order struct {
	Hash          types.Hash
	TraderAddress types.Address
	Side          types.Side
	Price         decimal.Decimal
	Amount        decimal.Decimal
	Nonce         types.Nonce
	RestingAmount decimal.Decimal
}
