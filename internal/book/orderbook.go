package book

import (
	"clob/internal/coreerr"
	"clob/internal/decimal"
	"clob/internal/types"
)

const defaultL2Depth = 50

// locator is the hash index's non-owning reference to a live order: the
// book's ladders uniquely own the Order; this only points at where to find
// it (spec.md §3 "Ownership").
type locator struct {
	level *PriceLevel
	elem  *listElement
}

type nonceKey struct {
	trader types.Address
	nonce  types.Nonce
}

// OrderBook holds both ladders plus the hash and (trader, nonce) indices
// spec.md §4.4 describes.
type OrderBook struct {
	bids *ladder
	asks *ladder

	byHash map[types.Hash]locator
	// nonces is permanently consumed once set — spec.md §9's open question,
	// resolved in favor of permanent consumption for simplicity.
	nonces map[nonceKey]struct{}
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids:   newLadder(types.Bid),
		asks:   newLadder(types.Ask),
		byHash: make(map[types.Hash]locator),
		nonces: make(map[nonceKey]struct{}),
	}
}

func (b *OrderBook) ladder(side types.Side) *ladder {
	if side == types.Bid {
		return b.bids
	}
	return b.asks
}

// NonceUsed reports whether (trader, nonce) has ever been accepted.
func (b *OrderBook) NonceUsed(trader types.Address, nonce types.Nonce) bool {
	_, used := b.nonces[nonceKey{trader, nonce}]
	return used
}

// ConsumeNonce permanently marks (trader, nonce) as used.
func (b *OrderBook) ConsumeNonce(trader types.Address, nonce types.Nonce) {
	b.nonces[nonceKey{trader, nonce}] = struct{}{}
}

// Insert appends order to the tail of its (side, price) level, creating the
// level if absent, and updates the hash index. The caller is responsible
// for nonce bookkeeping and account reservation before calling this.
func (b *OrderBook) Insert(order *Order) {
	level := b.ladder(order.Side).getOrCreate(order.Price)
	elem := pushBack(level, order)
	b.byHash[order.Hash] = locator{level: level, elem: elem}
}

// Lookup returns the live order for hash.
func (b *OrderBook) Lookup(hash types.Hash) (*Order, error) {
	loc, ok := b.byHash[hash]
	if !ok {
		return nil, coreerr.Newf(coreerr.NotFound, "no live order for hash %s", hash)
	}
	return elementOrder(loc.elem), nil
}

// Cancel removes the live order referenced by hash from its level and from
// the hash index, returning it so the caller (the facade) can release its
// remaining reservation through the account registry. Fails NotFound if no
// such live order exists.
func (b *OrderBook) Cancel(hash types.Hash) (*Order, error) {
	loc, ok := b.byHash[hash]
	if !ok {
		return nil, coreerr.Newf(coreerr.NotFound, "no live order for hash %s", hash)
	}
	order := elementOrder(loc.elem)
	b.remove(loc)
	return order, nil
}

// Remove drops a fully- or partially-filled order from the book without
// the NotFound plumbing Cancel needs for external callers — used by the
// matcher once a maker's RestingAmount reaches zero.
func (b *OrderBook) Remove(order *Order) {
	loc, ok := b.byHash[order.Hash]
	if !ok {
		return
	}
	b.remove(loc)
}

func (b *OrderBook) remove(loc locator) {
	hash := elementOrder(loc.elem).Hash
	removeElement(loc.level, loc.elem)
	delete(b.byHash, hash)
	b.ladder(loc.level.Side).removeIfEmpty(loc.level)
}

// Best returns the head of the best price level on side.
func (b *OrderBook) Best(side types.Side) (*Order, bool) {
	return b.ladder(side).best()
}

// BestLevel returns the best price level on side, for the matcher's
// crossing check (it needs the price without materializing the order).
func (b *OrderBook) BestLevel(side types.Side) (*PriceLevel, bool) {
	return b.ladder(side).bestLevel()
}

// AnyLiveOrderFor reports whether trader has any live order on either
// ladder — used by the facade's delete-account check (spec.md §4.3).
func (b *OrderBook) AnyLiveOrderFor(trader types.Address) bool {
	for _, loc := range b.byHash {
		if elementOrder(loc.elem).TraderAddress == trader {
			return true
		}
	}
	return false
}

// L2Level is one aggregated price point in a snapshot.
type L2Level struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// L2Snapshot returns up to depth best levels per side, aggregating resting
// amounts, bids descending and asks ascending (spec.md §4.4).
func (b *OrderBook) L2Snapshot(depth int) (bids, asks []L2Level) {
	if depth <= 0 {
		depth = defaultL2Depth
	}
	for _, level := range b.bids.topN(depth) {
		bids = append(bids, L2Level{Price: level.Price, Amount: level.TotalRestingAmount()})
	}
	for _, level := range b.asks.topN(depth) {
		asks = append(asks, L2Level{Price: level.Price, Amount: level.TotalRestingAmount()})
	}
	return bids, asks
}
