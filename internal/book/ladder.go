package book

import (
	"github.com/tidwall/btree"

	"clob/internal/decimal"
	"clob/internal/types"
)

// ladder is one side's price-ordered collection of PriceLevels, backed by
// btree.BTreeG the same way engine.OrderBook.bids/asks are in the teacher.
// The less-function is flipped per side so that Min() always yields the
// best price for that side: greatest-first for bids, least-first for
// asks — exactly the comparator trick the teacher's OrderBook.Match uses.
type ladder struct {
	tree *btree.BTreeG[*PriceLevel]
	side types.Side
}

func newLadder(side types.Side) *ladder {
	var less func(a, b *PriceLevel) bool
	if side == types.Bid {
		less = func(a, b *PriceLevel) bool { return a.Price.GreaterThan(b.Price) }
	} else {
		less = func(a, b *PriceLevel) bool { return a.Price.LessThan(b.Price) }
	}
	return &ladder{tree: btree.NewBTreeG(less), side: side}
}

// getOrCreate returns the level at price, creating an empty one if absent.
func (l *ladder) getOrCreate(price decimal.Decimal) *PriceLevel {
	key := &PriceLevel{Price: price, Side: l.side}
	if existing, ok := l.tree.Get(key); ok {
		return existing
	}
	level := newPriceLevel(price, l.side)
	l.tree.Set(level)
	return level
}

func (l *ladder) get(price decimal.Decimal) (*PriceLevel, bool) {
	return l.tree.Get(&PriceLevel{Price: price, Side: l.side})
}

// removeIfEmpty deletes level from the ladder once its queue has drained
// (spec.md §3: "when the queue empties the level is removed").
func (l *ladder) removeIfEmpty(level *PriceLevel) {
	if level.Empty() {
		l.tree.Delete(level)
	}
}

// best returns the head order of the best price level on this side.
func (l *ladder) best() (*Order, bool) {
	level, ok := l.bestLevel()
	if !ok {
		return nil, false
	}
	return level.Head(), true
}

func (l *ladder) bestLevel() (*PriceLevel, bool) {
	return l.tree.Min()
}

// topN walks up to n levels in best-first order, for the L2 snapshot.
func (l *ladder) topN(n int) []*PriceLevel {
	levels := make([]*PriceLevel, 0, n)
	l.tree.Scan(func(level *PriceLevel) bool {
		levels = append(levels, level)
		return len(levels) < n
	})
	return levels
}
