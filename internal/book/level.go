package book

import (
	"container/list"

	"clob/internal/decimal"
	"clob/internal/types"
)

// PriceLevel is a (price, side, FIFO queue of live orders) triple. Queue
// order is strict arrival order; there is no reordering on partial fills
// (spec.md §3). A doubly linked list gives O(1) append at the tail and
// O(1) removal of an arbitrary element (needed for cancel), at the cost of
// a pointer per order the teacher's slice-based book.BuyBook/SellBook
// didn't pay — but those require O(n) removal, which cancel cannot afford
// once the book holds more than a handful of orders per level.
type PriceLevel struct {
	Price decimal.Decimal
	Side  types.Side
	Queue *list.List // elements are *Order
}

func newPriceLevel(price decimal.Decimal, side types.Side) *PriceLevel {
	return &PriceLevel{Price: price, Side: side, Queue: list.New()}
}

// Head returns the first (oldest) live order on this level.
func (l *PriceLevel) Head() *Order {
	front := l.Queue.Front()
	if front == nil {
		return nil
	}
	return front.Value.(*Order)
}

func (l *PriceLevel) Empty() bool {
	return l.Queue.Len() == 0
}

// listElement aliases list.Element so the rest of the package can pass
// queue positions around without every caller importing container/list.
type listElement = list.Element

func pushBack(level *PriceLevel, order *Order) *listElement {
	return level.Queue.PushBack(order)
}

func removeElement(level *PriceLevel, elem *listElement) {
	level.Queue.Remove(elem)
}

func elementOrder(elem *listElement) *Order {
	return elem.Value.(*Order)
}

// TotalRestingAmount sums every order's resting amount, for the L2 snapshot.
func (l *PriceLevel) TotalRestingAmount() decimal.Decimal {
	total := decimal.Zero
	for e := l.Queue.Front(); e != nil; e = e.Next() {
		order := e.Value.(*Order)
		sum, err := total.Add(order.RestingAmount)
		if err != nil {
			panic(err) // sum of live resting amounts cannot overflow 256 bits
		}
		total = sum
	}
	return total
}
