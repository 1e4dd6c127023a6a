// Package matcher implements the fill algorithm: price-time priority
// against the opposing ladder, self-match prevention, up-front reservation
// and settlement through the account registry, and rest-on-book for any
// remainder (spec.md §4.5). It is the one component that touches both
// internal/accounts and internal/book in the same operation, which is why
// atomicity lives here rather than in either of them.
package matcher

import (
	"clob/internal/accounts"
	"clob/internal/book"
	"clob/internal/coreerr"
	"clob/internal/decimal"
	"clob/internal/hashing"
	"clob/internal/types"
)

type Matcher struct {
	registry *accounts.Registry
	book     *book.OrderBook
	hasher   *hashing.Hasher
}

func New(registry *accounts.Registry, ob *book.OrderBook, hasher *hashing.Hasher) *Matcher {
	return &Matcher{registry: registry, book: ob, hasher: hasher}
}

// PlaceInput is a normalized-but-not-yet-hashed order request.
type PlaceInput struct {
	TraderAddress types.Address
	Side          types.Side
	Price         decimal.Decimal
	Amount        decimal.Decimal
	Nonce         types.Nonce
}

// reservationAsset and reservationAmount return which asset and how much of
// it a fresh order of this side/price/amount must reserve up front
// (spec.md §4.5 step 3).
func reservationAsset(side types.Side) accounts.Asset {
	if side == types.Bid {
		return accounts.USD
	}
	return accounts.DDX
}

func reservationAmount(side types.Side, price, amount decimal.Decimal) (decimal.Decimal, error) {
	if side == types.Bid {
		return amount.Mul(price)
	}
	return amount, nil
}

// Place runs the full accept-hash-reserve-match-rest pipeline and returns
// the fills produced, in match-loop order. On any failure no balance, book,
// or index state is modified.
func (m *Matcher) Place(in PlaceInput) (types.Hash, []Fill, error) {
	var zeroHash types.Hash

	if !in.Amount.IsPositive() {
		return zeroHash, nil, coreerr.New(coreerr.Malformed, "amount must be > 0")
	}
	if !in.Price.IsPositive() {
		return zeroHash, nil, coreerr.New(coreerr.Malformed, "price must be > 0")
	}

	hash := m.hasher.HashOrder(hashing.OrderInput{
		Amount:        in.Amount,
		Nonce:         in.Nonce,
		Price:         in.Price,
		Side:          in.Side,
		TraderAddress: in.TraderAddress,
	})

	if m.book.NonceUsed(in.TraderAddress, in.Nonce) {
		return zeroHash, nil, coreerr.Newf(coreerr.DuplicateNonce, "nonce already used by trader %s", in.TraderAddress)
	}
	if !m.registry.Exists(in.TraderAddress) {
		return zeroHash, nil, coreerr.Newf(coreerr.UnknownTrader, "no account for %s", in.TraderAddress)
	}

	asset := reservationAsset(in.Side)
	reserved, err := reservationAmount(in.Side, in.Price, in.Amount)
	if err != nil {
		return zeroHash, nil, err
	}
	if err := m.registry.Reserve(in.TraderAddress, asset, reserved); err != nil {
		return zeroHash, nil, err
	}

	taker := &book.Order{
		Hash:          hash,
		TraderAddress: in.TraderAddress,
		Side:          in.Side,
		Price:         in.Price,
		Amount:        in.Amount,
		Nonce:         in.Nonce,
		RestingAmount: in.Amount,
	}

	fills, consumed, aborted := m.matchLoop(taker)

	rests := !aborted && taker.RestingAmount.IsPositive()

	var neededHold decimal.Decimal
	if rests {
		neededHold, err = reservationAmount(in.Side, in.Price, taker.RestingAmount)
		if err != nil {
			return zeroHash, nil, err
		}
	}
	leftover, err := reserved.Sub(consumed)
	if err != nil {
		return zeroHash, nil, coreerr.New(coreerr.InvariantViolation, "matcher consumed more than it reserved")
	}
	refund, err := leftover.Sub(neededHold)
	if err == nil && refund.IsPositive() {
		if err := m.registry.Release(in.TraderAddress, asset, refund); err != nil {
			return zeroHash, nil, err
		}
	}

	if rests {
		m.book.Insert(taker)
	}
	m.book.ConsumeNonce(in.TraderAddress, in.Nonce)

	return hash, fills, nil
}

// matchLoop walks the opposing ladder while it crosses taker's price,
// settling each fill through the registry and trimming makers that empty
// out. It returns the fills produced, the running total consumed from
// taker's own reservation, and whether the loop stopped on a self-match.
func (m *Matcher) matchLoop(taker *book.Order) ([]Fill, decimal.Decimal, bool) {
	var fills []Fill
	consumed := decimal.Zero
	opposite := taker.Side.Opposite()

	for taker.RestingAmount.IsPositive() {
		maker, ok := m.book.Best(opposite)
		if !ok || !crosses(taker, maker) {
			break
		}

		if maker.TraderAddress == taker.TraderAddress {
			return fills, consumed, true
		}

		fillAmount := decimal.Min(taker.RestingAmount, maker.RestingAmount)
		fillPrice := maker.Price

		takerConsumed := m.settle(taker, maker, fillAmount, fillPrice)
		consumed, _ = consumed.Add(takerConsumed)

		taker.RestingAmount, _ = taker.RestingAmount.Sub(fillAmount)
		maker.RestingAmount, _ = maker.RestingAmount.Sub(fillAmount)

		fills = append(fills, Fill{
			MakerHash: maker.Hash,
			TakerHash: taker.Hash,
			Amount:    fillAmount,
			Price:     fillPrice,
		})

		if maker.RestingAmount.IsZero() {
			m.book.Remove(maker)
		}
	}

	return fills, consumed, false
}

// crosses reports whether taker's limit price crosses maker's resting price.
func crosses(taker, maker *book.Order) bool {
	if taker.Side == types.Bid {
		return taker.Price.Cmp(maker.Price) >= 0
	}
	return taker.Price.Cmp(maker.Price) <= 0
}

// settle moves base and quote between buyer and seller for one fill and
// returns the amount consumed from taker's own reservation (in taker's
// reservation asset), so Place can compute its end-of-loop refund.
func (m *Matcher) settle(taker, maker *book.Order, fillAmount, fillPrice decimal.Decimal) decimal.Decimal {
	var buyer, seller *book.Order
	if taker.Side == types.Bid {
		buyer, seller = taker, maker
	} else {
		buyer, seller = maker, taker
	}

	quoteAmount, err := fillAmount.Mul(fillPrice)
	if err != nil {
		panic(err) // fixed-point overflow here means the engine's scale invariants broke elsewhere
	}

	mustConsume := func(trader types.Address, asset accounts.Asset, amount decimal.Decimal) {
		if err := m.registry.ConsumeHold(trader, asset, amount); err != nil {
			panic(err) // a held reservation insufficient to cover its own resting order is an invariant bug
		}
	}
	mustCredit := func(trader types.Address, asset accounts.Asset, amount decimal.Decimal) {
		if err := m.registry.Credit(trader, asset, amount); err != nil {
			panic(err)
		}
	}

	mustConsume(seller.TraderAddress, accounts.DDX, fillAmount)
	mustCredit(buyer.TraderAddress, accounts.DDX, fillAmount)

	mustConsume(buyer.TraderAddress, accounts.USD, quoteAmount)
	mustCredit(seller.TraderAddress, accounts.USD, quoteAmount)

	if taker.Side == types.Bid {
		return quoteAmount
	}
	return fillAmount
}

// Cancel removes a live order and releases its remaining reservation.
func (m *Matcher) Cancel(hash types.Hash) (*book.Order, error) {
	order, err := m.book.Cancel(hash)
	if err != nil {
		return nil, err
	}

	asset := reservationAsset(order.Side)
	amount, err := reservationAmount(order.Side, order.Price, order.RestingAmount)
	if err != nil {
		return nil, err
	}
	if err := m.registry.Release(order.TraderAddress, asset, amount); err != nil {
		return nil, err
	}
	return order, nil
}

// Lookup returns the live order for hash.
func (m *Matcher) Lookup(hash types.Hash) (*book.Order, error) {
	return m.book.Lookup(hash)
}
