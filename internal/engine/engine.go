// Package engine is the single exclusive owner of core state: the account
// registry, the order book, and the matcher sit behind one mutex here, the
// same way internal/net.Server.clientSessionsLock guards the one map that
// was the teacher's only piece of shared mutable state (spec.md §5: the
// core is single-threaded cooperative, and the HTTP layer must serialize
// calls into it). Every exported method here is one atomic facade
// operation.
package engine

import (
	"sync"

	"github.com/rs/zerolog/log"

	"clob/internal/accounts"
	"clob/internal/book"
	"clob/internal/decimal"
	"clob/internal/hashing"
	"clob/internal/matcher"
	"clob/internal/types"
)

type Engine struct {
	mu       sync.Mutex
	registry *accounts.Registry
	book     *book.OrderBook
	matcher  *matcher.Matcher
}

func New(domain hashing.Domain) *Engine {
	registry := accounts.NewRegistry()
	ob := book.NewOrderBook()
	hasher := hashing.NewHasher(domain)
	return &Engine{
		registry: registry,
		book:     ob,
		matcher:  matcher.New(registry, ob, hasher),
	}
}

// CreateAccount inserts a new account with the given initial balances.
func (e *Engine) CreateAccount(trader types.Address, ddxBalance, usdBalance decimal.Decimal) (accounts.View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	view, err := e.registry.Create(trader, ddxBalance, usdBalance)
	if err != nil {
		log.Warn().Stringer("trader", trader).Err(err).Msg("create account rejected")
		return accounts.View{}, err
	}
	log.Info().Stringer("trader", trader).Msg("account created")
	return view, nil
}

// GetAccount returns the current reported balances for trader.
func (e *Engine) GetAccount(trader types.Address) (accounts.View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.Get(trader)
}

// DeleteAccount removes trader's account, failing HasOpenOrders if any live
// order still references it. Only the book knows about live orders, so the
// facade checks it itself rather than asking the registry (spec.md §4.3).
func (e *Engine) DeleteAccount(trader types.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	hasOpenOrders := e.book.AnyLiveOrderFor(trader)
	if err := e.registry.Delete(trader, hasOpenOrders); err != nil {
		log.Warn().Stringer("trader", trader).Err(err).Msg("delete account rejected")
		return err
	}
	log.Info().Stringer("trader", trader).Msg("account deleted")
	return nil
}

// PlaceOrder runs the full matcher pipeline and returns the resulting hash
// and fills.
func (e *Engine) PlaceOrder(in matcher.PlaceInput) (types.Hash, []matcher.Fill, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	hash, fills, err := e.matcher.Place(in)
	if err != nil {
		log.Warn().Stringer("trader", in.TraderAddress).Err(err).Msg("place order rejected")
		return types.Hash{}, nil, err
	}
	log.Info().
		Stringer("trader", in.TraderAddress).
		Stringer("hash", hash).
		Int("fills", len(fills)).
		Msg("order placed")
	return hash, fills, nil
}

// GetOrder returns the live order for hash, or NotFound.
func (e *Engine) GetOrder(hash types.Hash) (*book.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.matcher.Lookup(hash)
}

// CancelOrder removes a live order and releases its remaining reservation.
func (e *Engine) CancelOrder(hash types.Hash) (*book.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, err := e.matcher.Cancel(hash)
	if err != nil {
		log.Warn().Stringer("hash", hash).Err(err).Msg("cancel order rejected")
		return nil, err
	}
	log.Info().Stringer("hash", hash).Msg("order cancelled")
	return order, nil
}

// BookSnapshot returns the L2 aggregation of the book, up to depth levels
// per side (0 means the spec default of 50).
func (e *Engine) BookSnapshot(depth int) (bids, asks []book.L2Level) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.book.L2Snapshot(depth)
}
