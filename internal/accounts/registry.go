// Package accounts is the per-trader balance registry: the single owner of
// every Account record, mutated only through Create/Delete/Reserve/Release/
// ConsumeHold/Credit (spec.md §4.3). Ownership mirrors the teacher's client-session
// map — one mutex guarding one map, matching
// internal/net.Server.clientSessionsLock.
package accounts

import (
	"sync"

	"clob/internal/coreerr"
	"clob/internal/decimal"
	"clob/internal/types"
)

type Registry struct {
	mu       sync.Mutex
	accounts map[types.Address]*account
}

func NewRegistry() *Registry {
	return &Registry{
		accounts: make(map[types.Address]*account),
	}
}

// Create inserts a new account with the given initial (non-negative)
// balances. Fails Conflict if one already exists for traderAddress.
func (r *Registry) Create(trader types.Address, ddxBalance, usdBalance decimal.Decimal) (View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[trader]; exists {
		return View{}, coreerr.Newf(coreerr.Conflict, "account %s already exists", trader)
	}

	acct := &account{
		trader:     trader,
		ddxBalance: ddxBalance,
		usdBalance: usdBalance,
	}
	r.accounts[trader] = acct
	return acct.view(), nil
}

// Get returns the current reported balances for trader.
func (r *Registry) Get(trader types.Address) (View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[trader]
	if !ok {
		return View{}, coreerr.Newf(coreerr.NotFound, "no account for %s", trader)
	}
	return acct.view(), nil
}

// Exists reports whether trader has an account, without the NotFound
// plumbing — used by the matcher's account check (spec.md §4.5 step 2).
func (r *Registry) Exists(trader types.Address) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.accounts[trader]
	return ok
}

// Delete removes trader's account. hasOpenOrders is supplied by the caller
// (the facade, which can see the book) since the registry alone cannot
// know whether any live order references this trader — see spec.md §4.3.
func (r *Registry) Delete(trader types.Address, hasOpenOrders bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[trader]; !ok {
		return coreerr.Newf(coreerr.NotFound, "no account for %s", trader)
	}
	if hasOpenOrders {
		return coreerr.Newf(coreerr.HasOpenOrders, "trader %s has live orders", trader)
	}
	delete(r.accounts, trader)
	return nil
}

// Reserve atomically checks balance[asset] >= amount and moves it from
// spendable balance into hold. Fails InsufficientBalance otherwise.
func (r *Registry) Reserve(trader types.Address, asset Asset, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[trader]
	if !ok {
		return coreerr.Newf(coreerr.UnknownTrader, "no account for %s", trader)
	}

	remaining, err := acct.balance(asset).Sub(amount)
	if err != nil {
		return coreerr.Newf(coreerr.InsufficientBalance, "trader %s: insufficient %s balance", trader, asset)
	}
	newHold, err := acct.hold(asset).Add(amount)
	if err != nil {
		return err
	}
	acct.setBalance(asset, remaining)
	acct.setHold(asset, newHold)
	return nil
}

// Release moves amount from hold back into spendable balance. amount is
// always a previously reserved quantity, so this never fails in practice;
// an underflow here means the caller released more than it ever reserved,
// which is a bug in the matcher, not a user-facing condition.
func (r *Registry) Release(trader types.Address, asset Asset, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[trader]
	if !ok {
		return coreerr.Newf(coreerr.InvariantViolation, "release on unknown trader %s", trader)
	}

	newHold, err := acct.hold(asset).Sub(amount)
	if err != nil {
		return coreerr.Newf(coreerr.InvariantViolation, "release exceeds held %s for trader %s", asset, trader)
	}
	newBalance, err := acct.balance(asset).Add(amount)
	if err != nil {
		return err
	}
	acct.setHold(asset, newHold)
	acct.setBalance(asset, newBalance)
	return nil
}

// ConsumeHold removes amount from hold without returning it to spendable
// balance: the settled side of a fill, where a reservation is actually
// spent rather than released back. Fails InvariantViolation if amount
// exceeds what is held, which would mean the matcher settled more than it
// ever reserved.
func (r *Registry) ConsumeHold(trader types.Address, asset Asset, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[trader]
	if !ok {
		return coreerr.Newf(coreerr.InvariantViolation, "settle on unknown trader %s", trader)
	}

	newHold, err := acct.hold(asset).Sub(amount)
	if err != nil {
		return coreerr.Newf(coreerr.InvariantViolation, "settle exceeds held %s for trader %s", asset, trader)
	}
	acct.setHold(asset, newHold)
	return nil
}

// Credit adds amount directly to spendable balance — the counterparty side
// of a fill, where the seller's DDX or the buyer's USD simply appears.
func (r *Registry) Credit(trader types.Address, asset Asset, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct, ok := r.accounts[trader]
	if !ok {
		return coreerr.Newf(coreerr.InvariantViolation, "credit on unknown trader %s", trader)
	}

	newBalance, err := acct.balance(asset).Add(amount)
	if err != nil {
		return err
	}
	acct.setBalance(asset, newBalance)
	return nil
}
