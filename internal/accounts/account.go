package accounts

import (
	"clob/internal/decimal"
	"clob/internal/types"
)

// account tracks spendable balance and reserved-on-resting-orders holds
// separately per asset, so reserve/release/credit (spec.md §4.3) can be
// exact. A JSON or facade-level read reports the two summed back into one
// balance per asset — see SPEC_FULL.md §6, grounded on the original
// Account::to_json behavior of summing balance+hold.
type account struct {
	trader types.Address

	ddxBalance decimal.Decimal
	ddxHold    decimal.Decimal
	usdBalance decimal.Decimal
	usdHold    decimal.Decimal
}

// View is the externally reported snapshot of an account: total balance
// per asset (spendable + reserved).
type View struct {
	TraderAddress types.Address
	DDXBalance    decimal.Decimal
	USDBalance    decimal.Decimal
}

func (a *account) view() View {
	total := func(balance, hold decimal.Decimal) decimal.Decimal {
		sum, err := balance.Add(hold)
		if err != nil {
			// balance and hold are both derived from non-negative reserve/
			// release calls guarded by Sub's own underflow check; an
			// overflow here means the 256-bit scale was itself exceeded,
			// which Add already reports as InvariantViolation.
			panic(err)
		}
		return sum
	}
	return View{
		TraderAddress: a.trader,
		DDXBalance:    total(a.ddxBalance, a.ddxHold),
		USDBalance:    total(a.usdBalance, a.usdHold),
	}
}

func (a *account) balance(asset Asset) decimal.Decimal {
	if asset == DDX {
		return a.ddxBalance
	}
	return a.usdBalance
}

func (a *account) hold(asset Asset) decimal.Decimal {
	if asset == DDX {
		return a.ddxHold
	}
	return a.usdHold
}

func (a *account) setBalance(asset Asset, v decimal.Decimal) {
	if asset == DDX {
		a.ddxBalance = v
	} else {
		a.usdBalance = v
	}
}

func (a *account) setHold(asset Asset, v decimal.Decimal) {
	if asset == DDX {
		a.ddxHold = v
	} else {
		a.usdHold = v
	}
}
