package httpapi

import (
	"clob/internal/accounts"
	"clob/internal/book"
	"clob/internal/decimal"
	"clob/internal/matcher"
	"clob/internal/types"
)

// Account is the wire shape for POST /accounts and GET /accounts/:addr.
// Decimal, Address, and Hash already implement json.Marshaler/Unmarshaler
// with the canonical string forms spec.md §6 requires, so this struct
// needs no custom codec of its own.
type Account struct {
	TraderAddress types.Address   `json:"traderAddress"`
	DDXBalance    decimal.Decimal `json:"ddxBalance"`
	USDBalance    decimal.Decimal `json:"usdBalance"`
}

func accountFromView(v accounts.View) Account {
	return Account{
		TraderAddress: v.TraderAddress,
		DDXBalance:    v.DDXBalance,
		USDBalance:    v.USDBalance,
	}
}

// Order is the wire shape for POST /orders (request, restingAmount ignored)
// and GET /orders/:hash (response, restingAmount current).
type Order struct {
	Hash          types.Hash      `json:"hash,omitempty"`
	TraderAddress types.Address   `json:"traderAddress"`
	Side          types.Side      `json:"side"`
	Price         decimal.Decimal `json:"price"`
	Amount        decimal.Decimal `json:"amount"`
	Nonce         types.Nonce     `json:"nonce"`
	RestingAmount decimal.Decimal `json:"restingAmount,omitempty"`
}

func orderFromBook(o *book.Order) Order {
	return Order{
		Hash:          o.Hash,
		TraderAddress: o.TraderAddress,
		Side:          o.Side,
		Price:         o.Price,
		Amount:        o.Amount,
		Nonce:         o.Nonce,
		RestingAmount: o.RestingAmount,
	}
}

// Fill is the wire shape of one execution in a place-order response.
type Fill struct {
	MakerHash types.Hash      `json:"makerHash"`
	TakerHash types.Hash      `json:"takerHash"`
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
}

func fillsFromMatcher(fills []matcher.Fill) []Fill {
	out := make([]Fill, len(fills))
	for i, f := range fills {
		out[i] = Fill{MakerHash: f.MakerHash, TakerHash: f.TakerHash, Amount: f.Amount, Price: f.Price}
	}
	return out
}

// L2Level is one aggregated price point in a book snapshot.
type L2Level struct {
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
}

// L2OrderBook is the wire shape of GET /book.
type L2OrderBook struct {
	Bids []L2Level `json:"bids"`
	Asks []L2Level `json:"asks"`
}

func l2Levels(levels []book.L2Level) []L2Level {
	out := make([]L2Level, len(levels))
	for i, l := range levels {
		out[i] = L2Level{Price: l.Price, Amount: l.Amount}
	}
	return out
}
