package matcher

import (
	"clob/internal/decimal"
	"clob/internal/types"
)

// Fill is one execution produced by a single Place call, in the order they
// occurred (spec.md §4.5).
type Fill struct {
	MakerHash types.Hash
	TakerHash types.Hash
	Amount    decimal.Decimal
	Price     decimal.Decimal
}
