package accounts

// Asset distinguishes which side of a trader's balance an operation
// touches. DDX is the base asset, USD is the quote asset (spec.md §1).
type Asset int

const (
	DDX Asset = iota
	USD
)

func (a Asset) String() string {
	if a == DDX {
		return "DDX"
	}
	return "USD"
}
