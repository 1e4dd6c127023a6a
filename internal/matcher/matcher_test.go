package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clob/internal/accounts"
	"clob/internal/book"
	"clob/internal/coreerr"
	"clob/internal/decimal"
	"clob/internal/hashing"
	"clob/internal/matcher"
	"clob/internal/types"
)

func setup(t *testing.T) (*accounts.Registry, *book.OrderBook, *matcher.Matcher) {
	t.Helper()
	registry := accounts.NewRegistry()
	ob := book.NewOrderBook()
	hasher := hashing.NewHasher(hashing.DefaultDomain())
	return registry, ob, matcher.New(registry, ob, hasher)
}

func trader(t *testing.T, b byte) types.Address {
	t.Helper()
	var a types.Address
	a[19] = b
	return a
}

func nonce(t *testing.T, n uint8) types.Nonce {
	t.Helper()
	var no types.Nonce
	no[31] = n
	return no
}

// TestFullCross is spec.md §8 scenario 2.
func TestFullCross(t *testing.T) {
	registry, _, m := setup(t)
	a, b := trader(t, 1), trader(t, 2)

	_, err := registry.Create(a, decimal.Zero, decimal.MustParse("100"))
	require.NoError(t, err)
	_, err = registry.Create(b, decimal.MustParse("1"), decimal.Zero)
	require.NoError(t, err)

	_, fills, err := m.Place(matcher.PlaceInput{
		TraderAddress: a, Side: types.Bid,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("1"), Nonce: nonce(t, 1),
	})
	require.NoError(t, err)
	assert.Empty(t, fills)

	_, fills, err = m.Place(matcher.PlaceInput{
		TraderAddress: b, Side: types.Ask,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("1"), Nonce: nonce(t, 1),
	})
	require.NoError(t, err)
	require.Len(t, fills, 1)
	assert.Equal(t, "1", fills[0].Amount.String())
	assert.Equal(t, "10", fills[0].Price.String())

	viewA, err := registry.Get(a)
	require.NoError(t, err)
	assert.Equal(t, "1", viewA.DDXBalance.String())
	assert.Equal(t, "90", viewA.USDBalance.String())

	viewB, err := registry.Get(b)
	require.NoError(t, err)
	assert.Equal(t, "0", viewB.DDXBalance.String())
	assert.Equal(t, "10", viewB.USDBalance.String())
}

// TestPartialThenRest is spec.md §8 scenario 3.
func TestPartialThenRest(t *testing.T) {
	registry, ob, m := setup(t)
	a, b := trader(t, 1), trader(t, 2)

	_, err := registry.Create(a, decimal.MustParse("5"), decimal.Zero)
	require.NoError(t, err)
	_, err = registry.Create(b, decimal.Zero, decimal.MustParse("100"))
	require.NoError(t, err)

	_, _, err = m.Place(matcher.PlaceInput{
		TraderAddress: a, Side: types.Ask,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("5"), Nonce: nonce(t, 1),
	})
	require.NoError(t, err)

	_, fills, err := m.Place(matcher.PlaceInput{
		TraderAddress: b, Side: types.Bid,
		Price: decimal.MustParse("11"), Amount: decimal.MustParse("3"), Nonce: nonce(t, 1),
	})
	require.NoError(t, err)
	require.Len(t, fills, 1)
	assert.Equal(t, "10", fills[0].Price.String())
	assert.Equal(t, "3", fills[0].Amount.String())

	viewB, err := registry.Get(b)
	require.NoError(t, err)
	// b bought 3 DDX at price 10 = 30 USD out of 100; the extra 3 USD
	// reserved at its own price of 11 was refunded.
	assert.Equal(t, "70", viewB.USDBalance.String())

	bids, asks := ob.L2Snapshot(0)
	assert.Empty(t, bids)
	require.Len(t, asks, 1)
	assert.Equal(t, "10", asks[0].Price.String())
	assert.Equal(t, "2", asks[0].Amount.String())
}

// TestPriceTimePriority is spec.md §8 scenario 4.
func TestPriceTimePriority(t *testing.T) {
	registry, _, m := setup(t)
	a, b, c := trader(t, 1), trader(t, 2), trader(t, 3)

	_, err := registry.Create(a, decimal.MustParse("1"), decimal.Zero)
	require.NoError(t, err)
	_, err = registry.Create(b, decimal.MustParse("1"), decimal.Zero)
	require.NoError(t, err)
	_, err = registry.Create(c, decimal.Zero, decimal.MustParse("100"))
	require.NoError(t, err)

	hashA, _, err := m.Place(matcher.PlaceInput{
		TraderAddress: a, Side: types.Ask,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("1"), Nonce: nonce(t, 1),
	})
	require.NoError(t, err)

	hashB, _, err := m.Place(matcher.PlaceInput{
		TraderAddress: b, Side: types.Ask,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("1"), Nonce: nonce(t, 1),
	})
	require.NoError(t, err)

	_, fills, err := m.Place(matcher.PlaceInput{
		TraderAddress: c, Side: types.Bid,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("2"), Nonce: nonce(t, 1),
	})
	require.NoError(t, err)
	require.Len(t, fills, 2)
	assert.Equal(t, hashA, fills[0].MakerHash)
	assert.Equal(t, hashB, fills[1].MakerHash)
}

// TestSelfMatchAbort is spec.md §8 scenario 5.
func TestSelfMatchAbort(t *testing.T) {
	registry, ob, m := setup(t)
	a := trader(t, 1)

	_, err := registry.Create(a, decimal.MustParse("1"), decimal.MustParse("20"))
	require.NoError(t, err)

	askHash, _, err := m.Place(matcher.PlaceInput{
		TraderAddress: a, Side: types.Ask,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("1"), Nonce: nonce(t, 1),
	})
	require.NoError(t, err)

	_, fills, err := m.Place(matcher.PlaceInput{
		TraderAddress: a, Side: types.Bid,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("2"), Nonce: nonce(t, 2),
	})
	require.NoError(t, err)
	assert.Empty(t, fills)

	view, err := registry.Get(a)
	require.NoError(t, err)
	assert.Equal(t, "20", view.USDBalance.String())
	assert.Equal(t, "1", view.DDXBalance.String())

	_, err = ob.Lookup(askHash)
	assert.NoError(t, err)

	bids, _ := ob.L2Snapshot(0)
	assert.Empty(t, bids)
}

// TestCancelRestores is spec.md §8 scenario 6.
func TestCancelRestores(t *testing.T) {
	registry, _, m := setup(t)
	a := trader(t, 1)

	_, err := registry.Create(a, decimal.Zero, decimal.MustParse("100"))
	require.NoError(t, err)

	hash, _, err := m.Place(matcher.PlaceInput{
		TraderAddress: a, Side: types.Bid,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("5"), Nonce: nonce(t, 1),
	})
	require.NoError(t, err)

	view, err := registry.Get(a)
	require.NoError(t, err)
	assert.Equal(t, "100", view.USDBalance.String())

	_, err = m.Cancel(hash)
	require.NoError(t, err)

	view, err = registry.Get(a)
	require.NoError(t, err)
	assert.Equal(t, "100", view.USDBalance.String())
}

func TestDuplicateNonceRejected(t *testing.T) {
	registry, _, m := setup(t)
	a := trader(t, 1)
	_, err := registry.Create(a, decimal.Zero, decimal.MustParse("100"))
	require.NoError(t, err)

	_, _, err = m.Place(matcher.PlaceInput{
		TraderAddress: a, Side: types.Bid,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("1"), Nonce: nonce(t, 1),
	})
	require.NoError(t, err)

	_, _, err = m.Place(matcher.PlaceInput{
		TraderAddress: a, Side: types.Bid,
		Price: decimal.MustParse("5"), Amount: decimal.MustParse("1"), Nonce: nonce(t, 1),
	})
	assert.True(t, coreerr.Is(err, coreerr.DuplicateNonce))
}

func TestInsufficientBalanceLeavesNoState(t *testing.T) {
	registry, ob, m := setup(t)
	a := trader(t, 1)
	_, err := registry.Create(a, decimal.Zero, decimal.MustParse("5"))
	require.NoError(t, err)

	_, _, err = m.Place(matcher.PlaceInput{
		TraderAddress: a, Side: types.Bid,
		Price: decimal.MustParse("10"), Amount: decimal.MustParse("1"), Nonce: nonce(t, 1),
	})
	assert.True(t, coreerr.Is(err, coreerr.InsufficientBalance))

	bids, _ := ob.L2Snapshot(0)
	assert.Empty(t, bids)
	assert.False(t, ob.NonceUsed(a, nonce(t, 1)))
}
