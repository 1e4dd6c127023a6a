package hashing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clob/internal/decimal"
	"clob/internal/hashing"
	"clob/internal/types"
)

// TestSampleVector pins spec.md §8's concrete end-to-end scenario 1.
func TestSampleVector(t *testing.T) {
	trader, err := types.ParseAddress("0x3A880652F47bFaa771908C07Dd8673A787dAEd3A")
	require.NoError(t, err)
	nonce, err := types.ParseNonce("0x0c")
	require.NoError(t, err)

	order := hashing.OrderInput{
		Amount:        decimal.MustParse("1234"),
		Nonce:         nonce,
		Price:         decimal.MustParse("5432"),
		Side:          types.Bid,
		TraderAddress: trader,
	}

	h := hashing.NewHasher(hashing.DefaultDomain())
	got := h.HashOrder(order)

	want := "0x15a7b83cc86b50aaa2fa0c0871d5dbaae62f116436291e976c84b034b58cb728"
	assert.Equal(t, want, got.String())
}

func TestHashIsDeterministicAndFieldSensitive(t *testing.T) {
	trader, _ := types.ParseAddress("0x3A880652F47bFaa771908C07Dd8673A787dAEd3A")
	nonce, _ := types.ParseNonce("0x01")
	h := hashing.NewHasher(hashing.DefaultDomain())

	base := hashing.OrderInput{
		Amount:        decimal.MustParse("10"),
		Nonce:         nonce,
		Price:         decimal.MustParse("20"),
		Side:          types.Bid,
		TraderAddress: trader,
	}

	h1 := h.HashOrder(base)
	h2 := h.HashOrder(base)
	assert.Equal(t, h1, h2)

	flippedSide := base
	flippedSide.Side = types.Ask
	assert.NotEqual(t, h1, h.HashOrder(flippedSide))

	diffNonce := base
	diffNonce.Nonce, _ = types.ParseNonce("0x02")
	assert.NotEqual(t, h1, h.HashOrder(diffNonce))
}
