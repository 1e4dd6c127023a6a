package decimal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clob/internal/coreerr"
	"clob/internal/decimal"
)

func TestParseAndString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"100", "100"},
		{"100.00", "100"},
		{"1234", "1234"},
		{"12.5", "12.5"},
		{"0.000000000000000001", "0.000000000000000001"},
		{"00042", "42"},
	}
	for _, c := range cases {
		d, err := decimal.Parse(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, d.String(), c.in)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	bad := []string{"", "-1", "+1", "1.2.3", "1e10", " 1", "1 ", ".5", "5.", "abc", "1.2345678901234567890"}
	for _, s := range bad {
		_, err := decimal.Parse(s)
		require.Error(t, err, s)
		assert.True(t, coreerr.Is(err, coreerr.Malformed), s)
	}
}

func TestArithmetic(t *testing.T) {
	a := decimal.MustParse("10")
	b := decimal.MustParse("3")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "13", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "7", diff.String())

	_, err = b.Sub(a)
	require.Error(t, err)
	assert.True(t, coreerr.Is(err, coreerr.InsufficientBalance))

	product, err := decimal.MustParse("1.5").Mul(decimal.MustParse("2"))
	require.NoError(t, err)
	assert.Equal(t, "3", product.String())
}

func TestCmpAndMin(t *testing.T) {
	a := decimal.MustParse("5")
	b := decimal.MustParse("7")
	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.Equal(t, a, decimal.Min(a, b))
	assert.Equal(t, 0, a.Cmp(decimal.MustParse("5")))
}

func TestRawUint256MatchesWholeAmount(t *testing.T) {
	d := decimal.MustParse("1234")
	assert.Equal(t, "1234", d.RawUint256().Dec())
}
