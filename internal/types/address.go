// Package types holds the primitive wire types shared across the engine:
// Address, Hash, and Side. Comparisons are always byte-exact; string forms
// are always lowercase 0x-prefixed hex, matching the convention EIP-712
// clients expect.
package types

import (
	"encoding/hex"
	"strings"

	"clob/internal/coreerr"
)

// Address is 20 raw bytes.
type Address [20]byte

// ParseAddress accepts "0x" + 40 hex characters of either case.
func ParseAddress(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	if len(s) != 40 {
		return a, coreerr.Newf(coreerr.Malformed, "address must be 40 hex chars, got %d", len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, coreerr.Newf(coreerr.Malformed, "invalid address hex: %v", err)
	}
	copy(a[:], b)
	return a, nil
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Address) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
