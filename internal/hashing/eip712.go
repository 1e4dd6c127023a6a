// Package hashing computes the EIP-712 order identifier (spec.md §4.2).
// Keccak256 comes from go-ethereum's crypto package, the same primitive
// uhyunpark-hyperlicked's pkg/crypto/eip712.go builds its signer on; this
// engine hand-encodes the domain separator and struct hash directly
// instead of going through go-ethereum's apitypes.TypedData machinery,
// since the order schema here has no chainId/verifyingContract field for
// that machinery to assume.
package hashing

import (
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"

	"clob/internal/decimal"
	"clob/internal/types"
)

// Domain fixes the EIP-712 domain separator's two string fields. These are
// chosen at build time and are part of the deployment contract: the sample
// vector in spec.md §8 only reproduces under this exact pair.
type Domain struct {
	Name    string
	Version string
}

// DefaultDomain is pinned by spec.md §8's sample vector.
func DefaultDomain() Domain {
	return Domain{Name: "DDX take-home", Version: "0.1.0"}
}

var domainTypeHash = crypto.Keccak256([]byte("EIP712Domain(string name,string version)"))

var orderTypeHash = crypto.Keccak256([]byte(
	"Order(uint256 amount,uint256 nonce,uint256 price,uint8 side,address traderAddress)",
))

// Hasher computes order hashes under a fixed domain.
type Hasher struct {
	domainSeparator []byte
}

func NewHasher(domain Domain) *Hasher {
	ds := crypto.Keccak256(
		domainTypeHash,
		crypto.Keccak256([]byte(domain.Name)),
		crypto.Keccak256([]byte(domain.Version)),
	)
	return &Hasher{domainSeparator: ds}
}

// OrderInput is the set of order fields the struct hash is computed over.
type OrderInput struct {
	Amount        decimal.Decimal
	Nonce         types.Nonce
	Price         decimal.Decimal
	Side          types.Side
	TraderAddress types.Address
}

// HashOrder returns the 32-byte EIP-712 identifier for order.
//
// Amount and price are encoded as the raw (unscaled) integer the trader
// submitted, not the 10^18-scaled Decimal used for storage — see spec.md
// §9's open question. The sample vector only reproduces under the raw
// encoding, so that is what this hasher does; Decimal.RawUint256 performs
// the (truncating) conversion back.
func (h *Hasher) HashOrder(order OrderInput) types.Hash {
	structHash := crypto.Keccak256(
		orderTypeHash,
		leftPad32(order.Amount.RawUint256().Bytes()),
		order.Nonce[:],
		leftPad32(order.Price.RawUint256().Bytes()),
		leftPad32(big.NewInt(int64(order.Side.EIP712Value())).Bytes()),
		leftPadAddress(order.TraderAddress),
	)

	digest := crypto.Keccak256(
		[]byte{0x19, 0x01},
		h.domainSeparator,
		structHash,
	)

	var out types.Hash
	copy(out[:], digest)
	return out
}

func leftPad32(b []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func leftPadAddress(addr types.Address) []byte {
	out := make([]byte, 32)
	copy(out[12:], addr[:])
	return out
}
