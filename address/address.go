// Package address implements Minter's Mx/Mp/Mc/Mt text encoding and the two
// address derivations used across the SDK: wallet addresses (Keccak-256 of
// the public key) and validator addresses (SHA-256 of the public key).
package address

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/MinterTeam/minter-go-sdk/internal/ecdsa"
	"github.com/MinterTeam/minter-go-sdk/minterr"
)

// Prefix is one of the four textual prefixes Minter attaches to hex-encoded
// on-chain values.
type Prefix string

// Supported prefixes.
const (
	PrefixAddress   Prefix = "Mx"
	PrefixPublicKey Prefix = "Mp"
	PrefixCheck     Prefix = "Mc"
	PrefixTx        Prefix = "Mt"
)

// Address is a 20-byte Minter account address.
type Address [20]byte

// String renders the address in its Mx-prefixed lower-hex textual form.
func (a Address) String() string {
	return string(PrefixAddress) + hex.EncodeToString(a[:])
}

// FromPublicKey derives the wallet address belonging to a 64-byte
// uncompressed public key (X‖Y, no 0x04 prefix): the last 20 bytes of its
// Keccak-256 digest.
func FromPublicKey(pub [64]byte) Address {
	digest := ecdsa.Keccak256(pub[:])
	var a Address
	copy(a[:], digest[len(digest)-20:])
	return a
}

// ValidatorFromPublicKey derives a validator address from a public key: the
// first 20 bytes of its SHA-256 digest.
func ValidatorFromPublicKey(pub [64]byte) Address {
	digest := sha256.Sum256(pub[:])
	var a Address
	copy(a[:], digest[:20])
	return a
}

// ParseAddress parses an Mx-prefixed textual address.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw, err := stripPrefix(s, PrefixAddress)
	if err != nil {
		return a, err
	}
	if len(raw) != 20 {
		return a, fmt.Errorf("%w: expected 20 bytes, got %d", minterr.ErrInvalidKeyLength, len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// ParsePublicKey parses an Mp-prefixed textual public key of arbitrary byte
// width (the SDK uses both 64-byte account keys and 32-byte candidate keys
// under the same prefix).
func ParsePublicKey(s string) ([]byte, error) {
	return stripPrefix(s, PrefixPublicKey)
}

// AddPrefix prepends the given prefix to a hex string. It rejects any value
// other than the four known prefixes.
func AddPrefix(p Prefix, hexStr string) (string, error) {
	switch p {
	case PrefixAddress, PrefixPublicKey, PrefixCheck, PrefixTx:
		return string(p) + hexStr, nil
	default:
		return "", fmt.Errorf("%w: %q", minterr.ErrInvalidPrefix, p)
	}
}

// RemovePrefix strips any of the four known prefixes from s, if present. It
// is idempotent: a value with no recognized prefix is returned unchanged.
func RemovePrefix(s string) string {
	for _, p := range []Prefix{PrefixAddress, PrefixPublicKey, PrefixCheck, PrefixTx} {
		if len(s) >= len(p) && s[:len(p)] == string(p) {
			return s[len(p):]
		}
	}
	return s
}

func stripPrefix(s string, want Prefix) ([]byte, error) {
	if len(s) < len(want) || s[:len(want)] != string(want) {
		return nil, fmt.Errorf("%w: missing %q prefix", minterr.ErrInvalidPrefix, want)
	}
	raw, err := hex.DecodeString(s[len(want):])
	if err != nil {
		return nil, fmt.Errorf("address: invalid hex: %w", err)
	}
	return raw, nil
}
