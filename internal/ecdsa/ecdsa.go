// Package ecdsa wraps the elliptic-curve and hashing primitives shared by
// wallet derivation, transaction signing and check signing: Keccak-256
// hashing and recoverable secp256k1 signatures, both following the
// go-ethereum conventions used by the reference Minter node.
package ecdsa

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/crypto"
)

// Keccak256 hashes data with the original (pre-NIST) Keccak-256 permutation,
// the same digest Minter and Ethereum use for addresses and transaction
// hashes.
func Keccak256(data ...[]byte) []byte {
	return crypto.Keccak256(data...)
}

// SHA256 hashes data with SHA-256, used for validator addresses and
// passphrase-derived check keys.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// PublicKeyFromPrivate derives the 64-byte uncompressed public key (X‖Y, no
// 0x04 prefix) for a 32-byte secp256k1 private key.
func PublicKeyFromPrivate(priv [32]byte) ([64]byte, error) {
	var pub [64]byte
	_, pk := btcec.PrivKeyFromBytes(priv[:])
	if pk == nil {
		return pub, fmt.Errorf("ecdsa: invalid private key")
	}
	serialized := pk.SerializeUncompressed() // 0x04 || X || Y
	if len(serialized) != 65 {
		return pub, fmt.Errorf("ecdsa: unexpected public key length %d", len(serialized))
	}
	copy(pub[:], serialized[1:])
	return pub, nil
}

// Sign produces a recoverable ECDSA signature over a 32-byte digest. V is
// returned in the Ethereum/Minter convention, 27 or 28.
func Sign(digest [32]byte, priv [32]byte) (v byte, r, s *big.Int, err error) {
	ecdsaPriv, err := crypto.ToECDSA(priv[:])
	if err != nil {
		return 0, nil, nil, fmt.Errorf("ecdsa: invalid private key: %w", err)
	}
	sig, err := crypto.Sign(digest[:], ecdsaPriv)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("ecdsa: sign: %w", err)
	}
	r = new(big.Int).SetBytes(sig[:32])
	s = new(big.Int).SetBytes(sig[32:64])
	v = sig[64] + 27
	return v, r, s, nil
}

// Recover recovers the 64-byte uncompressed public key (X‖Y) that produced a
// signature (v, r, s) over digest. v must be 27 or 28.
func Recover(digest [32]byte, v byte, r, s *big.Int) ([64]byte, error) {
	var pub [64]byte
	if v != 27 && v != 28 {
		return pub, fmt.Errorf("ecdsa: invalid recovery id %d", v)
	}

	sig := make([]byte, 65)
	r.FillBytes(sig[0:32])
	s.FillBytes(sig[32:64])
	sig[64] = v - 27

	recovered, err := crypto.Ecrecover(digest[:], sig)
	if err != nil {
		return pub, fmt.Errorf("ecdsa: recover: %w", err)
	}
	copy(pub[:], recovered[1:]) // strip leading 0x04
	return pub, nil
}
