// Package check implements Minter's offline redeemable check: construction,
// passphrase-derived signing, proof generation, and round-trip decoding with
// owner recovery.
package check

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/MinterTeam/minter-go-sdk/address"
	"github.com/MinterTeam/minter-go-sdk/internal/ecdsa"
	"github.com/MinterTeam/minter-go-sdk/minterr"
)

// Check is a signed, offline-transferable coin voucher.
type Check struct {
	Nonce     uint64
	ChainID   uint8
	DueBlock  uint64
	Coin      [10]byte
	Value     *big.Int
	GasCoin   [10]byte
	Lock      [65]byte
	V         uint8
	R         *big.Int
	S         *big.Int
}

// preLock is the six-element list whose Keccak-256 digest the passphrase
// key signs to produce Lock.
type preLock struct {
	Nonce    []byte
	ChainID  uint8
	DueBlock uint64
	Coin     [10]byte
	Value    *big.Int
	GasCoin  [10]byte
}

// wireCheck is the full ten-element RLP shape appended with the issuer's
// outer signature over Keccak-256(rlp(preLock fields + lock)).
type wireCheck struct {
	Nonce    []byte
	ChainID  uint8
	DueBlock uint64
	Coin     [10]byte
	Value    *big.Int
	GasCoin  [10]byte
	Lock     [65]byte
	V        uint8
	R        *big.Int
	S        *big.Int
}

// preLockWithLock is the seven-element list the issuer signature covers:
// the pre-lock fields plus the lock itself.
type preLockWithLock struct {
	Nonce    []byte
	ChainID  uint8
	DueBlock uint64
	Coin     [10]byte
	Value    *big.Int
	GasCoin  [10]byte
	Lock     [65]byte
}

// New signs a check with the passphrase-derived key and the issuer's
// private key. coin and gasCoin are upper-cased, NUL-padded symbols; value
// is a PIP amount.
func New(nonce uint64, chainID uint8, dueBlock uint64, coin [10]byte, value *big.Int, gasCoin [10]byte, passphrase string, issuerKey [32]byte) (*Check, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("check: %w", minterr.ErrEmptyPassphrase)
	}

	nonceBytes := []byte(strconv.FormatUint(nonce, 10))
	pre := preLock{Nonce: nonceBytes, ChainID: chainID, DueBlock: dueBlock, Coin: coin, Value: value, GasCoin: gasCoin}
	preRaw, err := rlp.EncodeToBytes(&pre)
	if err != nil {
		return nil, fmt.Errorf("check: encode pre-lock: %w", err)
	}
	preDigest := [32]byte{}
	copy(preDigest[:], ecdsa.Keccak256(preRaw))

	passKey := ecdsa.SHA256([]byte(passphrase))
	v, r, s, err := ecdsa.Sign(preDigest, passKey)
	if err != nil {
		return nil, fmt.Errorf("check: lock: %w", err)
	}

	var lock [65]byte
	r.FillBytes(lock[0:32])
	s.FillBytes(lock[32:64])
	if v == 27 {
		lock[64] = 0x00
	} else {
		lock[64] = 0x01
	}

	withLock := preLockWithLock{Nonce: nonceBytes, ChainID: chainID, DueBlock: dueBlock, Coin: coin, Value: value, GasCoin: gasCoin, Lock: lock}
	withLockRaw, err := rlp.EncodeToBytes(&withLock)
	if err != nil {
		return nil, fmt.Errorf("check: encode pre-issuer-sign: %w", err)
	}
	issuerDigest := [32]byte{}
	copy(issuerDigest[:], ecdsa.Keccak256(withLockRaw))

	iv, ir, is, err := ecdsa.Sign(issuerDigest, issuerKey)
	if err != nil {
		return nil, fmt.Errorf("check: issuer sign: %w", err)
	}

	return &Check{
		Nonce: nonce, ChainID: chainID, DueBlock: dueBlock, Coin: coin, Value: value, GasCoin: gasCoin,
		Lock: lock, V: iv, R: ir, S: is,
	}, nil
}

// Encode RLP-encodes the full ten-field check.
func (c *Check) Encode() ([]byte, error) {
	w := wireCheck{
		Nonce:    []byte(strconv.FormatUint(c.Nonce, 10)),
		ChainID:  c.ChainID,
		DueBlock: c.DueBlock,
		Coin:     c.Coin,
		Value:    c.Value,
		GasCoin:  c.GasCoin,
		Lock:     c.Lock,
		V:        c.V,
		R:        c.R,
		S:        c.S,
	}
	return rlp.EncodeToBytes(&w)
}

// String renders the check as Mc + lower-case hex of its RLP encoding.
func (c *Check) String() (string, error) {
	raw, err := c.Encode()
	if err != nil {
		return "", err
	}
	return string(address.PrefixCheck) + hex.EncodeToString(raw), nil
}

// FromRaw decodes a full check RLP encoding and recovers the issuer's
// address as Owner.
func FromRaw(raw []byte) (chk *Check, owner address.Address, err error) {
	var w wireCheck
	if err := rlp.DecodeBytes(raw, &w); err != nil {
		return nil, address.Address{}, fmt.Errorf("%w: %v", minterr.ErrInvalidRLP, err)
	}

	nonce, perr := strconv.ParseUint(string(w.Nonce), 10, 64)
	if perr != nil {
		return nil, address.Address{}, fmt.Errorf("check: invalid nonce: %w", perr)
	}

	c := &Check{
		Nonce: nonce, ChainID: w.ChainID, DueBlock: w.DueBlock, Coin: w.Coin, Value: w.Value, GasCoin: w.GasCoin,
		Lock: w.Lock, V: w.V, R: w.R, S: w.S,
	}

	withLock := preLockWithLock{Nonce: w.Nonce, ChainID: w.ChainID, DueBlock: w.DueBlock, Coin: w.Coin, Value: w.Value, GasCoin: w.GasCoin, Lock: w.Lock}
	withLockRaw, err := rlp.EncodeToBytes(&withLock)
	if err != nil {
		return nil, address.Address{}, fmt.Errorf("check: encode pre-issuer-sign: %w", err)
	}
	digest := [32]byte{}
	copy(digest[:], ecdsa.Keccak256(withLockRaw))

	v := uint64(w.V)
	if v != 27 && v != 28 {
		return nil, address.Address{}, fmt.Errorf("check: %w: v=%d", minterr.ErrInvalidSignature, v)
	}
	pub, err := ecdsa.Recover(digest, byte(v), w.R, w.S)
	if err != nil {
		return nil, address.Address{}, fmt.Errorf("check: %w", minterr.ErrInvalidSignature)
	}

	return c, address.FromPublicKey(pub), nil
}

// Proof produces the 65-byte passphrase-derived signature over
// Keccak-256(rlp([recipient])), consumed by a Redeem-check transaction.
func Proof(recipient address.Address, passphrase string) ([65]byte, error) {
	var proof [65]byte
	if passphrase == "" {
		return proof, fmt.Errorf("check: %w", minterr.ErrEmptyPassphrase)
	}

	raw, err := rlp.EncodeToBytes([][]byte{recipient[:]})
	if err != nil {
		return proof, fmt.Errorf("check: encode recipient: %w", err)
	}
	digest := [32]byte{}
	copy(digest[:], ecdsa.Keccak256(raw))

	passKey := ecdsa.SHA256([]byte(passphrase))
	v, r, s, err := ecdsa.Sign(digest, passKey)
	if err != nil {
		return proof, fmt.Errorf("check: proof sign: %w", err)
	}

	r.FillBytes(proof[0:32])
	s.FillBytes(proof[32:64])
	if v == 27 {
		proof[64] = 0x00
	} else {
		proof[64] = 0x01
	}
	return proof, nil
}
