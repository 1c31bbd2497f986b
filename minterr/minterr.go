// Package minterr defines the sentinel error kinds shared across the SDK so
// callers can classify failures with errors.Is regardless of which package
// raised them.
package minterr

import "errors"

// Sentinel error kinds. Components wrap these with context via fmt.Errorf's
// %w verb rather than returning them bare.
var (
	ErrInvalidPrefix        = errors.New("minter: invalid prefix")
	ErrInvalidCoinSymbol    = errors.New("minter: invalid coin symbol")
	ErrInvalidAmountKind    = errors.New("minter: invalid amount")
	ErrInvalidKeyLength     = errors.New("minter: invalid key length")
	ErrInvalidSignature     = errors.New("minter: invalid signature")
	ErrInvalidMnemonic      = errors.New("minter: invalid mnemonic")
	ErrInvalidRLP           = errors.New("minter: invalid rlp")
	ErrUnknownTxType        = errors.New("minter: unknown transaction type")
	ErrConflictingSigner    = errors.New("minter: conflicting signer input")
	ErrMultisigRequired     = errors.New("minter: multisig required")
	ErrEmptyPassphrase      = errors.New("minter: empty passphrase")
	ErrInvalidMultisigConfig = errors.New("minter: invalid multisig configuration")
)
