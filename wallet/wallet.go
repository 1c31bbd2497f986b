// Package wallet derives Minter wallets from BIP-39 mnemonics along the
// fixed account path m/44'/60'/0'/0/0.
package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"

	"github.com/MinterTeam/minter-go-sdk/address"
	"github.com/MinterTeam/minter-go-sdk/internal/ecdsa"
	"github.com/MinterTeam/minter-go-sdk/minterr"
)

// coinType is Minter's BIP-44 coin type, shared with Ethereum.
const coinType = 60

// Wallet holds a derived Minter account: its mnemonic, private key, public
// key and address.
type Wallet struct {
	Mnemonic   string
	Seed       []byte
	PrivateKey [32]byte
	PublicKey  [64]byte
	Address    address.Address
}

// NewMnemonic generates a new random BIP-39 mnemonic with 128 bits of
// entropy (12 words).
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("wallet: generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("wallet: generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic reports whether mnemonic is a well-formed BIP-39 phrase.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// FromMnemonic derives the Minter wallet for a mnemonic and optional BIP-39
// passphrase.
func FromMnemonic(mnemonic, passphrase string) (*Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("wallet: %w", minterr.ErrInvalidMnemonic)
	}
	seed := bip39.NewSeed(mnemonic, passphrase)

	priv, err := deriveAccountKey(seed)
	if err != nil {
		return nil, fmt.Errorf("wallet: derive key: %w", err)
	}

	return fromPrivateKey(mnemonic, seed, priv)
}

// FromPrivateKey builds a Wallet directly from a 32-byte private key, with
// no mnemonic or seed attached.
func FromPrivateKey(priv [32]byte) (*Wallet, error) {
	return fromPrivateKey("", nil, priv)
}

func fromPrivateKey(mnemonic string, seed []byte, priv [32]byte) (*Wallet, error) {
	pub, err := ecdsa.PublicKeyFromPrivate(priv)
	if err != nil {
		return nil, fmt.Errorf("wallet: derive public key: %w", err)
	}

	return &Wallet{
		Mnemonic:   mnemonic,
		Seed:       seed,
		PrivateKey: priv,
		PublicKey:  pub,
		Address:    address.FromPublicKey(pub),
	}, nil
}

// deriveAccountKey walks the fixed Minter account path m/44'/60'/0'/0/0 from
// a BIP-39 seed and returns the resulting 32-byte private key.
func deriveAccountKey(seed []byte) ([32]byte, error) {
	var out [32]byte

	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return out, fmt.Errorf("master key: %w", err)
	}

	purpose, err := master.NewChildKey(bip32.FirstHardenedChild + 44)
	if err != nil {
		return out, fmt.Errorf("purpose child: %w", err)
	}
	coin, err := purpose.NewChildKey(bip32.FirstHardenedChild + coinType)
	if err != nil {
		return out, fmt.Errorf("coin-type child: %w", err)
	}
	account, err := coin.NewChildKey(bip32.FirstHardenedChild + 0)
	if err != nil {
		return out, fmt.Errorf("account child: %w", err)
	}
	change, err := account.NewChildKey(0)
	if err != nil {
		return out, fmt.Errorf("change child: %w", err)
	}
	addressKey, err := change.NewChildKey(0)
	if err != nil {
		return out, fmt.Errorf("address-index child: %w", err)
	}

	if len(addressKey.Key) != 32 {
		return out, fmt.Errorf("unexpected derived key length %d", len(addressKey.Key))
	}
	copy(out[:], addressKey.Key)
	return out, nil
}
