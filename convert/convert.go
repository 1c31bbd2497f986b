// Package convert implements the fixed-point arithmetic used throughout the
// Minter network: BIP is the human-facing unit, PIP is its on-chain integer
// representation at 10^18 precision, and coin symbols are padded/stripped to
// their 10-byte wire form.
package convert

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/MinterTeam/minter-go-sdk/minterr"
)

// PipPrecision is the number of decimal digits between one BIP and one PIP.
const PipPrecision = 18

// symbolWireLen is the fixed byte width of a coin symbol on the wire.
const symbolWireLen = 10

// ToPip converts a decimal BIP amount (e.g. "1.5") into its PIP integer
// representation (1500000000000000000).
func ToPip(bip string) (*big.Int, error) {
	bip = strings.TrimSpace(bip)
	if bip == "" {
		return nil, fmt.Errorf("%w: empty bip value", minterr.ErrInvalidAmountKind)
	}

	if strings.HasPrefix(bip, "-") {
		return nil, fmt.Errorf("%w: negative bip value %q not allowed", minterr.ErrInvalidAmountKind, bip)
	}

	intPart := bip
	fracPart := ""
	if i := strings.IndexByte(bip, '.'); i >= 0 {
		intPart = bip[:i]
		fracPart = bip[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > PipPrecision {
		return nil, fmt.Errorf("%w: bip value %q has more than %d fractional digits", minterr.ErrInvalidAmountKind, bip, PipPrecision)
	}
	fracPart = fracPart + strings.Repeat("0", PipPrecision-len(fracPart))

	combined, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, fmt.Errorf("%w: invalid bip value %q", minterr.ErrInvalidAmountKind, bip)
	}
	return combined, nil
}

// ToBip converts a PIP integer amount into its decimal BIP string
// representation, trimming trailing fractional zeros.
func ToBip(pip *big.Int) string {
	if pip == nil {
		pip = new(big.Int)
	}
	neg := pip.Sign() < 0
	abs := new(big.Int).Abs(pip)

	digits := abs.String()
	if len(digits) <= PipPrecision {
		digits = strings.Repeat("0", PipPrecision-len(digits)+1) + digits
	}
	intPart := digits[:len(digits)-PipPrecision]
	fracPart := strings.TrimRight(digits[len(digits)-PipPrecision:], "0")

	out := intPart
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg && out != "0" {
		out = "-" + out
	}
	return out
}

// EncodeCoinSymbol pads a human-readable coin symbol (e.g. "MNT") to its
// fixed 10-byte wire representation, NUL-padded on the right.
func EncodeCoinSymbol(symbol string) ([10]byte, error) {
	var out [10]byte
	if len(symbol) == 0 || len(symbol) > symbolWireLen {
		return out, fmt.Errorf("%w: coin symbol %q must be 1-%d bytes, got %d", minterr.ErrInvalidCoinSymbol, symbol, symbolWireLen, len(symbol))
	}
	copy(out[:], strings.ToUpper(symbol))
	return out, nil
}

// DecodeCoinSymbol strips the NUL padding from a 10-byte wire coin symbol.
func DecodeCoinSymbol(raw [10]byte) string {
	return strings.TrimRight(string(raw[:]), "\x00")
}
