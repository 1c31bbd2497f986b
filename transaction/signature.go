package transaction

import "math/big"

// Signature is a single recoverable ECDSA signature, the wire shape used by
// both single-owner transactions and the individual entries inside a
// MultiSignature. V is 27 or 28.
type Signature struct {
	V *big.Int
	R *big.Int
	S *big.Int
}

// MultiSignature is the signature_data shape for a multisig transaction: the
// on-chain multisig address plus the ordered owner signatures supplied so
// far.
type MultiSignature struct {
	Signer [20]byte
	Parts  []Signature
}
