// Package transaction implements Minter's RLP transaction envelope: the
// fourteen typed data shapes, single/multisig signing, fee computation and
// round-trip decoding with sender recovery.
package transaction

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/MinterTeam/minter-go-sdk/address"
	"github.com/MinterTeam/minter-go-sdk/convert"
	"github.com/MinterTeam/minter-go-sdk/internal/ecdsa"
	"github.com/MinterTeam/minter-go-sdk/minterr"
)

// Fee in PIP is (commission_units + payload_bytes*2 + service_data_bytes*2) *
// 10^15, plus (n-1)*5*10^15 for multisend with more than one recipient.
const (
	feeUnitPip            = 1_000_000_000_000_000
	multisendPerRecipient = 5
	bytesFeeMultiplier    = 2
)

// envelope is the ten-element RLP wire shape. It is not exported: callers
// work with Transaction, which carries typed, decoded fields.
type envelope struct {
	Nonce         uint64
	ChainID       uint8
	GasPrice      uint64
	GasCoin       [10]byte
	Type          uint8
	Data          []byte
	Payload       []byte
	ServiceData   []byte
	SignatureType uint8
	SignatureData []byte
}

// preSignEnvelope is the envelope with signature_data removed, the exact
// nine-element list whose Keccak-256 digest is signed.
type preSignEnvelope struct {
	Nonce         uint64
	ChainID       uint8
	GasPrice      uint64
	GasCoin       [10]byte
	Type          uint8
	Data          []byte
	Payload       []byte
	ServiceData   []byte
	SignatureType uint8
}

// Transaction is a decoded or in-construction Minter transaction.
type Transaction struct {
	Nonce       uint64
	ChainID     ChainID
	GasPrice    uint64
	GasCoin     [10]byte
	Type        Type
	Data        Data
	Payload     []byte
	ServiceData []byte

	SignatureType  SignatureType
	Signature      *Signature
	MultiSignature *MultiSignature
}

// New builds an unsigned transaction envelope around a typed payload.
// gasCoin is a human-readable coin symbol (e.g. "MNT"); it is upper-cased
// and NUL-padded to its wire form.
func New(nonce uint64, chainID ChainID, gasCoin string, gasPrice uint64, payload, serviceData []byte, data Data) (*Transaction, error) {
	if !chainID.Valid() {
		return nil, fmt.Errorf("transaction: invalid chain id %d", chainID)
	}
	coin, err := convert.EncodeCoinSymbol(gasCoin)
	if err != nil {
		return nil, fmt.Errorf("transaction: gas coin: %w", err)
	}
	return &Transaction{
		Nonce:       nonce,
		ChainID:     chainID,
		GasPrice:    gasPrice,
		GasCoin:     coin,
		Type:        data.Type(),
		Data:        data,
		Payload:     payload,
		ServiceData: serviceData,
	}, nil
}

// SignInput supplies exactly one of a raw private key or a pre-computed
// signature for a single-owner transaction.
type SignInput struct {
	Key       *[32]byte
	Signature *Signature
}

// Sign attaches a single-owner signature to the transaction, setting
// signature_type to 1. Supplying both Key and Signature is rejected with
// ErrConflictingSigner.
func (tx *Transaction) Sign(in SignInput) error {
	if in.Key != nil && in.Signature != nil {
		return fmt.Errorf("transaction: %w", minterr.ErrConflictingSigner)
	}
	if in.Key == nil && in.Signature == nil {
		return fmt.Errorf("transaction: sign requires a key or a signature")
	}

	tx.SignatureType = SignatureTypeSingle
	if in.Signature != nil {
		tx.Signature = in.Signature
		return nil
	}

	digest, err := tx.preSignDigest()
	if err != nil {
		return err
	}
	v, r, s, err := ecdsa.Sign(digest, *in.Key)
	if err != nil {
		return fmt.Errorf("transaction: sign: %w", err)
	}
	tx.Signature = &Signature{V: big.NewInt(int64(v)), R: r, S: s}
	return nil
}

// MultisigSignInput supplies the multisig address and the signers for a
// multisig transaction, as a list of raw keys, a list of pre-computed
// signatures, or both — concatenated in that order to form the final
// signature list.
type MultisigSignInput struct {
	MsAddress  address.Address
	Keys       [][32]byte
	Signatures []Signature
}

// SignMulti attaches a multisig signature to the transaction, setting
// signature_type to 2.
func (tx *Transaction) SignMulti(in MultisigSignInput) error {
	if len(in.Keys) == 0 && len(in.Signatures) == 0 {
		return fmt.Errorf("transaction: multisig sign requires at least one key or signature")
	}

	tx.SignatureType = SignatureTypeMulti
	digest, err := tx.preSignDigest()
	if err != nil {
		return err
	}

	parts := make([]Signature, 0, len(in.Keys)+len(in.Signatures))
	for _, key := range in.Keys {
		v, r, s, err := ecdsa.Sign(digest, key)
		if err != nil {
			return fmt.Errorf("transaction: sign: %w", err)
		}
		parts = append(parts, Signature{V: big.NewInt(int64(v)), R: r, S: s})
	}
	parts = append(parts, in.Signatures...)

	tx.MultiSignature = &MultiSignature{Signer: in.MsAddress, Parts: parts}
	return nil
}

// AddSignature appends one more owner signature to an already-signed,
// encoded multisig transaction and re-emits it. It does not re-verify that
// key belongs to the multisig's owner set; that is left to the on-chain
// layer, matching upstream behavior.
func AddSignature(raw []byte, key [32]byte) ([]byte, error) {
	tx, err := FromRaw(raw)
	if err != nil {
		return nil, err
	}
	if tx.SignatureType != SignatureTypeMulti || tx.MultiSignature == nil {
		return nil, fmt.Errorf("transaction: %w", minterr.ErrMultisigRequired)
	}

	digest, err := tx.preSignDigest()
	if err != nil {
		return nil, err
	}
	v, r, s, err := ecdsa.Sign(digest, key)
	if err != nil {
		return nil, fmt.Errorf("transaction: sign: %w", err)
	}
	tx.MultiSignature.Parts = append(tx.MultiSignature.Parts, Signature{V: big.NewInt(int64(v)), R: r, S: s})

	return tx.Encode()
}

// preSignDigest computes the Keccak-256 digest of the nine-element
// signature_data-free envelope. SignatureType must already be set.
func (tx *Transaction) preSignDigest() ([32]byte, error) {
	var out [32]byte

	dataBytes, err := rlp.EncodeToBytes(tx.Data)
	if err != nil {
		return out, fmt.Errorf("transaction: encode data: %w", err)
	}

	pre := preSignEnvelope{
		Nonce:         tx.Nonce,
		ChainID:       uint8(tx.ChainID),
		GasPrice:      tx.GasPrice,
		GasCoin:       tx.GasCoin,
		Type:          uint8(tx.Type),
		Data:          dataBytes,
		Payload:       tx.Payload,
		ServiceData:   tx.ServiceData,
		SignatureType: uint8(tx.SignatureType),
	}
	raw, err := rlp.EncodeToBytes(&pre)
	if err != nil {
		return out, fmt.Errorf("transaction: encode pre-sign envelope: %w", err)
	}

	digest := ecdsa.Keccak256(raw)
	copy(out[:], digest)
	return out, nil
}

// Encode RLP-encodes the fully signed transaction envelope.
func (tx *Transaction) Encode() ([]byte, error) {
	dataBytes, err := rlp.EncodeToBytes(tx.Data)
	if err != nil {
		return nil, fmt.Errorf("transaction: encode data: %w", err)
	}
	sigBytes, err := tx.encodeSignatureData()
	if err != nil {
		return nil, err
	}

	env := envelope{
		Nonce:         tx.Nonce,
		ChainID:       uint8(tx.ChainID),
		GasPrice:      tx.GasPrice,
		GasCoin:       tx.GasCoin,
		Type:          uint8(tx.Type),
		Data:          dataBytes,
		Payload:       tx.Payload,
		ServiceData:   tx.ServiceData,
		SignatureType: uint8(tx.SignatureType),
		SignatureData: sigBytes,
	}
	return rlp.EncodeToBytes(&env)
}

func (tx *Transaction) encodeSignatureData() ([]byte, error) {
	switch tx.SignatureType {
	case SignatureTypeSingle:
		if tx.Signature == nil {
			return nil, fmt.Errorf("transaction: not signed")
		}
		return rlp.EncodeToBytes(tx.Signature)
	case SignatureTypeMulti:
		if tx.MultiSignature == nil {
			return nil, fmt.Errorf("transaction: not signed")
		}
		return rlp.EncodeToBytes(tx.MultiSignature)
	default:
		return nil, fmt.Errorf("transaction: signature type not set")
	}
}

// Hex renders the encoded transaction as lower-case hex, with no 0x prefix.
func (tx *Transaction) Hex() (string, error) {
	raw, err := tx.Encode()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// Hash returns the Mt-prefixed transaction hash: the first 20 bytes of
// SHA-256 of the encoded, signed transaction.
func (tx *Transaction) Hash() (string, error) {
	raw, err := tx.Encode()
	if err != nil {
		return "", err
	}
	digest := ecdsa.SHA256(raw)
	return string(address.PrefixTx) + hex.EncodeToString(digest[:20]), nil
}

// From recovers the sender address: the embedded multisig signer for a
// multisig transaction, or the address derived from the recovered public
// key for a single-owner one.
func (tx *Transaction) From() (address.Address, error) {
	switch tx.SignatureType {
	case SignatureTypeMulti:
		if tx.MultiSignature == nil {
			return address.Address{}, fmt.Errorf("transaction: not signed")
		}
		return address.Address(tx.MultiSignature.Signer), nil
	case SignatureTypeSingle:
		if tx.Signature == nil {
			return address.Address{}, fmt.Errorf("transaction: not signed")
		}
		digest, err := tx.preSignDigest()
		if err != nil {
			return address.Address{}, err
		}
		v := tx.Signature.V.Uint64()
		if v != 27 && v != 28 {
			return address.Address{}, fmt.Errorf("transaction: %w: v=%d", minterr.ErrInvalidSignature, v)
		}
		pub, err := ecdsa.Recover(digest, byte(v), tx.Signature.R, tx.Signature.S)
		if err != nil {
			return address.Address{}, fmt.Errorf("transaction: %w", minterr.ErrInvalidSignature)
		}
		return address.FromPublicKey(pub), nil
	default:
		return address.Address{}, fmt.Errorf("transaction: not signed")
	}
}

// FromRaw decodes a fully RLP-encoded, signed transaction envelope.
func FromRaw(raw []byte) (*Transaction, error) {
	var env envelope
	if err := rlp.DecodeBytes(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", minterr.ErrInvalidRLP, err)
	}

	t := Type(env.Type)
	factory, ok := dataFactory[t]
	if !ok {
		return nil, fmt.Errorf("transaction: %w: %d", minterr.ErrUnknownTxType, env.Type)
	}
	data := factory()
	if err := rlp.DecodeBytes(env.Data, data); err != nil {
		return nil, fmt.Errorf("%w: decode data: %v", minterr.ErrInvalidRLP, err)
	}

	tx := &Transaction{
		Nonce:         env.Nonce,
		ChainID:       ChainID(env.ChainID),
		GasPrice:      env.GasPrice,
		GasCoin:       env.GasCoin,
		Type:          t,
		Data:          data,
		Payload:       env.Payload,
		ServiceData:   env.ServiceData,
		SignatureType: SignatureType(env.SignatureType),
	}

	switch tx.SignatureType {
	case SignatureTypeSingle:
		var sig Signature
		if err := rlp.DecodeBytes(env.SignatureData, &sig); err != nil {
			return nil, fmt.Errorf("%w: decode signature: %v", minterr.ErrInvalidRLP, err)
		}
		tx.Signature = &sig
	case SignatureTypeMulti:
		var ms MultiSignature
		if err := rlp.DecodeBytes(env.SignatureData, &ms); err != nil {
			return nil, fmt.Errorf("%w: decode signature: %v", minterr.ErrInvalidRLP, err)
		}
		tx.MultiSignature = &ms
	default:
		return nil, fmt.Errorf("transaction: unknown signature type %d", env.SignatureType)
	}

	return tx, nil
}

// Fee computes the total transaction fee in PIP.
func (tx *Transaction) Fee() *big.Int {
	units := commissionUnits[tx.Type]
	total := units +
		uint64(len(tx.Payload))*bytesFeeMultiplier +
		uint64(len(tx.ServiceData))*bytesFeeMultiplier

	fee := new(big.Int).Mul(big.NewInt(int64(total)), big.NewInt(feeUnitPip))

	if tx.Type == TypeMultisend {
		if md, ok := tx.Data.(*MultisendData); ok && len(md.Items) > 1 {
			extraUnits := int64(len(md.Items)-1) * multisendPerRecipient
			extra := new(big.Int).Mul(big.NewInt(extraUnits), big.NewInt(feeUnitPip))
			fee.Add(fee, extra)
		}
	}

	return fee
}

// PayloadText reports the payload as a UTF-8 string when it decodes validly;
// otherwise ok is false and callers should treat Payload as opaque bytes.
func (tx *Transaction) PayloadText() (text string, ok bool) {
	return textOrBytes(tx.Payload)
}

// ServiceDataText reports the service data as a UTF-8 string when it decodes
// validly; otherwise ok is false.
func (tx *Transaction) ServiceDataText() (text string, ok bool) {
	return textOrBytes(tx.ServiceData)
}

func textOrBytes(b []byte) (string, bool) {
	if len(b) == 0 || !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}
