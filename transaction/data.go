package transaction

import (
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/MinterTeam/minter-go-sdk/minterr"
)

// Data is implemented by every typed transaction payload. Each concrete type
// also doubles as its own RLP codec via the reflection-based field ordering
// go-ethereum's rlp package derives from struct field order.
type Data interface {
	Type() Type
}

// SendData is the payload of a Send transaction (type 1).
type SendData struct {
	Coin  [10]byte
	To    [20]byte
	Value *big.Int
}

// Type implements Data.
func (d *SendData) Type() Type { return TypeSend }

// SellCoinData is the payload of a Sell transaction (type 2).
type SellCoinData struct {
	CoinToSell    [10]byte
	ValueToSell   *big.Int
	CoinToBuy     [10]byte
	MinValueToBuy *big.Int
}

// Type implements Data.
func (d *SellCoinData) Type() Type { return TypeSellCoin }

// SellAllCoinData is the payload of a Sell-all transaction (type 3).
type SellAllCoinData struct {
	CoinToSell    [10]byte
	CoinToBuy     [10]byte
	MinValueToBuy *big.Int
}

// Type implements Data.
func (d *SellAllCoinData) Type() Type { return TypeSellAllCoin }

// BuyCoinData is the payload of a Buy transaction (type 4).
type BuyCoinData struct {
	CoinToBuy      [10]byte
	ValueToBuy     *big.Int
	CoinToSell     [10]byte
	MaxValueToSell *big.Int
}

// Type implements Data.
func (d *BuyCoinData) Type() Type { return TypeBuyCoin }

// CreateCoinData is the payload of a Create-coin transaction (type 5).
// ConstantReserveRatio of zero encodes as the RLP empty string, identical to
// how the rlp package already encodes any zero-valued unsigned integer.
type CreateCoinData struct {
	Name                 []byte
	Symbol               [10]byte
	InitialAmount        *big.Int
	InitialReserve       *big.Int
	ConstantReserveRatio uint64
	MaxSupply            *big.Int
}

// Type implements Data.
func (d *CreateCoinData) Type() Type { return TypeCreateCoin }

// DeclareCandidacyData is the payload of a Declare-candidacy transaction
// (type 6). PubKey is the 32-byte validator consensus key, distinct from the
// 64-byte account public key used for wallet addressing.
type DeclareCandidacyData struct {
	Address    [20]byte
	PubKey     [32]byte
	Commission uint64
	Coin       [10]byte
	Stake      *big.Int
}

// Type implements Data.
func (d *DeclareCandidacyData) Type() Type { return TypeDeclareCandidacy }

// DelegateData is the payload of a Delegate transaction (type 7).
type DelegateData struct {
	PubKey [32]byte
	Coin   [10]byte
	Stake  *big.Int
}

// Type implements Data.
func (d *DelegateData) Type() Type { return TypeDelegate }

// UnbondData is the payload of an Unbond transaction (type 8).
type UnbondData struct {
	PubKey [32]byte
	Coin   [10]byte
	Value  *big.Int
}

// Type implements Data.
func (d *UnbondData) Type() Type { return TypeUnbond }

// RedeemCheckData is the payload of a Redeem-check transaction (type 9).
type RedeemCheckData struct {
	RawCheck []byte
	Proof    [65]byte
}

// Type implements Data.
func (d *RedeemCheckData) Type() Type { return TypeRedeemCheck }

// SetCandidateOnData is the payload of a Set-candidate-on transaction
// (type 10).
type SetCandidateOnData struct {
	PubKey [32]byte
}

// Type implements Data.
func (d *SetCandidateOnData) Type() Type { return TypeSetCandidateOn }

// SetCandidateOffData is the payload of a Set-candidate-off transaction
// (type 11).
type SetCandidateOffData struct {
	PubKey [32]byte
}

// Type implements Data.
func (d *SetCandidateOffData) Type() Type { return TypeSetCandidateOff }

// CreateMultisigData is the payload of a Create-multisig transaction
// (type 12). Threshold fits an unsigned 16-bit value and each weight an
// unsigned 10-bit value; both lists share a common non-zero length.
type CreateMultisigData struct {
	Threshold uint64
	Weights   []uint32
	Addresses [][20]byte
}

// Type implements Data.
func (d *CreateMultisigData) Type() Type { return TypeCreateMultisig }

// NewCreateMultisigData validates and builds a Create-multisig payload:
// threshold must fit an unsigned 16-bit value, each weight an unsigned
// 10-bit value, both lists must share a common non-zero length, and
// addresses must be distinct.
func NewCreateMultisigData(threshold uint64, weights []uint32, addresses [][20]byte) (*CreateMultisigData, error) {
	if threshold == 0 || threshold > 0xFFFF {
		return nil, fmt.Errorf("%w: threshold %d out of range", minterr.ErrInvalidMultisigConfig, threshold)
	}
	if len(weights) == 0 || len(weights) != len(addresses) {
		return nil, fmt.Errorf("%w: weights and addresses must have equal non-zero length", minterr.ErrInvalidMultisigConfig)
	}
	seen := make(map[[20]byte]struct{}, len(addresses))
	for _, a := range addresses {
		if _, dup := seen[a]; dup {
			return nil, fmt.Errorf("%w: duplicate address in multisig owners", minterr.ErrInvalidMultisigConfig)
		}
		seen[a] = struct{}{}
	}
	for _, w := range weights {
		if w == 0 || w > 0x3FF {
			return nil, fmt.Errorf("%w: weight %d out of range", minterr.ErrInvalidMultisigConfig, w)
		}
	}
	return &CreateMultisigData{Threshold: threshold, Weights: weights, Addresses: addresses}, nil
}

// MultisendItem is one recipient within a Multisend transaction.
type MultisendItem struct {
	Coin  [10]byte
	To    [20]byte
	Value *big.Int
}

// MultisendData is the payload of a Multisend transaction (type 13). Its
// wire shape is the bare list of items, not a one-field wrapper list, so it
// implements rlp.Encoder/Decoder directly instead of relying on default
// struct-field encoding.
type MultisendData struct {
	Items []MultisendItem
}

// Type implements Data.
func (d *MultisendData) Type() Type { return TypeMultisend }

// EncodeRLP implements rlp.Encoder.
func (d MultisendData) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, d.Items)
}

// DecodeRLP implements rlp.Decoder.
func (d *MultisendData) DecodeRLP(s *rlp.Stream) error {
	return s.Decode(&d.Items)
}

// EditCandidateData is the payload of an Edit-candidate transaction
// (type 14).
type EditCandidateData struct {
	PubKey        [32]byte
	RewardAddress [20]byte
	OwnerAddress  [20]byte
}

// Type implements Data.
func (d *EditCandidateData) Type() Type { return TypeEditCandidate }
