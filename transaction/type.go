package transaction

// Type is the numeric tag identifying a transaction's data shape.
type Type uint8

// The fourteen defined transaction types. 12 (Create-multisig) is built,
// signed, encoded and decoded the same way as the other thirteen.
const (
	TypeSend             Type = 1
	TypeSellCoin         Type = 2
	TypeSellAllCoin      Type = 3
	TypeBuyCoin          Type = 4
	TypeCreateCoin       Type = 5
	TypeDeclareCandidacy Type = 6
	TypeDelegate         Type = 7
	TypeUnbond           Type = 8
	TypeRedeemCheck      Type = 9
	TypeSetCandidateOn   Type = 10
	TypeSetCandidateOff  Type = 11
	TypeCreateMultisig   Type = 12
	TypeMultisend        Type = 13
	TypeEditCandidate    Type = 14
)

// ChainID selects which Minter network a transaction targets.
type ChainID uint8

// Supported chains.
const (
	ChainMainnet ChainID = 1
	ChainTestnet ChainID = 2
)

// Valid reports whether c is one of the two defined chains.
func (c ChainID) Valid() bool {
	return c == ChainMainnet || c == ChainTestnet
}

// SignatureType distinguishes single-owner from multisig signature data.
type SignatureType uint8

// Supported signature kinds.
const (
	SignatureTypeSingle SignatureType = 1
	SignatureTypeMulti  SignatureType = 2
)

// commissionUnits holds the per-type base commission from which the fee is
// derived.
var commissionUnits = map[Type]uint64{
	TypeSend:             10,
	TypeSellCoin:         100,
	TypeSellAllCoin:      100,
	TypeBuyCoin:          100,
	TypeCreateCoin:       1000,
	TypeDeclareCandidacy: 10000,
	TypeDelegate:         200,
	TypeUnbond:           100,
	TypeRedeemCheck:      30,
	TypeSetCandidateOn:   100,
	TypeSetCandidateOff:  100,
	TypeCreateMultisig:   100,
	TypeMultisend:        10,
	TypeEditCandidate:    10000,
}

// dataFactory returns a fresh, zero-valued, addressable Data implementation
// for a given type tag, used by FromRaw to decode the type-specific payload.
var dataFactory = map[Type]func() Data{
	TypeSend:             func() Data { return &SendData{} },
	TypeSellCoin:         func() Data { return &SellCoinData{} },
	TypeSellAllCoin:      func() Data { return &SellAllCoinData{} },
	TypeBuyCoin:          func() Data { return &BuyCoinData{} },
	TypeCreateCoin:       func() Data { return &CreateCoinData{} },
	TypeDeclareCandidacy: func() Data { return &DeclareCandidacyData{} },
	TypeDelegate:         func() Data { return &DelegateData{} },
	TypeUnbond:           func() Data { return &UnbondData{} },
	TypeRedeemCheck:      func() Data { return &RedeemCheckData{} },
	TypeSetCandidateOn:   func() Data { return &SetCandidateOnData{} },
	TypeSetCandidateOff:  func() Data { return &SetCandidateOffData{} },
	TypeCreateMultisig:   func() Data { return &CreateMultisigData{} },
	TypeMultisend:        func() Data { return &MultisendData{} },
	TypeEditCandidate:    func() Data { return &EditCandidateData{} },
}
