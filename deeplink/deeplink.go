// Package deeplink assembles the RLP data blob consumed by Minter's deeplink
// URL wrapper (out of scope for this core): a reduced, six-element subset of
// a transaction's fields.
package deeplink

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/MinterTeam/minter-go-sdk/transaction"
)

// Data is the RLP-ready deeplink payload: [type, data_rlp, payload,
// nonce_or_empty, gas_price_or_empty, gas_coin_or_empty]. Zero-valued Nonce,
// GasPrice or GasCoin already encode as the RLP empty string under minimal
// integer encoding, so dataOnly mode needs no special casing.
type Data struct {
	Type     uint8
	TxData   []byte
	Payload  []byte
	Nonce    uint64
	GasPrice uint64
	GasCoin  []byte
}

// FromTransaction builds the reduced deeplink payload from a transaction.
// When dataOnly is true, Nonce, GasPrice and GasCoin are omitted (encoded as
// RLP empty strings).
func FromTransaction(tx *transaction.Transaction, dataOnly bool) (*Data, error) {
	txDataRaw, err := rlp.EncodeToBytes(tx.Data)
	if err != nil {
		return nil, err
	}

	d := &Data{
		Type:    uint8(tx.Type),
		TxData:  txDataRaw,
		Payload: tx.Payload,
	}
	if !dataOnly {
		d.Nonce = tx.Nonce
		d.GasPrice = tx.GasPrice
		gasCoin := tx.GasCoin[:]
		d.GasCoin = gasCoin
	}
	return d, nil
}

// Encode RLP-encodes the deeplink data blob, the raw bytes hex-encoded into
// a URL's "d" query parameter by the out-of-scope wrapper.
func (d *Data) Encode() ([]byte, error) {
	return rlp.EncodeToBytes(d)
}
