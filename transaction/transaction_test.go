package transaction

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/MinterTeam/minter-go-sdk/address"
)

func mustHexKey(t *testing.T, s string) [32]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex key %q: %v", s, err)
	}
	var out [32]byte
	copy(out[:], b)
	return out
}

func mustAddress(t *testing.T, s string) [20]byte {
	t.Helper()
	a, err := address.ParseAddress(s)
	if err != nil {
		t.Fatalf("ParseAddress(%q): %v", s, err)
	}
	return [20]byte(a)
}

func TestSend_KnownAnswer(t *testing.T) {
	key := mustHexKey(t, "07bc17abdcee8b971bb8723e36fe9d2523306d5ab2d683631693238e0f9df142")
	to := mustAddress(t, "Mx1b685a7c1e78726c48f619c497a07ed75fe00483")

	value := new(big.Int)
	value.SetString("1000000000000000000", 10) // 1 BIP

	data := &SendData{To: to, Value: value}
	copy(data.Coin[:], "MNT")

	tx, err := New(1, ChainTestnet, "MNT", 1, nil, nil, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tx.Sign(SignInput{Key: &key}); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	gotHex, err := tx.Hex()
	if err != nil {
		t.Fatalf("Hex: %v", err)
	}
	wantHex := "f8840102018a4d4e540000000000000001aae98a4d4e5400000000000000941b685a7c1e78726c48f619c497a07ed75fe00483880de0b6b3a7640000808001b845f8431ca01f36e51600baa1d89d2bee64def9ac5d88c518cdefe45e3de66a3cf9fe410de4a01bc2228dc419a97ded0efe6848de906fbe6c659092167ef0e7dcb8d15024123a"
	if gotHex != wantHex {
		t.Errorf("Hex() =\n%s\nwant\n%s", gotHex, wantHex)
	}

	from, err := tx.From()
	if err != nil {
		t.Fatalf("From: %v", err)
	}
	if got := from.String(); got != "Mx31e61a05adbd13c6b625262704bc305bf7725026" {
		t.Errorf("From() = %s, want Mx31e61a05adbd13c6b625262704bc305bf7725026", got)
	}
}

func TestDelegate_KnownAnswer(t *testing.T) {
	key := mustHexKey(t, "6e1df6ec69638d152f563c5eca6c13cdb5db4055861efc11ec1cdd578afd96bf")
	pubKeyHex := "0eb98ea04ae466d8d38f490db3c99b3996a90e24243952ce9822c6dc1e2c1a43"
	pubKeyRaw, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		t.Fatalf("invalid pub key hex: %v", err)
	}

	data := &DelegateData{}
	copy(data.PubKey[:], pubKeyRaw)
	copy(data.Coin[:], "MNT")
	stake := new(big.Int)
	stake.SetString("10000000000000000000", 10) // 10 BIP

	data.Stake = stake

	tx, err := New(1, ChainTestnet, "MNT", 1, nil, nil, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tx.Sign(SignInput{Key: &key}); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	gotHex, err := tx.Hex()
	if err != nil {
		t.Fatalf("Hex: %v", err)
	}
	wantHex := "f8900102018a4d4e540000000000000007b6f5a00eb98ea04ae466d8d38f490db3c99b3996a90e24243952ce9822c6dc1e2c1a438a4d4e5400000000000000888ac7230489e80000808001b845f8431ba01c2c8f702d80cf64da1e9bf1f07a52e2fee8721aebe419aa9f62260a98983f89a07ed297d71d9dc37a57ffe9bb16915dccc703d8c09f30da8aadb9d5dbab8c7da9"
	if gotHex != wantHex {
		t.Errorf("Hex() =\n%s\nwant\n%s", gotHex, wantHex)
	}

	from, err := tx.From()
	if err != nil {
		t.Fatalf("From: %v", err)
	}
	if got := from.String(); got != "Mx9f7fd953c2c69044b901426831ed03ee0bd0597a" {
		t.Errorf("From() = %s, want Mx9f7fd953c2c69044b901426831ed03ee0bd0597a", got)
	}
}

func TestFromRaw_SendRoundTrip(t *testing.T) {
	key := mustHexKey(t, "07bc17abdcee8b971bb8723e36fe9d2523306d5ab2d683631693238e0f9df142")
	to := mustAddress(t, "Mx1b685a7c1e78726c48f619c497a07ed75fe00483")
	value := new(big.Int)
	value.SetString("1000000000000000000", 10)

	data := &SendData{To: to, Value: value}
	copy(data.Coin[:], "MNT")

	tx, err := New(1, ChainTestnet, "MNT", 1, []byte("hi"), nil, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tx.Sign(SignInput{Key: &key}); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	raw, err := tx.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := FromRaw(raw)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	if decoded.Nonce != tx.Nonce || decoded.ChainID != tx.ChainID || decoded.Type != tx.Type {
		t.Errorf("decoded envelope fields mismatch: %+v", decoded)
	}
	sd, ok := decoded.Data.(*SendData)
	if !ok {
		t.Fatalf("decoded data has wrong type: %T", decoded.Data)
	}
	if sd.Value.Cmp(value) != 0 || sd.To != to {
		t.Errorf("decoded data mismatch: %+v", sd)
	}
	if txt, ok := decoded.PayloadText(); !ok || txt != "hi" {
		t.Errorf("PayloadText() = %q, %v; want \"hi\", true", txt, ok)
	}

	from, err := decoded.From()
	if err != nil {
		t.Fatalf("From: %v", err)
	}
	wantFrom, err := tx.From()
	if err != nil {
		t.Fatalf("From (original): %v", err)
	}
	if from != wantFrom {
		t.Errorf("decoded From() = %s, want %s", from, wantFrom)
	}
}

// TestMultisigSend_KeysThenAddSignatureMatch checks a structural invariant of
// multisig signing: signing with all owner keys at once must produce
// byte-identical output to signing with a subset followed by AddSignature for
// the remainder. Synthetic keys are used here rather than a known-answer
// fixture, since the only available one has its key material elided.
func TestMultisigSend_KeysThenAddSignatureMatch(t *testing.T) {
	msAddr := mustAddress(t, "Mxdb4f4b6942cb927e8d7e3a1f602d0f1fb43b5bd2")
	to := mustAddress(t, "Mxd82558ea00eb81d35f2654953598f5d51737d31d")
	value := big.NewInt(1000000000000000000)

	data := &SendData{To: to, Value: value}
	copy(data.Coin[:], "MNT")

	tx, err := New(1, ChainTestnet, "MNT", 1, nil, nil, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	keyA := mustHexKey(t, "aa00000000000000000000000000000000000000000000000000000000000001")
	keyB := mustHexKey(t, "bb00000000000000000000000000000000000000000000000000000000000002")
	keyC := mustHexKey(t, "cc00000000000000000000000000000000000000000000000000000000000003")

	if err := tx.SignMulti(MultisigSignInput{MsAddress: address.Address(msAddr), Keys: [][32]byte{keyA, keyB, keyC}}); err != nil {
		t.Fatalf("SignMulti: %v", err)
	}
	rawAllAtOnce, err := tx.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tx2, err := New(1, ChainTestnet, "MNT", 1, nil, nil, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tx2.SignMulti(MultisigSignInput{MsAddress: address.Address(msAddr), Keys: [][32]byte{keyA, keyB}}); err != nil {
		t.Fatalf("SignMulti: %v", err)
	}
	partial, err := tx2.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	completed, err := AddSignature(partial, keyC)
	if err != nil {
		t.Fatalf("AddSignature: %v", err)
	}

	if hex.EncodeToString(rawAllAtOnce) != hex.EncodeToString(completed) {
		t.Errorf("signing all-at-once and via AddSignature diverged:\n%x\n%x", rawAllAtOnce, completed)
	}

	decoded, err := FromRaw(completed)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	from, err := decoded.From()
	if err != nil {
		t.Fatalf("From: %v", err)
	}
	if from != address.Address(msAddr) {
		t.Errorf("From() = %s, want multisig address %s", from, address.Address(msAddr))
	}
	if len(decoded.MultiSignature.Parts) != 3 {
		t.Errorf("expected 3 signature parts, got %d", len(decoded.MultiSignature.Parts))
	}
}

func TestAddSignature_RejectsSingleSig(t *testing.T) {
	key := mustHexKey(t, "07bc17abdcee8b971bb8723e36fe9d2523306d5ab2d683631693238e0f9df142")
	to := mustAddress(t, "Mx1b685a7c1e78726c48f619c497a07ed75fe00483")
	data := &SendData{To: to, Value: big.NewInt(1)}
	copy(data.Coin[:], "MNT")

	tx, err := New(1, ChainTestnet, "MNT", 1, nil, nil, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := tx.Sign(SignInput{Key: &key}); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	raw, err := tx.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := AddSignature(raw, key); err == nil {
		t.Error("expected AddSignature to reject a single-sig transaction")
	}
}

func TestSign_ConflictingInput(t *testing.T) {
	key := mustHexKey(t, "07bc17abdcee8b971bb8723e36fe9d2523306d5ab2d683631693238e0f9df142")
	data := &SendData{Value: big.NewInt(1)}
	copy(data.Coin[:], "MNT")

	tx, err := New(1, ChainTestnet, "MNT", 1, nil, nil, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sig := &Signature{V: big.NewInt(27), R: big.NewInt(1), S: big.NewInt(1)}
	if err := tx.Sign(SignInput{Key: &key, Signature: sig}); err == nil {
		t.Error("expected ErrConflictingSigner error")
	}
}

func TestFee(t *testing.T) {
	data := &SendData{Value: big.NewInt(1)}
	copy(data.Coin[:], "MNT")

	tx, err := New(1, ChainTestnet, "MNT", 1, nil, nil, data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := big.NewInt(10 * feeUnitPip)
	if tx.Fee().Cmp(want) != 0 {
		t.Errorf("Fee() = %s, want %s", tx.Fee(), want)
	}

	tx.Payload = []byte("abcd") // 4 UTF-8 bytes
	want = big.NewInt((10 + 4*2) * feeUnitPip)
	if tx.Fee().Cmp(want) != 0 {
		t.Errorf("Fee() with payload = %s, want %s", tx.Fee(), want)
	}
}

func TestFee_MultisendExtraPerRecipient(t *testing.T) {
	single := &MultisendData{Items: []MultisendItem{{Value: big.NewInt(1)}}}
	txSingle, err := New(1, ChainTestnet, "MNT", 1, nil, nil, single)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	wantSingle := big.NewInt(10 * feeUnitPip)
	if txSingle.Fee().Cmp(wantSingle) != 0 {
		t.Errorf("single-recipient multisend fee = %s, want %s", txSingle.Fee(), wantSingle)
	}

	multi := &MultisendData{Items: []MultisendItem{
		{Value: big.NewInt(1)}, {Value: big.NewInt(1)}, {Value: big.NewInt(1)},
	}}
	txMulti, err := New(1, ChainTestnet, "MNT", 1, nil, nil, multi)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	wantMulti := big.NewInt((10 + 2*5) * feeUnitPip)
	if txMulti.Fee().Cmp(wantMulti) != 0 {
		t.Errorf("3-recipient multisend fee = %s, want %s", txMulti.Fee(), wantMulti)
	}
}

func TestUnknownTxType(t *testing.T) {
	env := envelope{Nonce: 1, ChainID: 2, GasPrice: 1, Type: 99, SignatureType: 1}
	copy(env.GasCoin[:], "MNT")
	raw, err := rlp.EncodeToBytes(&env)
	if err != nil {
		t.Fatalf("encode fixture envelope: %v", err)
	}
	if _, err := FromRaw(raw); err == nil {
		t.Error("expected error decoding an unknown type tag")
	}
}
