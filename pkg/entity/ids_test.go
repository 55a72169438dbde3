package entity

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/shamank/hiero-sdk-go/pkg/keys"
)

// TestAccountIDFromString_RoundTrip verifies parse/format round-trips on the
// canonical dotted form.
func TestAccountIDFromString_RoundTrip(t *testing.T) {
	id, err := AccountIDFromString("0.0.1234")
	if err != nil {
		t.Fatalf("AccountIDFromString: %v", err)
	}
	if id.Shard != 0 || id.Realm != 0 || id.Num != 1234 {
		t.Fatalf("parsed %+v", id)
	}
	if id.String() != "0.0.1234" {
		t.Fatalf("String() = %q, want \"0.0.1234\"", id.String())
	}

	id2, err := AccountIDFromString("3.7.42")
	if err != nil {
		t.Fatalf("AccountIDFromString: %v", err)
	}
	if id2.String() != "3.7.42" {
		t.Fatalf("String() = %q", id2.String())
	}
}

// TestAccountIDFromString_Invalid verifies malformed strings are rejected
// with an error naming the input.
func TestAccountIDFromString_Invalid(t *testing.T) {
	invalid := []string{"", "0.0", "0.0.0.0", "a.b.c", "0.0.-1", "0..1", "1234"}
	for _, in := range invalid {
		if _, err := AccountIDFromString(in); err == nil {
			t.Fatalf("AccountIDFromString(%q) succeeded, want error", in)
		}
	}
}

// TestAliasAccountID verifies hollow account ids carry the alias key and
// compare by key material.
func TestAliasAccountID(t *testing.T) {
	priv, err := keys.GenerateECDSA()
	if err != nil {
		t.Fatalf("GenerateECDSA: %v", err)
	}
	pub := priv.PublicKey()

	id := NewAliasAccountID(0, 0, pub)
	if id.Num != 0 || id.AliasKey == nil {
		t.Fatalf("alias id = %+v", id)
	}

	wantSuffix := hex.EncodeToString(pub.BytesRaw())
	if got := id.String(); got != "0.0."+wantSuffix {
		t.Fatalf("String() = %q, want alias suffix %q", got, wantSuffix)
	}

	same, err := keys.PublicKeyFromString(pub.String())
	if err != nil {
		t.Fatalf("PublicKeyFromString: %v", err)
	}
	if !id.Equals(NewAliasAccountID(0, 0, same)) {
		t.Fatal("alias ids with equal key material compare unequal")
	}
	if id.Equals(NewAccountID(0, 0, 0)) {
		t.Fatal("alias id equals a plain zero id")
	}
}

// TestContractIDEvmAddress verifies the fixed-width 20-byte address form.
func TestContractIDEvmAddress(t *testing.T) {
	id := NewContractID(0, 0, 1234)
	addr := id.EvmAddress()
	if addr != common.HexToAddress("0x00000000000000000000000000000000000004d2") {
		t.Fatalf("EvmAddress() = %s", addr.Hex())
	}

	id2 := NewContractID(1, 2, 3)
	addr2 := id2.EvmAddress()
	want := "0x" + "00000001" + "0000000000000002" + "0000000000000003"
	if got := addr2.Hex(); len(got) != len(want) {
		t.Fatalf("EvmAddress() = %s", got)
	}
	if addr2[3] != 1 || addr2[11] != 2 || addr2[19] != 3 {
		t.Fatalf("EvmAddress() bytes = %x", addr2)
	}
}

// TestFileAndTopicIDs verifies the remaining triple identifiers round-trip.
func TestFileAndTopicIDs(t *testing.T) {
	f, err := FileIDFromString("0.0.111")
	if err != nil {
		t.Fatalf("FileIDFromString: %v", err)
	}
	if f.String() != "0.0.111" {
		t.Fatalf("FileID.String() = %q", f.String())
	}

	top, err := TopicIDFromString("0.0.222")
	if err != nil {
		t.Fatalf("TopicIDFromString: %v", err)
	}
	if top.String() != "0.0.222" {
		t.Fatalf("TopicID.String() = %q", top.String())
	}
}

// TestGenerateTransactionID verifies ids are unique and strictly ordered per
// payer, and round-trip through their string form.
func TestGenerateTransactionID(t *testing.T) {
	payer := NewAccountID(0, 0, 1001)

	a := GenerateTransactionID(payer)
	b := GenerateTransactionID(payer)

	if !a.AccountID.Equals(payer) {
		t.Fatalf("payer = %s", a.AccountID)
	}
	if !b.ValidStart.After(a.ValidStart) {
		t.Fatalf("ids not strictly ordered: %s then %s", a, b)
	}

	back, err := TransactionIDFromString(a.String())
	if err != nil {
		t.Fatalf("TransactionIDFromString(%q): %v", a.String(), err)
	}
	if !back.ValidStart.Equal(a.ValidStart) || !back.AccountID.Equals(a.AccountID) {
		t.Fatalf("round trip changed id: %s -> %s", a, back)
	}
}

// TestTransactionIDFromString_Invalid verifies malformed ids are rejected.
func TestTransactionIDFromString_Invalid(t *testing.T) {
	invalid := []string{"", "0.0.1", "0.0.1@", "0.0.1@12", "0.0.1@x.y", "@1.2"}
	for _, in := range invalid {
		if _, err := TransactionIDFromString(in); err == nil {
			t.Fatalf("TransactionIDFromString(%q) succeeded, want error", in)
		}
	}
}
