package keys

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// TestEd25519_SignVerify verifies a generated Ed25519 key signs and its
// public key verifies, and that a tampered message fails verification.
func TestEd25519_SignVerify(t *testing.T) {
	priv, err := GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}

	msg := []byte("transaction body bytes")
	sig, err := priv.Sign(msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != 64 {
		t.Fatalf("signature length = %d, want 64", len(sig))
	}

	pub := priv.PublicKey()
	if !pub.Verify(msg, sig) {
		t.Fatal("valid signature failed verification")
	}
	if pub.Verify([]byte("tampered"), sig) {
		t.Fatal("tampered message verified")
	}
}

// TestECDSA_SignVerify verifies the secp256k1 variant, including the 64-byte
// r||s network form and the 65-byte recoverable form.
func TestECDSA_SignVerify(t *testing.T) {
	priv, err := GenerateECDSA()
	if err != nil {
		t.Fatalf("GenerateECDSA: %v", err)
	}

	msg := []byte("transaction body bytes")
	sig, err := priv.Sign(msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != 64 {
		t.Fatalf("signature length = %d, want 64", len(sig))
	}
	if !priv.PublicKey().Verify(msg, sig) {
		t.Fatal("valid signature failed verification")
	}

	rec, err := priv.SignRecoverable(msg)
	if err != nil {
		t.Fatalf("SignRecoverable: %v", err)
	}
	if len(rec) != 65 {
		t.Fatalf("recoverable signature length = %d, want 65", len(rec))
	}
	if !bytes.Equal(rec[:64], sig) {
		t.Fatal("recoverable signature does not extend the r||s form")
	}
}

// TestPrivateKeyStringRoundTrip verifies String/FromString round-trips for
// both algorithms and preserves key material.
func TestPrivateKeyStringRoundTrip(t *testing.T) {
	ed, err := GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	ec, err := GenerateECDSA()
	if err != nil {
		t.Fatalf("GenerateECDSA: %v", err)
	}

	for _, priv := range []PrivateKey{ed, ec} {
		t.Run(priv.Algorithm().String(), func(t *testing.T) {
			back, err := PrivateKeyFromString(priv.String())
			if err != nil {
				t.Fatalf("PrivateKeyFromString: %v", err)
			}
			if back.Algorithm() != priv.Algorithm() {
				t.Fatalf("algorithm changed: %s -> %s", priv.Algorithm(), back.Algorithm())
			}
			if !bytes.Equal(back.BytesRaw(), priv.BytesRaw()) {
				t.Fatal("raw key material changed across round trip")
			}
		})
	}
}

// TestPrivateKeyFromString_RawHex verifies the second accepted encoding:
// bare raw hex without the DER wrapper.
func TestPrivateKeyFromString_RawHex(t *testing.T) {
	ed, err := GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}

	rawHex := "0x" + hex.EncodeToString(ed.BytesRaw())
	back, err := PrivateKeyFromString(rawHex)
	if err != nil {
		t.Fatalf("PrivateKeyFromString(raw hex): %v", err)
	}
	if !bytes.Equal(back.BytesRaw(), ed.BytesRaw()) {
		t.Fatal("raw key material changed")
	}
}

// TestPublicKeyStringRoundTrip verifies public key DER string round-trips.
func TestPublicKeyStringRoundTrip(t *testing.T) {
	ed, err := GenerateEd25519()
	if err != nil {
		t.Fatalf("GenerateEd25519: %v", err)
	}
	ec, err := GenerateECDSA()
	if err != nil {
		t.Fatalf("GenerateECDSA: %v", err)
	}

	for _, pub := range []PublicKey{ed.PublicKey(), ec.PublicKey()} {
		t.Run(pub.Algorithm().String(), func(t *testing.T) {
			back, err := PublicKeyFromString(pub.String())
			if err != nil {
				t.Fatalf("PublicKeyFromString: %v", err)
			}
			if !bytes.Equal(back.BytesRaw(), pub.BytesRaw()) {
				t.Fatal("raw key material changed across round trip")
			}
		})
	}
}

// TestPrivateKeyFromBytes_Invalid verifies unrecognized inputs are rejected.
func TestPrivateKeyFromBytes_Invalid(t *testing.T) {
	for _, in := range [][]byte{nil, {0x01}, make([]byte, 31), make([]byte, 70)} {
		if _, err := PrivateKeyFromBytes(in); err == nil {
			t.Fatalf("PrivateKeyFromBytes(%d bytes) succeeded, want error", len(in))
		}
	}
	if _, err := PrivateKeyFromString("not hex"); err == nil {
		t.Fatal("PrivateKeyFromString accepted non-hex input")
	}
}
