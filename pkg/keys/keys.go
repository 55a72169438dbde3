// Package keys provides the SDK's key abstraction: a pair of interfaces over
// the two signature schemes the network accepts, Ed25519 and ECDSA
// secp256k1. Private keys sign transaction body bytes for the network
// envelope; the ECDSA variant additionally produces raw (r,s,v) recoverable
// signatures for the EVM-style transaction path. Key material is owned by
// the concrete types and never mutated after construction.
//
// Keys round-trip through two string encodings: bare hex of the raw key
// material, and hex of the DER encoding (recognized by its algorithm
// prefix).
package keys

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Algorithm identifies the signature scheme of a key.
type Algorithm int

const (
	// AlgorithmEd25519 is the EdDSA scheme over Curve25519.
	AlgorithmEd25519 Algorithm = iota
	// AlgorithmECDSA is ECDSA over secp256k1.
	AlgorithmECDSA
)

// String returns the conventional name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmEd25519:
		return "ed25519"
	case AlgorithmECDSA:
		return "ecdsa-secp256k1"
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// PrivateKey is a signing key of either supported scheme.
type PrivateKey interface {
	// Algorithm reports the signature scheme.
	Algorithm() Algorithm
	// Sign produces the network-native signature over message: a 64-byte
	// Ed25519 signature, or a 64-byte (r||s) ECDSA signature over
	// keccak256(message).
	Sign(message []byte) ([]byte, error)
	// PublicKey derives the corresponding verification key.
	PublicKey() PublicKey
	// BytesRaw returns the raw key material (32-byte seed or scalar).
	BytesRaw() []byte
	// BytesDER returns the DER encoding of the key.
	BytesDER() []byte
	// String returns the hex-encoded DER form. PrivateKeyFromString accepts
	// this output.
	String() string
}

// PublicKey is a verification key of either supported scheme.
type PublicKey interface {
	// Algorithm reports the signature scheme.
	Algorithm() Algorithm
	// Verify reports whether signature is a valid network-native signature
	// over message.
	Verify(message, signature []byte) bool
	// BytesRaw returns the raw key material (32 bytes for Ed25519, 33-byte
	// compressed point for ECDSA).
	BytesRaw() []byte
	// BytesDER returns the DER encoding of the key.
	BytesDER() []byte
	// String returns the hex-encoded DER form.
	String() string
}

// DER prefixes for the supported algorithms. Concatenating a prefix with the
// raw key material yields the full DER encoding used by the network tooling.
var (
	derPrefixEd25519Private = mustHex("302e020100300506032b657004220420")
	derPrefixEd25519Public  = mustHex("302a300506032b6570032100")
	derPrefixECDSAPrivate   = mustHex("3030020100300706052b8104000a04220420")
	derPrefixECDSAPublic    = mustHex("302d300706052b8104000a032200")
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// PrivateKeyFromString parses a private key from hex. Both raw-hex and
// DER-hex encodings are accepted; DER input selects the algorithm by its
// prefix, bare 32-byte raw input is interpreted as Ed25519. Use
// ECDSAPrivateKeyFromBytes for raw ECDSA scalars.
func PrivateKeyFromString(s string) (PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key string %q: %w", s, err)
	}
	return PrivateKeyFromBytes(raw)
}

// PrivateKeyFromBytes parses a private key from raw or DER bytes.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	switch {
	case hasPrefix(b, derPrefixEd25519Private):
		return Ed25519PrivateKeyFromBytes(b[len(derPrefixEd25519Private):])
	case hasPrefix(b, derPrefixECDSAPrivate):
		return ECDSAPrivateKeyFromBytes(b[len(derPrefixECDSAPrivate):])
	case len(b) == 32 || len(b) == 64:
		// Bare seed (or seed||pub) without a DER wrapper is Ed25519.
		return Ed25519PrivateKeyFromBytes(b[:32])
	}
	return nil, fmt.Errorf("invalid private key: unrecognized length %d", len(b))
}

// PublicKeyFromString parses a public key from hex, accepting raw and DER
// encodings. Bare 32-byte input is Ed25519; bare 33-byte compressed input is
// ECDSA.
func PublicKeyFromString(s string) (PublicKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid public key string %q: %w", s, err)
	}
	return PublicKeyFromBytes(raw)
}

// PublicKeyFromBytes parses a public key from raw or DER bytes.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	switch {
	case hasPrefix(b, derPrefixEd25519Public):
		return Ed25519PublicKeyFromBytes(b[len(derPrefixEd25519Public):])
	case hasPrefix(b, derPrefixECDSAPublic):
		return ECDSAPublicKeyFromBytes(b[len(derPrefixECDSAPublic):])
	case len(b) == 32:
		return Ed25519PublicKeyFromBytes(b)
	case len(b) == 33:
		return ECDSAPublicKeyFromBytes(b)
	}
	return nil, fmt.Errorf("invalid public key: unrecognized length %d", len(b))
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}
