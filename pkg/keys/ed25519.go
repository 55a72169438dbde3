package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Ed25519PrivateKey wraps an Ed25519 signing key.
type Ed25519PrivateKey struct {
	key ed25519.PrivateKey
}

// Ed25519PublicKey wraps an Ed25519 verification key.
type Ed25519PublicKey struct {
	key ed25519.PublicKey
}

// GenerateEd25519 creates a new random Ed25519 private key.
func GenerateEd25519() (*Ed25519PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key: %w", err)
	}
	return &Ed25519PrivateKey{key: priv}, nil
}

// Ed25519PrivateKeyFromBytes builds a private key from a 32-byte seed.
func Ed25519PrivateKeyFromBytes(seed []byte) (*Ed25519PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid ed25519 seed length %d, want %d", len(seed), ed25519.SeedSize)
	}
	return &Ed25519PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Algorithm reports AlgorithmEd25519.
func (k *Ed25519PrivateKey) Algorithm() Algorithm { return AlgorithmEd25519 }

// Sign produces the 64-byte Ed25519 signature over message.
func (k *Ed25519PrivateKey) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(k.key, message), nil
}

// PublicKey derives the verification key.
func (k *Ed25519PrivateKey) PublicKey() PublicKey {
	pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(pub, k.key.Public().(ed25519.PublicKey))
	return &Ed25519PublicKey{key: pub}
}

// BytesRaw returns the 32-byte seed.
func (k *Ed25519PrivateKey) BytesRaw() []byte {
	seed := make([]byte, ed25519.SeedSize)
	copy(seed, k.key.Seed())
	return seed
}

// BytesDER returns the DER encoding of the seed.
func (k *Ed25519PrivateKey) BytesDER() []byte {
	return append(append([]byte{}, derPrefixEd25519Private...), k.key.Seed()...)
}

// String returns the hex-encoded DER form.
func (k *Ed25519PrivateKey) String() string {
	return hex.EncodeToString(k.BytesDER())
}

// Ed25519PublicKeyFromBytes builds a public key from its 32 raw bytes.
func Ed25519PublicKeyFromBytes(b []byte) (*Ed25519PublicKey, error) {
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid ed25519 public key length %d, want %d", len(b), ed25519.PublicKeySize)
	}
	pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(pub, b)
	return &Ed25519PublicKey{key: pub}, nil
}

// Algorithm reports AlgorithmEd25519.
func (k *Ed25519PublicKey) Algorithm() Algorithm { return AlgorithmEd25519 }

// Verify reports whether signature is a valid Ed25519 signature over message.
func (k *Ed25519PublicKey) Verify(message, signature []byte) bool {
	return ed25519.Verify(k.key, message, signature)
}

// BytesRaw returns the 32 raw key bytes.
func (k *Ed25519PublicKey) BytesRaw() []byte {
	b := make([]byte, len(k.key))
	copy(b, k.key)
	return b
}

// BytesDER returns the DER encoding of the key.
func (k *Ed25519PublicKey) BytesDER() []byte {
	return append(append([]byte{}, derPrefixEd25519Public...), k.key...)
}

// String returns the hex-encoded DER form.
func (k *Ed25519PublicKey) String() string {
	return hex.EncodeToString(k.BytesDER())
}
