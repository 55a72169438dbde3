package keys

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ECDSAPrivateKey wraps an ECDSA secp256k1 signing key. Its network-native
// signature is the 64-byte r||s form over keccak256 of the message; the
// recoverable 65-byte r||s||v form required by EVM-style transaction
// envelopes is available via SignRecoverable.
type ECDSAPrivateKey struct {
	key *ecdsa.PrivateKey
}

// ECDSAPublicKey wraps an ECDSA secp256k1 verification key.
type ECDSAPublicKey struct {
	key *ecdsa.PublicKey
}

// GenerateECDSA creates a new random secp256k1 private key.
func GenerateECDSA() (*ECDSAPrivateKey, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate ecdsa key: %w", err)
	}
	return &ECDSAPrivateKey{key: key}, nil
}

// ECDSAPrivateKeyFromBytes builds a private key from its 32-byte scalar.
func ECDSAPrivateKeyFromBytes(scalar []byte) (*ECDSAPrivateKey, error) {
	key, err := ethcrypto.ToECDSA(scalar)
	if err != nil {
		return nil, fmt.Errorf("invalid ecdsa private key: %w", err)
	}
	return &ECDSAPrivateKey{key: key}, nil
}

// ECDSAPrivateKeyFromString parses a hex-encoded 32-byte scalar.
func ECDSAPrivateKeyFromString(s string) (*ECDSAPrivateKey, error) {
	key, err := ethcrypto.HexToECDSA(s)
	if err != nil {
		return nil, fmt.Errorf("invalid ecdsa private key string: %w", err)
	}
	return &ECDSAPrivateKey{key: key}, nil
}

// Algorithm reports AlgorithmECDSA.
func (k *ECDSAPrivateKey) Algorithm() Algorithm { return AlgorithmECDSA }

// Sign produces the 64-byte r||s signature over keccak256(message), the form
// carried in the network's signature map.
func (k *ECDSAPrivateKey) Sign(message []byte) ([]byte, error) {
	sig, err := k.SignRecoverable(message)
	if err != nil {
		return nil, err
	}
	return sig[:64], nil
}

// SignRecoverable produces the 65-byte r||s||v signature over
// keccak256(message), as required when assembling an externally-defined
// EVM-compatible transaction envelope.
func (k *ECDSAPrivateKey) SignRecoverable(message []byte) ([]byte, error) {
	hash := ethcrypto.Keccak256(message)
	sig, err := ethcrypto.Sign(hash, k.key)
	if err != nil {
		return nil, fmt.Errorf("ecdsa sign: %w", err)
	}
	return sig, nil
}

// PublicKey derives the verification key.
func (k *ECDSAPrivateKey) PublicKey() PublicKey {
	return &ECDSAPublicKey{key: &k.key.PublicKey}
}

// ToECDSA exposes the underlying *ecdsa.PrivateKey for interoperation with
// packages that sign EVM transactions directly.
func (k *ECDSAPrivateKey) ToECDSA() *ecdsa.PrivateKey {
	return k.key
}

// BytesRaw returns the 32-byte scalar.
func (k *ECDSAPrivateKey) BytesRaw() []byte {
	return ethcrypto.FromECDSA(k.key)
}

// BytesDER returns the DER encoding of the scalar.
func (k *ECDSAPrivateKey) BytesDER() []byte {
	return append(append([]byte{}, derPrefixECDSAPrivate...), k.BytesRaw()...)
}

// String returns the hex-encoded DER form.
func (k *ECDSAPrivateKey) String() string {
	return hex.EncodeToString(k.BytesDER())
}

// ECDSAPublicKeyFromBytes builds a public key from a 33-byte compressed
// point.
func ECDSAPublicKeyFromBytes(b []byte) (*ECDSAPublicKey, error) {
	key, err := ethcrypto.DecompressPubkey(b)
	if err != nil {
		return nil, fmt.Errorf("invalid ecdsa public key: %w", err)
	}
	return &ECDSAPublicKey{key: key}, nil
}

// Algorithm reports AlgorithmECDSA.
func (k *ECDSAPublicKey) Algorithm() Algorithm { return AlgorithmECDSA }

// Verify reports whether signature (64-byte r||s) is valid over
// keccak256(message).
func (k *ECDSAPublicKey) Verify(message, signature []byte) bool {
	if len(signature) < 64 {
		return false
	}
	hash := ethcrypto.Keccak256(message)
	return ethcrypto.VerifySignature(ethcrypto.CompressPubkey(k.key), hash, signature[:64])
}

// BytesRaw returns the 33-byte compressed point.
func (k *ECDSAPublicKey) BytesRaw() []byte {
	return ethcrypto.CompressPubkey(k.key)
}

// BytesDER returns the DER encoding of the compressed point.
func (k *ECDSAPublicKey) BytesDER() []byte {
	return append(append([]byte{}, derPrefixECDSAPublic...), k.BytesRaw()...)
}

// String returns the hex-encoded DER form.
func (k *ECDSAPublicKey) String() string {
	return hex.EncodeToString(k.BytesDER())
}
