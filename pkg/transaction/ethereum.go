package transaction

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
	"github.com/shamank/hiero-sdk-go/pkg/keys"
)

// EthereumTransaction submits an externally-encoded, externally-signed
// EVM-style transaction to the network. The ethereum data is opaque RLP; the
// operator can optionally sponsor gas up to the allowance.
type EthereumTransaction struct {
	Transaction
	ethereumData    []byte
	maxGasAllowance hbar.Hbar
}

// NewEthereumTransaction builds an empty wrapped EVM transaction.
func NewEthereumTransaction() *EthereumTransaction {
	tx := &EthereumTransaction{}
	tx.methodPath = hapi.MethodCallEthereum
	tx.buildData = func() (hapi.BodyData, error) {
		return &hapi.EthereumTransactionBody{
			EthereumData:    tx.ethereumData,
			MaxGasAllowance: tx.maxGasAllowance.ToTinybars(),
		}, nil
	}
	tx.validate = func() error {
		if len(tx.ethereumData) == 0 {
			return errors.New("ethereum transaction has no data")
		}
		return nil
	}
	return tx
}

// SetEthereumData attaches the RLP-encoded, signed EVM transaction bytes.
func (tx *EthereumTransaction) SetEthereumData(data []byte) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.ethereumData = data
	return nil
}

// SetMaxGasAllowance lets the operator sponsor gas up to the given amount
// when the inner transaction's own gas payment falls short.
func (tx *EthereumTransaction) SetMaxGasAllowance(amount hbar.Hbar) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.maxGasAllowance = amount
	return nil
}

// Execute submits the wrapped transaction and returns the node's
// acknowledgement.
func (tx *EthereumTransaction) Execute(ctx context.Context, c *client.Client) (*Response, error) {
	return tx.execute(ctx, c)
}

// legacyTx is the RLP layout of a pre-EIP-1559 EVM transaction.
type legacyTx struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       common.Address
	Value    *big.Int
	Data     []byte
	V        *big.Int
	R        *big.Int
	S        *big.Int
}

// SignedLegacyEthereumData builds and signs a legacy EVM transaction with
// EIP-155 replay protection, returning the RLP bytes ready for
// SetEthereumData.
func SignedLegacyEthereumData(key *keys.ECDSAPrivateKey, chainID *big.Int, nonce uint64, to common.Address, value, gasPrice *big.Int, gasLimit uint64, data []byte) ([]byte, error) {
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, errors.New("a positive chain id is required")
	}
	if value == nil {
		value = new(big.Int)
	}
	if gasPrice == nil {
		gasPrice = new(big.Int)
	}

	unsigned := legacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       to,
		Value:    value,
		Data:     data,
		V:        chainID,
		R:        new(big.Int),
		S:        new(big.Int),
	}
	encoded, err := rlp.EncodeToBytes(&unsigned)
	if err != nil {
		return nil, fmt.Errorf("encode unsigned transaction: %w", err)
	}

	sig, err := ethcrypto.Sign(ethcrypto.Keccak256(encoded), key.ToECDSA())
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	signed := unsigned
	signed.R = new(big.Int).SetBytes(sig[:32])
	signed.S = new(big.Int).SetBytes(sig[32:64])
	// EIP-155: v folds the recovery id together with the chain id.
	signed.V = new(big.Int).Add(
		new(big.Int).Mul(chainID, big.NewInt(2)),
		big.NewInt(int64(sig[64])+35),
	)

	out, err := rlp.EncodeToBytes(&signed)
	if err != nil {
		return nil, fmt.Errorf("encode signed transaction: %w", err)
	}
	return out, nil
}
