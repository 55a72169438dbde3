package transaction

import (
	"context"
	"errors"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
)

// ContractExecuteTransaction invokes a deployed contract function through
// consensus.
type ContractExecuteTransaction struct {
	Transaction
	contractID entity.ContractID
	gas        uint64
	payable    hbar.Hbar
	params     []byte
}

// NewContractExecuteTransaction builds an empty contract call.
func NewContractExecuteTransaction() *ContractExecuteTransaction {
	tx := &ContractExecuteTransaction{}
	tx.methodPath = hapi.MethodContractCall
	tx.buildData = func() (hapi.BodyData, error) {
		return &hapi.ContractCallBody{
			ContractID:         hapi.NewContractID(tx.contractID.Shard, tx.contractID.Realm, tx.contractID.Num),
			Gas:                tx.gas,
			Amount:             uint64(tx.payable.ToTinybars()),
			FunctionParameters: tx.params,
		}, nil
	}
	tx.validate = func() error {
		if tx.contractID == (entity.ContractID{}) {
			return errors.New("contract call requires a contract id")
		}
		if tx.gas == 0 {
			return errors.New("contract call requires a gas limit")
		}
		return nil
	}
	return tx
}

// SetContractID selects the contract to call.
func (tx *ContractExecuteTransaction) SetContractID(id entity.ContractID) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.contractID = id
	return nil
}

// SetGas sets the gas limit for the call.
func (tx *ContractExecuteTransaction) SetGas(gas uint64) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.gas = gas
	return nil
}

// SetPayableAmount sends hbar along with the call.
func (tx *ContractExecuteTransaction) SetPayableAmount(amount hbar.Hbar) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.payable = amount
	return nil
}

// SetFunctionParameters attaches pre-encoded call data (selector plus ABI
// arguments).
func (tx *ContractExecuteTransaction) SetFunctionParameters(params []byte) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.params = params
	return nil
}

// Execute submits the call and returns the node's acknowledgement.
func (tx *ContractExecuteTransaction) Execute(ctx context.Context, c *client.Client) (*Response, error) {
	return tx.execute(ctx, c)
}
