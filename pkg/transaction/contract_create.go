package transaction

import (
	"context"
	"errors"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
	"github.com/shamank/hiero-sdk-go/pkg/keys"
)

// ContractCreateTransaction deploys a contract from a previously stored
// bytecode file.
type ContractCreateTransaction struct {
	Transaction
	bytecodeFile      entity.FileID
	adminKey          keys.PublicKey
	gas               uint64
	initialBalance    hbar.Hbar
	constructorParams []byte
	contractMemo      string
}

// NewContractCreateTransaction builds an empty contract deployment.
func NewContractCreateTransaction() *ContractCreateTransaction {
	tx := &ContractCreateTransaction{}
	tx.methodPath = hapi.MethodCreateContract
	tx.buildData = func() (hapi.BodyData, error) {
		body := &hapi.ContractCreateBody{
			FileID:                hapi.NewFileID(tx.bytecodeFile.Shard, tx.bytecodeFile.Realm, tx.bytecodeFile.Num),
			Gas:                   tx.gas,
			InitialBalance:        uint64(tx.initialBalance.ToTinybars()),
			ConstructorParameters: tx.constructorParams,
			Memo:                  tx.contractMemo,
		}
		if tx.adminKey != nil {
			body.AdminKey = hapi.EncodeKey(tx.adminKey)
		}
		return body, nil
	}
	tx.validate = func() error {
		if tx.bytecodeFile == (entity.FileID{}) {
			return errors.New("contract create requires a bytecode file id")
		}
		if tx.gas == 0 {
			return errors.New("contract create requires a gas limit")
		}
		return nil
	}
	return tx
}

// SetBytecodeFileID selects the file holding the contract bytecode.
func (tx *ContractCreateTransaction) SetBytecodeFileID(id entity.FileID) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.bytecodeFile = id
	return nil
}

// SetAdminKey sets the key allowed to modify or delete the contract.
func (tx *ContractCreateTransaction) SetAdminKey(key keys.PublicKey) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.adminKey = key
	return nil
}

// SetGas sets the gas limit for running the constructor.
func (tx *ContractCreateTransaction) SetGas(gas uint64) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.gas = gas
	return nil
}

// SetInitialBalance funds the new contract's account.
func (tx *ContractCreateTransaction) SetInitialBalance(amount hbar.Hbar) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.initialBalance = amount
	return nil
}

// SetConstructorParameters attaches ABI-encoded constructor arguments.
func (tx *ContractCreateTransaction) SetConstructorParameters(params []byte) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.constructorParams = params
	return nil
}

// SetContractMemo attaches a memo stored with the contract.
func (tx *ContractCreateTransaction) SetContractMemo(memo string) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.contractMemo = memo
	return nil
}

// Execute submits the deployment and returns the node's acknowledgement.
func (tx *ContractCreateTransaction) Execute(ctx context.Context, c *client.Client) (*Response, error) {
	return tx.execute(ctx, c)
}
