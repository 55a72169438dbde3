package transaction

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// ContractFunctionParameters accumulates typed arguments for a contract
// call and encodes them as EVM call data: a 4-byte function selector
// followed by the ABI-packed arguments. The Add methods chain; type errors
// surface at Encode.
type ContractFunctionParameters struct {
	types  []string
	values []interface{}
}

// NewContractFunctionParameters builds an empty argument list.
func NewContractFunctionParameters() *ContractFunctionParameters {
	return &ContractFunctionParameters{}
}

func (p *ContractFunctionParameters) add(typ string, value interface{}) *ContractFunctionParameters {
	p.types = append(p.types, typ)
	p.values = append(p.values, value)
	return p
}

// AddBool appends a bool argument.
func (p *ContractFunctionParameters) AddBool(v bool) *ContractFunctionParameters {
	return p.add("bool", v)
}

// AddString appends a string argument.
func (p *ContractFunctionParameters) AddString(v string) *ContractFunctionParameters {
	return p.add("string", v)
}

// AddBytes appends a dynamic bytes argument.
func (p *ContractFunctionParameters) AddBytes(v []byte) *ContractFunctionParameters {
	return p.add("bytes", v)
}

// AddBytes32 appends a fixed 32-byte argument.
func (p *ContractFunctionParameters) AddBytes32(v [32]byte) *ContractFunctionParameters {
	return p.add("bytes32", v)
}

// AddAddress appends an EVM address argument.
func (p *ContractFunctionParameters) AddAddress(v common.Address) *ContractFunctionParameters {
	return p.add("address", v)
}

// AddInt64 appends an int64 argument.
func (p *ContractFunctionParameters) AddInt64(v int64) *ContractFunctionParameters {
	return p.add("int64", v)
}

// AddUint64 appends a uint64 argument.
func (p *ContractFunctionParameters) AddUint64(v uint64) *ContractFunctionParameters {
	return p.add("uint64", v)
}

// AddUint256 appends a uint256 argument.
func (p *ContractFunctionParameters) AddUint256(v *big.Int) *ContractFunctionParameters {
	return p.add("uint256", v)
}

// Encode packs the arguments, prefixed with the selector for the named
// function. An empty name yields bare packed arguments, as used for
// constructors.
func (p *ContractFunctionParameters) Encode(functionName string) ([]byte, error) {
	arguments := make(abi.Arguments, len(p.types))
	for i, typ := range p.types {
		// Pack panics on nil values rather than returning an error.
		if v, ok := p.values[i].(*big.Int); ok && v == nil {
			return nil, fmt.Errorf("argument %d: nil %s value", i, typ)
		}
		t, err := abi.NewType(typ, "", nil)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		arguments[i] = abi.Argument{Type: t}
	}

	packed, err := arguments.Pack(p.values...)
	if err != nil {
		return nil, fmt.Errorf("pack arguments: %w", err)
	}
	if functionName == "" {
		return packed, nil
	}

	signature := functionName + "(" + strings.Join(p.types, ",") + ")"
	selector := ethcrypto.Keccak256([]byte(signature))[:4]
	return append(selector, packed...), nil
}
