package query

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
)

const word = 32

// ContractFunctionResult is the decoded outcome of a contract execution:
// the raw ABI-encoded return data plus gas accounting. The Get accessors
// read the n-th 32-byte return word.
type ContractFunctionResult struct {
	ContractID   *entity.ContractID
	CallResult   []byte
	ErrorMessage string
	GasUsed      uint64
}

func contractFunctionResultFromWire(wire *hapi.ContractFunctionResult) *ContractFunctionResult {
	r := &ContractFunctionResult{
		CallResult:   wire.CallResult,
		ErrorMessage: wire.ErrorMessage,
		GasUsed:      wire.GasUsed,
	}
	if wire.ContractID != nil {
		id := entity.NewContractID(wire.ContractID.Shard, wire.ContractID.Realm, wire.ContractID.Num)
		r.ContractID = &id
	}
	return r
}

func (r *ContractFunctionResult) wordAt(index int) []byte {
	start := index * word
	if start < 0 || start+word > len(r.CallResult) {
		return make([]byte, word)
	}
	return r.CallResult[start : start+word]
}

// GetBool reads the n-th return word as a boolean.
func (r *ContractFunctionResult) GetBool(index int) bool {
	return r.wordAt(index)[word-1] != 0
}

// GetUint64 reads the low 8 bytes of the n-th return word.
func (r *ContractFunctionResult) GetUint64(index int) uint64 {
	return binary.BigEndian.Uint64(r.wordAt(index)[word-8:])
}

// GetInt64 reads the low 8 bytes of the n-th return word as a signed value.
func (r *ContractFunctionResult) GetInt64(index int) int64 {
	return int64(r.GetUint64(index))
}

// GetUint256 reads the n-th return word as a big integer.
func (r *ContractFunctionResult) GetUint256(index int) *big.Int {
	return new(big.Int).SetBytes(r.wordAt(index))
}

// GetAddress reads the n-th return word as an EVM address.
func (r *ContractFunctionResult) GetAddress(index int) common.Address {
	return common.BytesToAddress(r.wordAt(index)[word-common.AddressLength:])
}

// GetBytes32 returns a copy of the n-th return word.
func (r *ContractFunctionResult) GetBytes32(index int) []byte {
	out := make([]byte, word)
	copy(out, r.wordAt(index))
	return out
}

// GetString decodes the dynamic string whose offset sits in the n-th return
// word.
func (r *ContractFunctionResult) GetString(index int) string {
	return string(r.GetBytes(index))
}

// GetBytes decodes the dynamic byte array whose offset sits in the n-th
// return word.
func (r *ContractFunctionResult) GetBytes(index int) []byte {
	total := uint64(len(r.CallResult))
	// Compare without adding so adversarial offsets cannot wrap past the
	// bounds check.
	offset := r.GetUint64(index)
	if total < word || offset > total-word {
		return nil
	}
	length := binary.BigEndian.Uint64(r.CallResult[offset+word-8 : offset+word])
	start := offset + word
	if length > total-start {
		return nil
	}
	return r.CallResult[start : start+length]
}
