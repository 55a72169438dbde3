package query

import (
	"bytes"
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func wordUint(v uint64) []byte {
	out := make([]byte, 32)
	binary.BigEndian.PutUint64(out[24:], v)
	return out
}

// TestContractFunctionResult_StaticAccessors reads fixed-size return words.
func TestContractFunctionResult_StaticAccessors(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000000004d2")

	var result []byte
	result = append(result, wordUint(1)...) // bool true
	result = append(result, wordUint(42)...)
	addrWord := make([]byte, 32)
	copy(addrWord[12:], addr.Bytes())
	result = append(result, addrWord...)

	r := &ContractFunctionResult{CallResult: result}
	if !r.GetBool(0) {
		t.Error("GetBool(0) = false")
	}
	if r.GetUint64(1) != 42 {
		t.Errorf("GetUint64(1) = %d", r.GetUint64(1))
	}
	if r.GetUint256(1).Cmp(big.NewInt(42)) != 0 {
		t.Errorf("GetUint256(1) = %s", r.GetUint256(1))
	}
	if r.GetAddress(2) != addr {
		t.Errorf("GetAddress(2) = %s", r.GetAddress(2))
	}
	if got := r.GetBytes32(1); got[31] != 42 {
		t.Errorf("GetBytes32(1) tail = %d", got[31])
	}
}

// TestContractFunctionResult_Dynamic decodes an offset-addressed string.
func TestContractFunctionResult_Dynamic(t *testing.T) {
	var result []byte
	result = append(result, wordUint(32)...) // offset of the string data
	result = append(result, wordUint(5)...)  // length
	payload := make([]byte, 32)
	copy(payload, "hello")
	result = append(result, payload...)

	r := &ContractFunctionResult{CallResult: result}
	if got := r.GetString(0); got != "hello" {
		t.Errorf("GetString(0) = %q", got)
	}
	if !bytes.Equal(r.GetBytes(0), []byte("hello")) {
		t.Errorf("GetBytes(0) = %q", r.GetBytes(0))
	}
}

// TestContractFunctionResult_OutOfRange returns zero values instead of
// panicking on short results.
func TestContractFunctionResult_OutOfRange(t *testing.T) {
	r := &ContractFunctionResult{CallResult: nil}
	if r.GetBool(0) {
		t.Error("GetBool on empty result")
	}
	if r.GetUint64(3) != 0 {
		t.Error("GetUint64 on empty result")
	}
	if r.GetBytes(0) != nil {
		t.Error("GetBytes on empty result")
	}
}

// TestContractFunctionResult_HostileOffsets rejects offsets and lengths that
// would wrap the bounds arithmetic.
func TestContractFunctionResult_HostileOffsets(t *testing.T) {
	var result []byte
	result = append(result, bytes.Repeat([]byte{0xff}, 32)...) // offset near MaxUint64
	result = append(result, wordUint(32)...)

	r := &ContractFunctionResult{CallResult: result}
	if got := r.GetBytes(0); got != nil {
		t.Errorf("GetBytes with wrapping offset = %x", got)
	}

	// In-range offset, absurd length.
	var result2 []byte
	result2 = append(result2, wordUint(32)...)
	length := bytes.Repeat([]byte{0xff}, 32)
	result2 = append(result2, length...)

	r2 := &ContractFunctionResult{CallResult: result2}
	if got := r2.GetBytes(0); got != nil {
		t.Errorf("GetBytes with wrapping length = %x", got)
	}
}
