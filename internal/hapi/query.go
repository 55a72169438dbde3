package hapi

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ResponseType selects what a query should return.
const (
	// ResponseTypeAnswer requests the actual answer.
	ResponseTypeAnswer int32 = 0
	// ResponseTypeCostAnswer requests only the cost of answering.
	ResponseTypeCostAnswer int32 = 2
)

// Query/Response oneof field numbers. A response reuses the field number of
// the query that produced it.
const (
	queryFieldContractCallLocal = 6
	queryFieldCryptoGetBalance  = 9
	queryFieldGetReceipt        = 14
)

// QueryHeader carries the query payment and the requested response type.
// Payment holds the serialized payment Transaction envelope, empty for free
// queries and cost probes.
type QueryHeader struct {
	Payment      []byte
	ResponseType int32
}

func (h *QueryHeader) MarshalWire() ([]byte, error) {
	out := appendBytesField(nil, 1, h.Payment)
	out = appendVarintField(out, 2, uint64(h.ResponseType))
	return out, nil
}

func (h *QueryHeader) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			b, err := fieldBytes(value)
			if err != nil {
				return err
			}
			h.Payment = b
		case 2:
			v, err := fieldVarint(value)
			if err != nil {
				return err
			}
			h.ResponseType = int32(v)
		}
		return nil
	})
}

// QueryBody is one concrete query payload.
type QueryBody interface {
	Message
	queryField() protowire.Number
	// Header returns the query's header; every query body carries one.
	Header() *QueryHeader
}

// Query is the outermost query envelope holding exactly one payload.
type Query struct {
	Body QueryBody
}

func (q *Query) MarshalWire() ([]byte, error) {
	if q.Body == nil {
		return nil, fmt.Errorf("query has no payload")
	}
	return appendMessageField(nil, q.Body.queryField(), q.Body)
}

func (q *Query) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case queryFieldContractCallLocal:
			q.Body = &ContractCallLocalQuery{}
		case queryFieldCryptoGetBalance:
			q.Body = &CryptoGetBalanceQuery{}
		case queryFieldGetReceipt:
			q.Body = &TransactionGetReceiptQuery{}
		default:
			return nil
		}
		return unmarshalMessageField(value, q.Body)
	})
}

// ContractCallLocalQuery executes a read-only contract function call.
type ContractCallLocalQuery struct {
	QueryHeader        *QueryHeader
	ContractID         *ContractID
	Gas                uint64
	FunctionParameters []byte
}

func (*ContractCallLocalQuery) queryField() protowire.Number { return queryFieldContractCallLocal }

// Header returns the query header, allocating it on first use.
func (q *ContractCallLocalQuery) Header() *QueryHeader {
	if q.QueryHeader == nil {
		q.QueryHeader = &QueryHeader{}
	}
	return q.QueryHeader
}

func (q *ContractCallLocalQuery) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, q.QueryHeader)
	if err != nil {
		return nil, err
	}
	if out, err = appendMessageField(out, 2, q.ContractID); err != nil {
		return nil, err
	}
	out = appendVarintField(out, 3, q.Gas)
	out = appendBytesField(out, 4, q.FunctionParameters)
	return out, nil
}

func (q *ContractCallLocalQuery) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		var err error
		switch num {
		case 1:
			q.QueryHeader = &QueryHeader{}
			return unmarshalMessageField(value, q.QueryHeader)
		case 2:
			q.ContractID = &ContractID{}
			return unmarshalMessageField(value, q.ContractID)
		case 3:
			q.Gas, err = fieldVarint(value)
		case 4:
			q.FunctionParameters, err = fieldBytes(value)
		}
		return err
	})
}

// CryptoGetBalanceQuery reads an account balance. Balance queries are free.
type CryptoGetBalanceQuery struct {
	QueryHeader *QueryHeader
	AccountID   *AccountID
}

func (*CryptoGetBalanceQuery) queryField() protowire.Number { return queryFieldCryptoGetBalance }

// Header returns the query header, allocating it on first use.
func (q *CryptoGetBalanceQuery) Header() *QueryHeader {
	if q.QueryHeader == nil {
		q.QueryHeader = &QueryHeader{}
	}
	return q.QueryHeader
}

func (q *CryptoGetBalanceQuery) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, q.QueryHeader)
	if err != nil {
		return nil, err
	}
	return appendMessageField(out, 2, q.AccountID)
}

func (q *CryptoGetBalanceQuery) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			q.QueryHeader = &QueryHeader{}
			return unmarshalMessageField(value, q.QueryHeader)
		case 2:
			q.AccountID = &AccountID{}
			return unmarshalMessageField(value, q.AccountID)
		}
		return nil
	})
}

// TransactionGetReceiptQuery looks up the receipt for a transaction id.
type TransactionGetReceiptQuery struct {
	QueryHeader   *QueryHeader
	TransactionID *TransactionID
}

func (*TransactionGetReceiptQuery) queryField() protowire.Number { return queryFieldGetReceipt }

// Header returns the query header, allocating it on first use.
func (q *TransactionGetReceiptQuery) Header() *QueryHeader {
	if q.QueryHeader == nil {
		q.QueryHeader = &QueryHeader{}
	}
	return q.QueryHeader
}

func (q *TransactionGetReceiptQuery) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, q.QueryHeader)
	if err != nil {
		return nil, err
	}
	return appendMessageField(out, 2, q.TransactionID)
}

func (q *TransactionGetReceiptQuery) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			q.QueryHeader = &QueryHeader{}
			return unmarshalMessageField(value, q.QueryHeader)
		case 2:
			q.TransactionID = &TransactionID{}
			return unmarshalMessageField(value, q.TransactionID)
		}
		return nil
	})
}

// ResponseHeader opens every query response with the precheck code, the
// response type echoed back, and the cost when a cost probe was requested.
type ResponseHeader struct {
	PrecheckCode int32
	ResponseType int32
	Cost         uint64
}

func (h *ResponseHeader) MarshalWire() ([]byte, error) {
	out := appendVarintField(nil, 1, uint64(h.PrecheckCode))
	out = appendVarintField(out, 2, uint64(h.ResponseType))
	out = appendVarintField(out, 3, h.Cost)
	return out, nil
}

func (h *ResponseHeader) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		v, err := fieldVarint(value)
		if err != nil {
			return err
		}
		switch num {
		case 1:
			h.PrecheckCode = int32(v)
		case 2:
			h.ResponseType = int32(v)
		case 3:
			h.Cost = v
		}
		return nil
	})
}

// ResponseBody is one concrete response payload.
type ResponseBody interface {
	Message
	responseField() protowire.Number
	// Header returns the response header common to all payloads.
	Header() *ResponseHeader
}

// Response is the outermost query response envelope.
type Response struct {
	Body ResponseBody
}

func (r *Response) MarshalWire() ([]byte, error) {
	if r.Body == nil {
		return nil, fmt.Errorf("response has no payload")
	}
	return appendMessageField(nil, r.Body.responseField(), r.Body)
}

func (r *Response) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case queryFieldContractCallLocal:
			r.Body = &ContractCallLocalResponse{}
		case queryFieldCryptoGetBalance:
			r.Body = &CryptoGetBalanceResponse{}
		case queryFieldGetReceipt:
			r.Body = &TransactionGetReceiptResponse{}
		default:
			return nil
		}
		return unmarshalMessageField(value, r.Body)
	})
}

// ContractCallLocalResponse returns the function result of a local call.
type ContractCallLocalResponse struct {
	ResponseHeader *ResponseHeader
	FunctionResult *ContractFunctionResult
}

func (*ContractCallLocalResponse) responseField() protowire.Number {
	return queryFieldContractCallLocal
}

// Header returns the response header, allocating it on first use.
func (r *ContractCallLocalResponse) Header() *ResponseHeader {
	if r.ResponseHeader == nil {
		r.ResponseHeader = &ResponseHeader{}
	}
	return r.ResponseHeader
}

func (r *ContractCallLocalResponse) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, r.ResponseHeader)
	if err != nil {
		return nil, err
	}
	return appendMessageField(out, 2, r.FunctionResult)
}

func (r *ContractCallLocalResponse) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			r.ResponseHeader = &ResponseHeader{}
			return unmarshalMessageField(value, r.ResponseHeader)
		case 2:
			r.FunctionResult = &ContractFunctionResult{}
			return unmarshalMessageField(value, r.FunctionResult)
		}
		return nil
	})
}

// CryptoGetBalanceResponse returns an account's tinybar balance.
type CryptoGetBalanceResponse struct {
	ResponseHeader *ResponseHeader
	AccountID      *AccountID
	Balance        uint64
}

func (*CryptoGetBalanceResponse) responseField() protowire.Number { return queryFieldCryptoGetBalance }

// Header returns the response header, allocating it on first use.
func (r *CryptoGetBalanceResponse) Header() *ResponseHeader {
	if r.ResponseHeader == nil {
		r.ResponseHeader = &ResponseHeader{}
	}
	return r.ResponseHeader
}

func (r *CryptoGetBalanceResponse) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, r.ResponseHeader)
	if err != nil {
		return nil, err
	}
	if out, err = appendMessageField(out, 2, r.AccountID); err != nil {
		return nil, err
	}
	return appendVarintField(out, 3, r.Balance), nil
}

func (r *CryptoGetBalanceResponse) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			r.ResponseHeader = &ResponseHeader{}
			return unmarshalMessageField(value, r.ResponseHeader)
		case 2:
			r.AccountID = &AccountID{}
			return unmarshalMessageField(value, r.AccountID)
		case 3:
			v, err := fieldVarint(value)
			if err != nil {
				return err
			}
			r.Balance = v
		}
		return nil
	})
}

// TransactionGetReceiptResponse returns the stored receipt, when present.
type TransactionGetReceiptResponse struct {
	ResponseHeader *ResponseHeader
	Receipt        *TransactionReceipt
}

func (*TransactionGetReceiptResponse) responseField() protowire.Number { return queryFieldGetReceipt }

// Header returns the response header, allocating it on first use.
func (r *TransactionGetReceiptResponse) Header() *ResponseHeader {
	if r.ResponseHeader == nil {
		r.ResponseHeader = &ResponseHeader{}
	}
	return r.ResponseHeader
}

func (r *TransactionGetReceiptResponse) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, r.ResponseHeader)
	if err != nil {
		return nil, err
	}
	return appendMessageField(out, 2, r.Receipt)
}

func (r *TransactionGetReceiptResponse) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			r.ResponseHeader = &ResponseHeader{}
			return unmarshalMessageField(value, r.ResponseHeader)
		case 2:
			r.Receipt = &TransactionReceipt{}
			return unmarshalMessageField(value, r.Receipt)
		}
		return nil
	})
}

// TransactionReceipt is the terminal outcome record of a transaction,
// carrying the status and any created entity id.
type TransactionReceipt struct {
	Status     int32
	AccountID  *AccountID
	FileID     *FileID
	ContractID *ContractID
	TopicID    *TopicID
}

func (t *TransactionReceipt) MarshalWire() ([]byte, error) {
	out := appendVarintField(nil, 1, uint64(t.Status))
	var err error
	if out, err = appendMessageField(out, 2, t.AccountID); err != nil {
		return nil, err
	}
	if out, err = appendMessageField(out, 3, t.FileID); err != nil {
		return nil, err
	}
	if out, err = appendMessageField(out, 4, t.ContractID); err != nil {
		return nil, err
	}
	return appendMessageField(out, 5, t.TopicID)
}

func (t *TransactionReceipt) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			v, err := fieldVarint(value)
			if err != nil {
				return err
			}
			t.Status = int32(v)
		case 2:
			t.AccountID = &AccountID{}
			return unmarshalMessageField(value, t.AccountID)
		case 3:
			t.FileID = &FileID{}
			return unmarshalMessageField(value, t.FileID)
		case 4:
			t.ContractID = &ContractID{}
			return unmarshalMessageField(value, t.ContractID)
		case 5:
			t.TopicID = &TopicID{}
			return unmarshalMessageField(value, t.TopicID)
		}
		return nil
	})
}

// ContractFunctionResult carries the return data of a contract execution.
type ContractFunctionResult struct {
	ContractID   *ContractID
	CallResult   []byte
	ErrorMessage string
	GasUsed      uint64
}

func (c *ContractFunctionResult) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, c.ContractID)
	if err != nil {
		return nil, err
	}
	out = appendBytesField(out, 2, c.CallResult)
	out = appendStringField(out, 3, c.ErrorMessage)
	out = appendVarintField(out, 5, c.GasUsed)
	return out, nil
}

func (c *ContractFunctionResult) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		var err error
		switch num {
		case 1:
			c.ContractID = &ContractID{}
			return unmarshalMessageField(value, c.ContractID)
		case 2:
			c.CallResult, err = fieldBytes(value)
		case 3:
			var s []byte
			if s, err = fieldBytes(value); err == nil {
				c.ErrorMessage = string(s)
			}
		case 5:
			c.GasUsed, err = fieldVarint(value)
		}
		return err
	})
}
