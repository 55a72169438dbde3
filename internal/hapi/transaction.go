package hapi

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Body field numbers of the operation payloads inside TransactionBody.
const (
	bodyFieldContractCall   = 7
	bodyFieldContractCreate = 8
	bodyFieldCryptoTransfer = 14
	bodyFieldFileCreate     = 17
	bodyFieldEthereumTx     = 50
)

// BodyData is one concrete operation payload of a TransactionBody.
type BodyData interface {
	Message
	// bodyField returns the oneof field number this payload occupies.
	bodyField() protowire.Number
}

// TransactionBody is the signed portion of a transaction: identity, target
// node, fee and validity window plus exactly one operation payload.
type TransactionBody struct {
	TransactionID  *TransactionID
	NodeAccountID  *AccountID
	TransactionFee uint64
	ValidDuration  *Duration
	Memo           string
	Data           BodyData
}

func (b *TransactionBody) MarshalWire() ([]byte, error) {
	if b.Data == nil {
		return nil, fmt.Errorf("transaction body has no operation payload")
	}
	var out []byte
	var err error
	if out, err = appendMessageField(out, 1, b.TransactionID); err != nil {
		return nil, err
	}
	if out, err = appendMessageField(out, 2, b.NodeAccountID); err != nil {
		return nil, err
	}
	out = appendVarintField(out, 3, b.TransactionFee)
	if out, err = appendMessageField(out, 4, b.ValidDuration); err != nil {
		return nil, err
	}
	out = appendStringField(out, 6, b.Memo)
	return appendMessageField(out, b.Data.bodyField(), b.Data)
}

func (b *TransactionBody) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			b.TransactionID = &TransactionID{}
			return unmarshalMessageField(value, b.TransactionID)
		case 2:
			b.NodeAccountID = &AccountID{}
			return unmarshalMessageField(value, b.NodeAccountID)
		case 3:
			v, err := fieldVarint(value)
			if err != nil {
				return err
			}
			b.TransactionFee = v
		case 4:
			b.ValidDuration = &Duration{}
			return unmarshalMessageField(value, b.ValidDuration)
		case 6:
			s, err := fieldBytes(value)
			if err != nil {
				return err
			}
			b.Memo = string(s)
		case bodyFieldContractCall:
			b.Data = &ContractCallBody{}
			return unmarshalMessageField(value, b.Data)
		case bodyFieldContractCreate:
			b.Data = &ContractCreateBody{}
			return unmarshalMessageField(value, b.Data)
		case bodyFieldCryptoTransfer:
			b.Data = &CryptoTransferBody{}
			return unmarshalMessageField(value, b.Data)
		case bodyFieldFileCreate:
			b.Data = &FileCreateBody{}
			return unmarshalMessageField(value, b.Data)
		case bodyFieldEthereumTx:
			b.Data = &EthereumTransactionBody{}
			return unmarshalMessageField(value, b.Data)
		}
		return nil
	})
}

// AccountAmount is one leg of a transfer list: a signed tinybar delta against
// one account.
type AccountAmount struct {
	AccountID *AccountID
	Amount    int64
}

func (a *AccountAmount) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, a.AccountID)
	if err != nil {
		return nil, err
	}
	if a.Amount != 0 {
		out = protowire.AppendTag(out, 2, protowire.VarintType)
		out = protowire.AppendVarint(out, protowire.EncodeZigZag(a.Amount))
	}
	return out, nil
}

func (a *AccountAmount) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			a.AccountID = &AccountID{}
			return unmarshalMessageField(value, a.AccountID)
		case 2:
			v, err := fieldVarint(value)
			if err != nil {
				return err
			}
			a.Amount = protowire.DecodeZigZag(v)
		}
		return nil
	})
}

// CryptoTransferBody moves tinybars between accounts. Legs must sum to zero;
// the SDK validates that before freezing.
type CryptoTransferBody struct {
	Transfers []*AccountAmount
}

func (*CryptoTransferBody) bodyField() protowire.Number { return bodyFieldCryptoTransfer }

func (c *CryptoTransferBody) MarshalWire() ([]byte, error) {
	var out []byte
	var err error
	for _, t := range c.Transfers {
		if out, err = appendMessageField(out, 1, t); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *CryptoTransferBody) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		if num == 1 {
			aa := &AccountAmount{}
			if err := unmarshalMessageField(value, aa); err != nil {
				return err
			}
			c.Transfers = append(c.Transfers, aa)
		}
		return nil
	})
}

// ContractCallBody invokes a deployed contract function.
type ContractCallBody struct {
	ContractID         *ContractID
	Gas                uint64
	Amount             uint64
	FunctionParameters []byte
}

func (*ContractCallBody) bodyField() protowire.Number { return bodyFieldContractCall }

func (c *ContractCallBody) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, c.ContractID)
	if err != nil {
		return nil, err
	}
	out = appendVarintField(out, 2, c.Gas)
	out = appendVarintField(out, 3, c.Amount)
	out = appendBytesField(out, 4, c.FunctionParameters)
	return out, nil
}

func (c *ContractCallBody) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		var err error
		switch num {
		case 1:
			c.ContractID = &ContractID{}
			return unmarshalMessageField(value, c.ContractID)
		case 2:
			c.Gas, err = fieldVarint(value)
		case 3:
			c.Amount, err = fieldVarint(value)
		case 4:
			c.FunctionParameters, err = fieldBytes(value)
		}
		return err
	})
}

// ContractCreateBody deploys a contract from a bytecode file.
type ContractCreateBody struct {
	FileID                *FileID
	AdminKey              []byte
	Gas                   uint64
	InitialBalance        uint64
	ConstructorParameters []byte
	Memo                  string
}

func (*ContractCreateBody) bodyField() protowire.Number { return bodyFieldContractCreate }

func (c *ContractCreateBody) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, c.FileID)
	if err != nil {
		return nil, err
	}
	out = appendBytesField(out, 3, c.AdminKey)
	out = appendVarintField(out, 4, c.Gas)
	out = appendVarintField(out, 5, c.InitialBalance)
	out = appendBytesField(out, 9, c.ConstructorParameters)
	out = appendStringField(out, 13, c.Memo)
	return out, nil
}

func (c *ContractCreateBody) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		var err error
		switch num {
		case 1:
			c.FileID = &FileID{}
			return unmarshalMessageField(value, c.FileID)
		case 3:
			c.AdminKey, err = fieldBytes(value)
		case 4:
			c.Gas, err = fieldVarint(value)
		case 5:
			c.InitialBalance, err = fieldVarint(value)
		case 9:
			c.ConstructorParameters, err = fieldBytes(value)
		case 13:
			var s []byte
			if s, err = fieldBytes(value); err == nil {
				c.Memo = string(s)
			}
		}
		return err
	})
}

// FileCreateBody stores a new file, typically contract bytecode.
type FileCreateBody struct {
	Keys     *KeyList
	Contents []byte
	Memo     string
}

func (*FileCreateBody) bodyField() protowire.Number { return bodyFieldFileCreate }

func (f *FileCreateBody) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 2, f.Keys)
	if err != nil {
		return nil, err
	}
	out = appendBytesField(out, 4, f.Contents)
	out = appendStringField(out, 8, f.Memo)
	return out, nil
}

func (f *FileCreateBody) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		var err error
		switch num {
		case 2:
			f.Keys = &KeyList{}
			return unmarshalMessageField(value, f.Keys)
		case 4:
			f.Contents, err = fieldBytes(value)
		case 8:
			var s []byte
			if s, err = fieldBytes(value); err == nil {
				f.Memo = string(s)
			}
		}
		return err
	})
}

// EthereumTransactionBody wraps an externally-encoded, externally-signed
// EVM-style transaction (RLP bytes).
type EthereumTransactionBody struct {
	EthereumData    []byte
	MaxGasAllowance int64
}

func (*EthereumTransactionBody) bodyField() protowire.Number { return bodyFieldEthereumTx }

func (e *EthereumTransactionBody) MarshalWire() ([]byte, error) {
	out := appendBytesField(nil, 1, e.EthereumData)
	out = appendVarintField(out, 3, uint64(e.MaxGasAllowance))
	return out, nil
}

func (e *EthereumTransactionBody) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		var err error
		switch num {
		case 1:
			e.EthereumData, err = fieldBytes(value)
		case 3:
			var v uint64
			if v, err = fieldVarint(value); err == nil {
				e.MaxGasAllowance = int64(v)
			}
		}
		return err
	})
}

// SignaturePair carries one signature with a prefix of the signing public
// key's raw bytes, placed in the field matching its scheme.
type SignaturePair struct {
	PubKeyPrefix []byte
	Ed25519      []byte
	ECDSA        []byte
}

func (p *SignaturePair) MarshalWire() ([]byte, error) {
	out := appendBytesField(nil, 1, p.PubKeyPrefix)
	out = appendBytesField(out, 3, p.Ed25519)
	out = appendBytesField(out, 6, p.ECDSA)
	return out, nil
}

func (p *SignaturePair) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		var err error
		switch num {
		case 1:
			p.PubKeyPrefix, err = fieldBytes(value)
		case 3:
			p.Ed25519, err = fieldBytes(value)
		case 6:
			p.ECDSA, err = fieldBytes(value)
		}
		return err
	})
}

// SignatureMap aggregates all signatures over one body.
type SignatureMap struct {
	SigPairs []*SignaturePair
}

func (m *SignatureMap) MarshalWire() ([]byte, error) {
	var out []byte
	var err error
	for _, p := range m.SigPairs {
		if out, err = appendMessageField(out, 1, p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (m *SignatureMap) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		if num == 1 {
			p := &SignaturePair{}
			if err := unmarshalMessageField(value, p); err != nil {
				return err
			}
			m.SigPairs = append(m.SigPairs, p)
		}
		return nil
	})
}

// SignedTransaction pairs canonical body bytes with their signature map.
type SignedTransaction struct {
	BodyBytes []byte
	SigMap    *SignatureMap
}

func (s *SignedTransaction) MarshalWire() ([]byte, error) {
	out := appendBytesField(nil, 1, s.BodyBytes)
	return appendMessageField(out, 2, s.SigMap)
}

func (s *SignedTransaction) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			b, err := fieldBytes(value)
			if err != nil {
				return err
			}
			s.BodyBytes = b
		case 2:
			s.SigMap = &SignatureMap{}
			return unmarshalMessageField(value, s.SigMap)
		}
		return nil
	})
}

// Transaction is the outermost submit envelope.
type Transaction struct {
	SignedTransactionBytes []byte
}

func (t *Transaction) MarshalWire() ([]byte, error) {
	return appendBytesField(nil, 5, t.SignedTransactionBytes), nil
}

func (t *Transaction) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		if num == 5 {
			b, err := fieldBytes(value)
			if err != nil {
				return err
			}
			t.SignedTransactionBytes = b
		}
		return nil
	})
}

// TransactionResponse is the node's immediate precheck answer to a submitted
// transaction.
type TransactionResponse struct {
	PrecheckCode int32
	Cost         uint64
}

func (r *TransactionResponse) MarshalWire() ([]byte, error) {
	out := appendVarintField(nil, 1, uint64(r.PrecheckCode))
	out = appendVarintField(out, 2, r.Cost)
	return out, nil
}

func (r *TransactionResponse) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		v, err := fieldVarint(value)
		if err != nil {
			return err
		}
		switch num {
		case 1:
			r.PrecheckCode = int32(v)
		case 2:
			r.Cost = v
		}
		return nil
	})
}
