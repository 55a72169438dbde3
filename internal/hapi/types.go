package hapi

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Timestamp is an instant as seconds and nanos since the epoch.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

// TimestampFrom converts a time.Time to its wire form.
func TimestampFrom(t time.Time) *Timestamp {
	return &Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}

// AsTime converts the wire form back to a time.Time in UTC.
func (t *Timestamp) AsTime() time.Time {
	return time.Unix(t.Seconds, int64(t.Nanos)).UTC()
}

func (t *Timestamp) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendVarintField(b, 1, uint64(t.Seconds))
	b = appendVarintField(b, 2, uint64(t.Nanos))
	return b, nil
}

func (t *Timestamp) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			v, err := fieldVarint(value)
			if err != nil {
				return err
			}
			t.Seconds = int64(v)
		case 2:
			v, err := fieldVarint(value)
			if err != nil {
				return err
			}
			t.Nanos = int32(v)
		}
		return nil
	})
}

// Duration is a span of whole seconds.
type Duration struct {
	Seconds int64
}

func (d *Duration) MarshalWire() ([]byte, error) {
	return appendVarintField(nil, 1, uint64(d.Seconds)), nil
}

func (d *Duration) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		if num == 1 {
			v, err := fieldVarint(value)
			if err != nil {
				return err
			}
			d.Seconds = int64(v)
		}
		return nil
	})
}

// AccountID is the wire form of an account identifier. Alias carries a
// serialized Key for hollow accounts and is mutually exclusive with Num.
type AccountID struct {
	Shard uint64
	Realm uint64
	Num   uint64
	Alias []byte
}

func (id *AccountID) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendVarintField(b, 1, id.Shard)
	b = appendVarintField(b, 2, id.Realm)
	if len(id.Alias) > 0 {
		b = appendBytesField(b, 4, id.Alias)
	} else {
		b = appendVarintField(b, 3, id.Num)
	}
	return b, nil
}

func (id *AccountID) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		var err error
		switch num {
		case 1:
			id.Shard, err = fieldVarint(value)
		case 2:
			id.Realm, err = fieldVarint(value)
		case 3:
			id.Num, err = fieldVarint(value)
		case 4:
			id.Alias, err = fieldBytes(value)
		}
		return err
	})
}

// triple is the shared wire layout of contract/file/topic identifiers.
type triple struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

func (t *triple) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendVarintField(b, 1, t.Shard)
	b = appendVarintField(b, 2, t.Realm)
	b = appendVarintField(b, 3, t.Num)
	return b, nil
}

func (t *triple) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		var err error
		switch num {
		case 1:
			t.Shard, err = fieldVarint(value)
		case 2:
			t.Realm, err = fieldVarint(value)
		case 3:
			t.Num, err = fieldVarint(value)
		}
		return err
	})
}

// ContractID is the wire form of a contract identifier.
type ContractID struct{ triple }

// NewContractID builds a wire contract id.
func NewContractID(shard, realm, num uint64) *ContractID {
	return &ContractID{triple{shard, realm, num}}
}

// FileID is the wire form of a file identifier.
type FileID struct{ triple }

// NewFileID builds a wire file id.
func NewFileID(shard, realm, num uint64) *FileID {
	return &FileID{triple{shard, realm, num}}
}

// TopicID is the wire form of a topic identifier.
type TopicID struct{ triple }

// NewTopicID builds a wire topic id.
func NewTopicID(shard, realm, num uint64) *TopicID {
	return &TopicID{triple{shard, realm, num}}
}

// TransactionID is the wire form of a transaction identifier.
type TransactionID struct {
	ValidStart *Timestamp
	AccountID  *AccountID
}

func (id *TransactionID) MarshalWire() ([]byte, error) {
	var b []byte
	var err error
	if b, err = appendMessageField(b, 1, id.ValidStart); err != nil {
		return nil, err
	}
	if b, err = appendMessageField(b, 2, id.AccountID); err != nil {
		return nil, err
	}
	return b, nil
}

func (id *TransactionID) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			id.ValidStart = &Timestamp{}
			return unmarshalMessageField(value, id.ValidStart)
		case 2:
			id.AccountID = &AccountID{}
			return unmarshalMessageField(value, id.AccountID)
		}
		return nil
	})
}

// Key field numbers for the two supported key variants inside the network's
// Key union.
const (
	keyFieldEd25519 = 2
	keyFieldECDSA   = 7
)

// EncodeEd25519Key serializes a raw Ed25519 public key as a wire Key union.
func EncodeEd25519Key(raw []byte) []byte {
	return appendBytesField(nil, keyFieldEd25519, raw)
}

// EncodeECDSAKey serializes a compressed secp256k1 public key as a wire Key
// union.
func EncodeECDSAKey(raw []byte) []byte {
	return appendBytesField(nil, keyFieldECDSA, raw)
}

// KeyList is the wire form of an ordered list of serialized Key unions.
type KeyList struct {
	Keys [][]byte
}

func (kl *KeyList) MarshalWire() ([]byte, error) {
	var b []byte
	for _, k := range kl.Keys {
		b = appendBytesField(b, 1, k)
	}
	return b, nil
}

func (kl *KeyList) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		if num == 1 {
			k, err := fieldBytes(value)
			if err != nil {
				return err
			}
			kl.Keys = append(kl.Keys, k)
		}
		return nil
	})
}
