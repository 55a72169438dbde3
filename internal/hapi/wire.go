// Package hapi implements the network's binary wire contract: transaction
// and query envelopes, response headers, receipts and the mirror streaming
// messages. Messages are encoded directly with protobuf wire primitives
// (encoding/protowire), without code generation, and exposed to gRPC through
// a custom encoding.Codec, so the rest of the SDK exchanges typed Go structs
// while the tag layout stays an external contract.
//
// Marshaling always emits fields in ascending field-number order, which
// makes the byte encoding of a given message canonical. Transaction body
// bytes are signed, so this determinism is load-bearing.
package hapi

import (
	"fmt"
	"reflect"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every wire envelope in this package.
type Message interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire(data []byte) error
}

const codecName = "hapi"

// Codec implements grpc/encoding.Codec over the Message interface.
type Codec struct{}

// Marshal encodes a Message for transmission.
func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("hapi codec: %T does not implement hapi.Message", v)
	}
	data, err := m.MarshalWire()
	if err != nil {
		return nil, fmt.Errorf("hapi marshal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes received bytes into a Message.
func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("hapi codec: %T does not implement hapi.Message", v)
	}
	if err := m.UnmarshalWire(data); err != nil {
		return fmt.Errorf("hapi unmarshal: %w", err)
	}
	return nil
}

// Name returns the codec's registered name.
func (Codec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(Codec{})
}

// walk iterates the top-level fields of data, calling fn with each field's
// number, wire type and raw value bytes (tag excluded). Unknown fields are
// skipped by the callers, which keeps decoding tolerant of contract
// additions.
func walk(data []byte, fn func(num protowire.Number, typ protowire.Type, value []byte) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		m := protowire.ConsumeFieldValue(num, typ, data)
		if m < 0 {
			return protowire.ParseError(m)
		}
		if err := fn(num, typ, data[:m]); err != nil {
			return err
		}
		data = data[m:]
	}
	return nil
}

func fieldVarint(value []byte) (uint64, error) {
	v, n := protowire.ConsumeVarint(value)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return v, nil
}

func fieldBytes(value []byte) ([]byte, error) {
	b, n := protowire.ConsumeBytes(value)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessageField(b []byte, num protowire.Number, m Message) ([]byte, error) {
	// Optional sub-messages arrive as typed-nil pointers, which a plain
	// interface comparison does not catch.
	if m == nil || reflect.ValueOf(m).IsNil() {
		return b, nil
	}
	sub, err := m.MarshalWire()
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, sub), nil
}

func unmarshalMessageField(value []byte, m Message) error {
	inner, err := fieldBytes(value)
	if err != nil {
		return err
	}
	return m.UnmarshalWire(inner)
}
