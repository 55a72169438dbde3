package hapi

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/keys"
)

// AccountIDFrom converts a domain account id to its wire form. Alias
// accounts serialize their public key into the alias field.
func AccountIDFrom(id entity.AccountID) *AccountID {
	wire := &AccountID{Shard: id.Shard, Realm: id.Realm, Num: id.Num}
	if id.AliasKey != nil {
		wire.Alias = EncodeKey(id.AliasKey)
	}
	return wire
}

// AccountIDTo converts a wire account id back to the domain form.
func AccountIDTo(id *AccountID) (entity.AccountID, error) {
	if id == nil {
		return entity.AccountID{}, nil
	}
	if len(id.Alias) > 0 {
		key, err := DecodeKey(id.Alias)
		if err != nil {
			return entity.AccountID{}, err
		}
		return entity.NewAliasAccountID(id.Shard, id.Realm, key), nil
	}
	return entity.NewAccountID(id.Shard, id.Realm, id.Num), nil
}

// TransactionIDFrom converts a domain transaction id to its wire form.
func TransactionIDFrom(id entity.TransactionID) *TransactionID {
	return &TransactionID{
		ValidStart: TimestampFrom(id.ValidStart),
		AccountID:  AccountIDFrom(id.AccountID),
	}
}

// TransactionIDTo converts a wire transaction id back to the domain form.
func TransactionIDTo(id *TransactionID) (entity.TransactionID, error) {
	if id == nil {
		return entity.TransactionID{}, nil
	}
	out := entity.TransactionID{}
	if id.ValidStart != nil {
		out.ValidStart = id.ValidStart.AsTime()
	}
	account, err := AccountIDTo(id.AccountID)
	if err != nil {
		return entity.TransactionID{}, err
	}
	out.AccountID = account
	return out, nil
}

// DurationFrom converts a Go duration to the wire form, truncating to whole
// seconds.
func DurationFrom(d time.Duration) *Duration {
	return &Duration{Seconds: int64(d / time.Second)}
}

// EncodeKey serializes a public key into the network's key union.
func EncodeKey(key keys.PublicKey) []byte {
	if key.Algorithm() == keys.AlgorithmECDSA {
		return EncodeECDSAKey(key.BytesRaw())
	}
	return EncodeEd25519Key(key.BytesRaw())
}

// DecodeKey parses a key union into a public key. Only the two single-key
// variants are supported.
func DecodeKey(data []byte) (keys.PublicKey, error) {
	var raw []byte
	err := walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case keyFieldEd25519, keyFieldECDSA:
			b, err := fieldBytes(value)
			if err != nil {
				return err
			}
			raw = b
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys.PublicKeyFromBytes(raw)
}

// SignatureMapFor builds a one-entry signature map. The full raw public key
// is used as the prefix and the signature lands in the field matching the
// key's scheme.
func SignatureMapFor(pub keys.PublicKey, sig []byte) *SignatureMap {
	pair := &SignaturePair{PubKeyPrefix: pub.BytesRaw()}
	if pub.Algorithm() == keys.AlgorithmECDSA {
		pair.ECDSA = sig
	} else {
		pair.Ed25519 = sig
	}
	return &SignatureMap{SigPairs: []*SignaturePair{pair}}
}
