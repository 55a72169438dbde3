// Package entity defines the structured identifiers used across the SDK:
// accounts, contracts, files and topics addressed by a (shard, realm, num)
// triple, plus client-generated transaction identifiers. All identifiers
// parse from and render to the canonical dotted string "shard.realm.num".
package entity

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/shamank/hiero-sdk-go/pkg/keys"
)

// AccountID addresses an account. An account may instead be identified by an
// alias public key while the network has not yet assigned it a numeric id
// (a "hollow" account); such an id carries Num 0 and a non-nil AliasKey and
// is a valid transfer target.
type AccountID struct {
	Shard uint64
	Realm uint64
	Num   uint64
	// AliasKey identifies a hollow account in place of Num. Nil for regular
	// accounts.
	AliasKey keys.PublicKey
}

// NewAccountID builds a numeric account id.
func NewAccountID(shard, realm, num uint64) AccountID {
	return AccountID{Shard: shard, Realm: realm, Num: num}
}

// NewAliasAccountID builds a hollow account id identified by a public key.
func NewAliasAccountID(shard, realm uint64, alias keys.PublicKey) AccountID {
	return AccountID{Shard: shard, Realm: realm, AliasKey: alias}
}

// AccountIDFromString parses the canonical "shard.realm.num" form.
func AccountIDFromString(s string) (AccountID, error) {
	shard, realm, num, err := parseTriple(s, "account")
	if err != nil {
		return AccountID{}, err
	}
	return AccountID{Shard: shard, Realm: realm, Num: num}, nil
}

// String renders the canonical dotted form. Hollow accounts render the alias
// key's raw hex in place of the number.
func (id AccountID) String() string {
	if id.AliasKey != nil {
		return fmt.Sprintf("%d.%d.%s", id.Shard, id.Realm, hex.EncodeToString(id.AliasKey.BytesRaw()))
	}
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Num)
}

// Equals compares by the full tuple. Alias accounts compare by key material.
func (id AccountID) Equals(other AccountID) bool {
	if id.Shard != other.Shard || id.Realm != other.Realm || id.Num != other.Num {
		return false
	}
	switch {
	case id.AliasKey == nil && other.AliasKey == nil:
		return true
	case id.AliasKey == nil || other.AliasKey == nil:
		return false
	}
	return id.AliasKey.String() == other.AliasKey.String()
}

// ContractID addresses a smart contract instance.
type ContractID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewContractID builds a contract id.
func NewContractID(shard, realm, num uint64) ContractID {
	return ContractID{Shard: shard, Realm: realm, Num: num}
}

// ContractIDFromString parses the canonical "shard.realm.num" form.
func ContractIDFromString(s string) (ContractID, error) {
	shard, realm, num, err := parseTriple(s, "contract")
	if err != nil {
		return ContractID{}, err
	}
	return ContractID{Shard: shard, Realm: realm, Num: num}, nil
}

// String renders the canonical dotted form.
func (id ContractID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Num)
}

// EvmAddress returns the 20-byte EVM-compatible address form of the contract
// id: 4-byte shard, 8-byte realm, 8-byte num, all big-endian.
func (id ContractID) EvmAddress() common.Address {
	var addr common.Address
	binary.BigEndian.PutUint32(addr[0:4], uint32(id.Shard))
	binary.BigEndian.PutUint64(addr[4:12], id.Realm)
	binary.BigEndian.PutUint64(addr[12:20], id.Num)
	return addr
}

// FileID addresses a stored file, e.g. contract bytecode.
type FileID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewFileID builds a file id.
func NewFileID(shard, realm, num uint64) FileID {
	return FileID{Shard: shard, Realm: realm, Num: num}
}

// FileIDFromString parses the canonical "shard.realm.num" form.
func FileIDFromString(s string) (FileID, error) {
	shard, realm, num, err := parseTriple(s, "file")
	if err != nil {
		return FileID{}, err
	}
	return FileID{Shard: shard, Realm: realm, Num: num}, nil
}

// String renders the canonical dotted form.
func (id FileID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Num)
}

// TopicID addresses a consensus topic on the mirror streaming interface.
type TopicID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewTopicID builds a topic id.
func NewTopicID(shard, realm, num uint64) TopicID {
	return TopicID{Shard: shard, Realm: realm, Num: num}
}

// TopicIDFromString parses the canonical "shard.realm.num" form.
func TopicIDFromString(s string) (TopicID, error) {
	shard, realm, num, err := parseTriple(s, "topic")
	if err != nil {
		return TopicID{}, err
	}
	return TopicID{Shard: shard, Realm: realm, Num: num}, nil
}

// String renders the canonical dotted form.
func (id TopicID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Num)
}

func parseTriple(s, kind string) (shard, realm, num uint64, err error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid %s id string %q: want shard.realm.num", kind, s)
	}
	out := make([]uint64, 3)
	for i, p := range parts {
		v, perr := strconv.ParseUint(p, 10, 64)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("invalid %s id string %q: %v", kind, s, perr)
		}
		out[i] = v
	}
	return out[0], out[1], out[2], nil
}
