package entity

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// lastValidStart makes transaction ids generated in the same nanosecond
// strictly increasing per process.
var lastValidStart atomic.Int64

// TransactionID uniquely identifies a transaction as the pair of the paying
// account and a client-generated valid-start timestamp. The network treats a
// resubmission with the same id as a duplicate of the original, which is what
// makes node failover safe.
type TransactionID struct {
	AccountID  AccountID
	ValidStart time.Time
}

// GenerateTransactionID creates a new id for the given payer. Ids generated
// by one process are strictly ordered even under concurrent generation.
func GenerateTransactionID(payer AccountID) TransactionID {
	now := time.Now().UnixNano()
	for {
		last := lastValidStart.Load()
		if now <= last {
			now = last + 1
		}
		if lastValidStart.CompareAndSwap(last, now) {
			break
		}
	}
	return TransactionID{
		AccountID:  payer,
		ValidStart: time.Unix(0, now).UTC(),
	}
}

// TransactionIDFromString parses the canonical "shard.realm.num@secs.nanos"
// form.
func TransactionIDFromString(s string) (TransactionID, error) {
	accountPart, timePart, ok := strings.Cut(s, "@")
	if !ok {
		return TransactionID{}, fmt.Errorf("invalid transaction id string %q: want account@seconds.nanos", s)
	}
	account, err := AccountIDFromString(accountPart)
	if err != nil {
		return TransactionID{}, fmt.Errorf("invalid transaction id string %q: %v", s, err)
	}
	secsPart, nanosPart, ok := strings.Cut(timePart, ".")
	if !ok {
		return TransactionID{}, fmt.Errorf("invalid transaction id string %q: want account@seconds.nanos", s)
	}
	secs, err := strconv.ParseInt(secsPart, 10, 64)
	if err != nil {
		return TransactionID{}, fmt.Errorf("invalid transaction id string %q: %v", s, err)
	}
	nanos, err := strconv.ParseInt(nanosPart, 10, 64)
	if err != nil || nanos < 0 || nanos > 999_999_999 {
		return TransactionID{}, fmt.Errorf("invalid transaction id string %q: bad nanos", s)
	}
	return TransactionID{
		AccountID:  account,
		ValidStart: time.Unix(secs, nanos).UTC(),
	}, nil
}

// String renders "shard.realm.num@seconds.nanos".
func (id TransactionID) String() string {
	return fmt.Sprintf("%s@%d.%d", id.AccountID, id.ValidStart.Unix(), id.ValidStart.Nanosecond())
}

// IsZero reports whether the id has not been generated yet.
func (id TransactionID) IsZero() bool {
	return id.ValidStart.IsZero()
}
