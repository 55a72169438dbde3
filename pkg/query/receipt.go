package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/status"
)

// ReceiptTimeoutError reports that the receipt wait window elapsed before
// the network stored a receipt for the transaction. It is distinct from
// transport and status failures: the transaction may still reach consensus
// after the caller stopped waiting.
type ReceiptTimeoutError struct {
	TransactionID entity.TransactionID
	Waited        time.Duration
}

func (e *ReceiptTimeoutError) Error() string {
	return fmt.Sprintf("no receipt for %s after %v", e.TransactionID, e.Waited)
}

// AsReceiptTimeoutError unwraps err into a ReceiptTimeoutError if it is one.
func AsReceiptTimeoutError(err error) (*ReceiptTimeoutError, bool) {
	var te *ReceiptTimeoutError
	ok := errors.As(err, &te)
	return te, ok
}

// Receipt is the terminal outcome record of a transaction: its consensus
// status plus the id of any entity the transaction created.
type Receipt struct {
	Status     status.Code
	AccountID  *entity.AccountID
	FileID     *entity.FileID
	ContractID *entity.ContractID
	TopicID    *entity.TopicID
}

// TransactionReceiptQuery polls the network for a transaction's receipt.
// Receipt lookups are free; while the network has not stored the receipt yet
// the query keeps polling within the operation's attempt budget.
type TransactionReceiptQuery struct {
	query
	txID entity.TransactionID
}

// NewTransactionReceiptQuery builds an empty receipt query.
func NewTransactionReceiptQuery() *TransactionReceiptQuery {
	q := &TransactionReceiptQuery{}
	q.methodPath = hapi.MethodGetTxReceipts
	q.buildBody = func(header *hapi.QueryHeader) hapi.QueryBody {
		return &hapi.TransactionGetReceiptQuery{
			QueryHeader:   header,
			TransactionID: hapi.TransactionIDFrom(q.txID),
		}
	}
	return q
}

// SetTransactionID selects which transaction to look up.
func (q *TransactionReceiptQuery) SetTransactionID(id entity.TransactionID) *TransactionReceiptQuery {
	q.txID = id
	return q
}

// Execute polls until the receipt is available and returns it. The receipt's
// own status is data, not an error: callers decide what a failed consensus
// status means for them.
func (q *TransactionReceiptQuery) Execute(ctx context.Context, c *client.Client) (*Receipt, error) {
	retry := func(code status.Code) bool {
		return code == status.Unknown || code == status.ReceiptNotFound
	}
	mapStatus := func(resp *hapi.Response) status.Code {
		body, ok := resp.Body.(*hapi.TransactionGetReceiptResponse)
		if !ok || body.Header().PrecheckCode != int32(status.OK) {
			if !ok {
				return status.Unknown
			}
			return status.Code(body.Header().PrecheckCode)
		}
		if body.Receipt == nil {
			return status.ReceiptNotFound
		}
		// A stored receipt means the lookup itself succeeded, whatever the
		// transaction's consensus outcome was. A receipt still marked
		// unknown is not ready yet.
		if code := status.Code(body.Receipt.Status); code == status.Unknown || code == status.ReceiptNotFound {
			return code
		}
		return status.OK
	}

	wait := c.Timeouts().ReceiptWait
	pollCtx := ctx
	if wait > 0 {
		var cancel context.CancelFunc
		pollCtx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}

	resp, err := q.executeWith(pollCtx, c, retry, mapStatus)
	if err != nil {
		if pollCtx.Err() != nil && ctx.Err() == nil {
			return nil, &ReceiptTimeoutError{TransactionID: q.txID, Waited: wait}
		}
		return nil, err
	}
	body, ok := resp.Body.(*hapi.TransactionGetReceiptResponse)
	if !ok || body.Receipt == nil {
		return nil, fmt.Errorf("receipt response carried no receipt")
	}
	return receiptFromWire(body.Receipt)
}

func receiptFromWire(wire *hapi.TransactionReceipt) (*Receipt, error) {
	r := &Receipt{Status: status.Code(wire.Status)}
	if wire.AccountID != nil {
		id, err := hapi.AccountIDTo(wire.AccountID)
		if err != nil {
			return nil, fmt.Errorf("receipt account id: %w", err)
		}
		r.AccountID = &id
	}
	if wire.FileID != nil {
		id := entity.NewFileID(wire.FileID.Shard, wire.FileID.Realm, wire.FileID.Num)
		r.FileID = &id
	}
	if wire.ContractID != nil {
		id := entity.NewContractID(wire.ContractID.Shard, wire.ContractID.Realm, wire.ContractID.Num)
		r.ContractID = &id
	}
	if wire.TopicID != nil {
		id := entity.NewTopicID(wire.TopicID.Shard, wire.TopicID.Realm, wire.TopicID.Num)
		r.TopicID = &id
	}
	return r, nil
}
