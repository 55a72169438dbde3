package transaction

import (
	"context"

	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/execution"
	"github.com/shamank/hiero-sdk-go/pkg/query"
)

// Response acknowledges a transaction that passed precheck at a node. The
// transaction is not final until its receipt reports a consensus status.
type Response struct {
	TransactionID entity.TransactionID
	NodeAccountID entity.AccountID
}

// GetReceipt polls for the transaction's receipt and returns it once
// consensus stored it. A receipt whose status reports failure surfaces as a
// StatusError carrying that status; the receipt is still returned alongside
// for inspection.
func (r *Response) GetReceipt(ctx context.Context, c *client.Client) (*query.Receipt, error) {
	receipt, err := query.NewTransactionReceiptQuery().
		SetTransactionID(r.TransactionID).
		Execute(ctx, c)
	if err != nil {
		return nil, err
	}
	if !receipt.Status.IsSuccess() {
		return receipt, &execution.StatusError{Code: receipt.Status, TxID: r.TransactionID}
	}
	return receipt, nil
}
