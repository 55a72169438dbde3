package transaction

import (
	"context"
	"fmt"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
)

// TransferTransaction moves hbar between accounts. The debits and credits
// across all legs must cancel out exactly; freezing a transfer whose legs do
// not sum to zero fails.
type TransferTransaction struct {
	Transaction
	transfers []*hapi.AccountAmount
}

// NewTransferTransaction builds an empty transfer.
func NewTransferTransaction() *TransferTransaction {
	tx := &TransferTransaction{}
	tx.methodPath = hapi.MethodCryptoTransfer
	tx.buildData = func() (hapi.BodyData, error) {
		return &hapi.CryptoTransferBody{Transfers: tx.transfers}, nil
	}
	tx.validate = tx.checkZeroSum
	return tx
}

// AddHbarTransfer appends one leg: a positive amount credits the account, a
// negative amount debits it.
func (tx *TransferTransaction) AddHbarTransfer(account entity.AccountID, amount hbar.Hbar) error {
	if tx.frozen {
		return ErrFrozen
	}
	tx.transfers = append(tx.transfers, &hapi.AccountAmount{
		AccountID: hapi.AccountIDFrom(account),
		Amount:    amount.ToTinybars(),
	})
	return nil
}

func (tx *TransferTransaction) checkZeroSum() error {
	if len(tx.transfers) == 0 {
		return fmt.Errorf("transfer has no legs")
	}
	var sum int64
	for _, t := range tx.transfers {
		sum += t.Amount
	}
	if sum != 0 {
		return fmt.Errorf("transfer legs sum to %s, want zero", hbar.FromTinybars(sum))
	}
	return nil
}

// Execute submits the transfer and returns the node's acknowledgement.
func (tx *TransferTransaction) Execute(ctx context.Context, c *client.Client) (*Response, error) {
	return tx.execute(ctx, c)
}
