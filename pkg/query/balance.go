package query

import (
	"context"
	"fmt"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
)

// AccountBalanceQuery asks for an account's hbar balance. Balance queries
// are answered free of charge.
type AccountBalanceQuery struct {
	query
	accountID entity.AccountID
}

// NewAccountBalanceQuery builds an empty balance query.
func NewAccountBalanceQuery() *AccountBalanceQuery {
	q := &AccountBalanceQuery{}
	q.methodPath = hapi.MethodCryptoGetBalance
	q.buildBody = func(header *hapi.QueryHeader) hapi.QueryBody {
		return &hapi.CryptoGetBalanceQuery{
			QueryHeader: header,
			AccountID:   hapi.AccountIDFrom(q.accountID),
		}
	}
	return q
}

// SetAccountID selects the account to look up.
func (q *AccountBalanceQuery) SetAccountID(id entity.AccountID) *AccountBalanceQuery {
	q.accountID = id
	return q
}

// Execute runs the query and returns the account's balance.
func (q *AccountBalanceQuery) Execute(ctx context.Context, c *client.Client) (hbar.Hbar, error) {
	resp, err := q.execute(ctx, c)
	if err != nil {
		return hbar.Zero, err
	}
	body, ok := resp.Body.(*hapi.CryptoGetBalanceResponse)
	if !ok {
		return hbar.Zero, fmt.Errorf("unexpected response body %T", resp.Body)
	}
	return hbar.FromTinybars(int64(body.Balance)), nil
}
