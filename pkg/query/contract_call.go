package query

import (
	"context"
	"fmt"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
)

// ContractCallQuery runs a contract function locally on a single node
// without reaching consensus. It is a paid query and goes through the cost
// guard unless an explicit payment is set.
type ContractCallQuery struct {
	query
	contractID entity.ContractID
	gas        uint64
	params     []byte
}

// NewContractCallQuery builds an empty local call query.
func NewContractCallQuery() *ContractCallQuery {
	q := &ContractCallQuery{}
	q.methodPath = hapi.MethodContractCallLocal
	q.paid = true
	q.buildBody = func(header *hapi.QueryHeader) hapi.QueryBody {
		return &hapi.ContractCallLocalQuery{
			QueryHeader:        header,
			ContractID:         hapi.NewContractID(q.contractID.Shard, q.contractID.Realm, q.contractID.Num),
			Gas:                q.gas,
			FunctionParameters: q.params,
		}
	}
	return q
}

// SetContractID selects the contract to call.
func (q *ContractCallQuery) SetContractID(id entity.ContractID) *ContractCallQuery {
	q.contractID = id
	return q
}

// SetGas sets the gas limit for the local call.
func (q *ContractCallQuery) SetGas(gas uint64) *ContractCallQuery {
	q.gas = gas
	return q
}

// SetFunctionParameters attaches pre-encoded call data (selector plus ABI
// arguments).
func (q *ContractCallQuery) SetFunctionParameters(params []byte) *ContractCallQuery {
	q.params = params
	return q
}

// SetQueryPayment pins an explicit payment amount, bypassing the cost guard.
func (q *ContractCallQuery) SetQueryPayment(amount hbar.Hbar) *ContractCallQuery {
	q.setQueryPayment(amount)
	return q
}

// SetMaxQueryPayment caps this call's automatic payment, overriding the
// client default.
func (q *ContractCallQuery) SetMaxQueryPayment(limit hbar.Hbar) *ContractCallQuery {
	q.setMaxQueryPayment(limit)
	return q
}

// GetCost returns what the network would charge for this call.
func (q *ContractCallQuery) GetCost(ctx context.Context, c *client.Client) (hbar.Hbar, error) {
	return q.getCost(ctx, c)
}

// Execute runs the call and returns the function result.
func (q *ContractCallQuery) Execute(ctx context.Context, c *client.Client) (*ContractFunctionResult, error) {
	resp, err := q.execute(ctx, c)
	if err != nil {
		return nil, err
	}
	body, ok := resp.Body.(*hapi.ContractCallLocalResponse)
	if !ok || body.FunctionResult == nil {
		return nil, fmt.Errorf("contract call response carried no result")
	}
	return contractFunctionResultFromWire(body.FunctionResult), nil
}
