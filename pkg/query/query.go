// Package query implements the read-side operations: account balance,
// local contract calls and transaction receipts. Paid queries go through a
// cost guard: the SDK first asks the network for the expected cost and
// refuses to attach a payment above the effective limit, failing locally
// before anything is submitted.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/execution"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
	"github.com/shamank/hiero-sdk-go/pkg/network"
	"github.com/shamank/hiero-sdk-go/pkg/status"
)

// query carries the state shared by every concrete query type.
type query struct {
	methodPath string
	paid       bool

	// payment is an explicit payment amount; when set the cost guard is
	// skipped and the caller's amount is attached as-is.
	payment *hbar.Hbar
	// maxPayment is the per-call cap overriding the client default.
	maxPayment *hbar.Hbar

	// buildBody wraps a header into the concrete query body.
	buildBody func(header *hapi.QueryHeader) hapi.QueryBody
}

// queryRequest adapts one query run (cost or answer) to the execution
// engine.
type queryRequest struct {
	q            *query
	c            *client.Client
	responseType int32
	payment      hbar.Hbar
	withPayment  bool
	retry        func(code status.Code) bool
	mapStatus    func(resp *hapi.Response) status.Code
}

func (r *queryRequest) MethodPath() string { return r.q.methodPath }

func (r *queryRequest) MakeRequest(node *network.Node) (hapi.Message, error) {
	header := &hapi.QueryHeader{ResponseType: r.responseType}
	if r.withPayment {
		paymentTx, err := paymentTransaction(r.c, node.AccountID, r.payment)
		if err != nil {
			return nil, err
		}
		header.Payment = paymentTx
	}
	return &hapi.Query{Body: r.q.buildBody(header)}, nil
}

func (r *queryRequest) NewResponse() hapi.Message { return &hapi.Response{} }

func (r *queryRequest) MapStatus(resp hapi.Message) status.Code {
	response := resp.(*hapi.Response)
	if r.mapStatus != nil {
		return r.mapStatus(response)
	}
	if response.Body == nil {
		return status.Unknown
	}
	return status.Code(response.Body.Header().PrecheckCode)
}

func (r *queryRequest) TransactionID() entity.TransactionID { return entity.TransactionID{} }

func (r *queryRequest) ShouldRetry(code status.Code) bool {
	if r.retry != nil && r.retry(code) {
		return true
	}
	return code.IsRetryable()
}

// SetQueryPayment pins an explicit payment amount, bypassing the cost guard.
func (q *query) setQueryPayment(amount hbar.Hbar) { q.payment = &amount }

// SetMaxQueryPayment caps this call's automatic payment, overriding the
// client default.
func (q *query) setMaxQueryPayment(limit hbar.Hbar) { q.maxPayment = &limit }

// getCost asks the network what the query would cost. Cost runs are free.
func (q *query) getCost(ctx context.Context, c *client.Client) (hbar.Hbar, error) {
	req := &queryRequest{q: q, c: c, responseType: hapi.ResponseTypeCostAnswer}
	resp, err := execution.Execute(ctx, c, req)
	if err != nil {
		return hbar.Zero, err
	}
	response := resp.(*hapi.Response)
	if response.Body == nil {
		return hbar.Zero, fmt.Errorf("cost response for %s carried no body", q.methodPath)
	}
	return hbar.FromTinybars(int64(response.Body.Header().Cost)), nil
}

// execute runs the query. Paid queries without an explicit payment first
// resolve their cost and check it against the effective limit; a cost above
// the limit fails here, before any paid submission.
func (q *query) execute(ctx context.Context, c *client.Client) (*hapi.Response, error) {
	return q.executeWith(ctx, c, nil, nil)
}

func (q *query) executeWith(ctx context.Context, c *client.Client, retry func(status.Code) bool, mapStatus func(*hapi.Response) status.Code) (*hapi.Response, error) {
	req := &queryRequest{
		q:            q,
		c:            c,
		responseType: hapi.ResponseTypeAnswer,
		retry:        retry,
		mapStatus:    mapStatus,
	}

	if q.paid {
		switch {
		case q.payment != nil:
			req.payment = *q.payment
			req.withPayment = true
		default:
			cost, err := q.getCost(ctx, c)
			if err != nil {
				return nil, err
			}
			// The effective cap is the stricter of the per-call override
			// and the client default.
			limit := c.DefaultMaxQueryPayment()
			if q.maxPayment != nil && q.maxPayment.Cmp(limit) < 0 {
				limit = *q.maxPayment
			}
			if cost.Cmp(limit) > 0 {
				return nil, &execution.PaymentLimitError{Cost: cost, Limit: limit}
			}
			req.payment = cost
			req.withPayment = true
		}
	}

	resp, err := execution.Execute(ctx, c, req)
	if err != nil {
		return nil, err
	}
	return resp.(*hapi.Response), nil
}

const paymentValidDuration = 120 * time.Second

// paymentTransaction builds the signed transfer that moves the query fee
// from the operator to the answering node, serialized to wire bytes for the
// query header.
func paymentTransaction(c *client.Client, node entity.AccountID, amount hbar.Hbar) ([]byte, error) {
	op := c.Operator()
	if op == nil {
		return nil, fmt.Errorf("a paid query requires an operator")
	}

	txID := entity.GenerateTransactionID(op.AccountID)
	body := &hapi.TransactionBody{
		TransactionID:  hapi.TransactionIDFrom(txID),
		NodeAccountID:  hapi.AccountIDFrom(node),
		TransactionFee: uint64(hbar.New(1).ToTinybars()),
		ValidDuration:  hapi.DurationFrom(paymentValidDuration),
		Data: &hapi.CryptoTransferBody{
			Transfers: []*hapi.AccountAmount{
				{AccountID: hapi.AccountIDFrom(op.AccountID), Amount: -amount.ToTinybars()},
				{AccountID: hapi.AccountIDFrom(node), Amount: amount.ToTinybars()},
			},
		},
	}

	bodyBytes, err := body.MarshalWire()
	if err != nil {
		return nil, fmt.Errorf("marshal payment body: %w", err)
	}
	sig, pub, err := c.SignWithOperator(bodyBytes)
	if err != nil {
		return nil, err
	}

	signed := &hapi.SignedTransaction{
		BodyBytes: bodyBytes,
		SigMap:    hapi.SignatureMapFor(pub, sig),
	}
	signedBytes, err := signed.MarshalWire()
	if err != nil {
		return nil, fmt.Errorf("marshal payment envelope: %w", err)
	}
	return (&hapi.Transaction{SignedTransactionBytes: signedBytes}).MarshalWire()
}
