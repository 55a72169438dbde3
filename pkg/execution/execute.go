// Package execution implements the shared submit-and-retry engine behind
// every transaction and query. One logical operation runs a bounded loop:
// pick a node, exchange one request/response pair, then classify the outcome
// as success, retryable (back off and try again), transport failure (fail
// over to the next node immediately) or terminal (surface a typed error).
package execution

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/network"
	"github.com/shamank/hiero-sdk-go/pkg/status"
)

// Request is one executable operation. Transactions and queries implement it
// over their frozen wire forms; the engine never inspects payload bytes.
type Request interface {
	// MethodPath is the full gRPC method the request is sent to.
	MethodPath() string
	// MakeRequest builds the wire envelope for the given node. Transactions
	// return the pre-signed envelope frozen for that node so the
	// transaction id stays stable across failover.
	MakeRequest(node *network.Node) (hapi.Message, error)
	// NewResponse allocates the response envelope for one exchange.
	NewResponse() hapi.Message
	// MapStatus extracts the network status code from a response.
	MapStatus(resp hapi.Message) status.Code
	// TransactionID names the submission for error reporting; queries
	// return the zero value.
	TransactionID() entity.TransactionID
}

// RetryPolicy lets a request widen the set of retryable codes. The receipt
// query uses it: a receipt that is not known yet is a reason to poll again,
// not an error.
type RetryPolicy interface {
	ShouldRetry(code status.Code) bool
}

// Execute runs one logical operation against the client's network until it
// succeeds, fails terminally, or exhausts the attempt budget. The engine
// owns node selection, per-attempt deadlines, exponential backoff between
// retries and transport-level failover.
func Execute(ctx context.Context, c *client.Client, req Request) (hapi.Message, error) {
	if c.Closed() {
		return nil, errors.New("client is closed")
	}

	timeouts := c.Timeouts()
	maxAttempts := c.MaxAttempts()

	ctx, cancel := context.WithTimeout(ctx, timeouts.Request)
	defer cancel()

	var (
		lastErr error
		retries int
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		node, err := c.Network().SelectNode()
		if err != nil {
			return nil, err
		}

		resp, err := exchange(ctx, c, req, node, timeouts.GRPCUnary)
		if err != nil {
			var be *buildError
			if errors.As(err, &be) {
				return nil, be.err
			}
			// Transport-level failure: the request may not have reached the
			// node at all. Deprioritize it and fail over immediately.
			c.Network().Deprioritize(node)
			lastErr = err
			zap.L().Debug("node exchange failed",
				zap.String("method", req.MethodPath()),
				zap.String("node", node.Address),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		c.Network().MarkHealthy(node)

		code := req.MapStatus(resp)
		switch {
		case code.IsSuccess():
			return resp, nil
		case shouldRetry(req, code):
			lastErr = &StatusError{Code: code, TxID: req.TransactionID()}
			zap.L().Debug("retryable status",
				zap.String("method", req.MethodPath()),
				zap.String("node", node.Address),
				zap.Stringer("status", code),
				zap.Int("attempt", attempt))
			if err := backoff(ctx, retries, timeouts.MinBackoff, timeouts.MaxBackoff); err != nil {
				return nil, err
			}
			retries++
		default:
			return nil, &StatusError{Code: code, TxID: req.TransactionID()}
		}
	}

	return nil, &MaxAttemptsError{Attempts: maxAttempts, LastErr: lastErr}
}

// exchange performs one request/response pair against one node under the
// per-attempt deadline.
func exchange(ctx context.Context, c *client.Client, req Request, node *network.Node, timeout time.Duration) (hapi.Message, error) {
	conn, err := c.Network().ChannelFor(node)
	if err != nil {
		return nil, err
	}

	msg, err := req.MakeRequest(node)
	if err != nil {
		// A request that cannot be built will not improve on another node.
		return nil, &buildError{err}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp := req.NewResponse()
	if err := conn.Invoke(attemptCtx, req.MethodPath(), msg, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

type buildError struct{ err error }

func (e *buildError) Error() string { return e.err.Error() }
func (e *buildError) Unwrap() error { return e.err }

func shouldRetry(req Request, code status.Code) bool {
	if rp, ok := req.(RetryPolicy); ok && rp.ShouldRetry(code) {
		return true
	}
	return code.IsRetryable()
}

// backoff sleeps for an exponentially growing delay, honoring cancellation.
func backoff(ctx context.Context, retries int, floor, ceil time.Duration) error {
	delay := floor << retries
	if delay > ceil || delay <= 0 {
		delay = ceil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
