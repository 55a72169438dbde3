package execution

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/internal/testutil/nodebuf"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/config"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/network"
	"github.com/shamank/hiero-sdk-go/pkg/status"
)

const balanceMethod = hapi.MethodCryptoGetBalance

// stubRequest is a minimal balance lookup for exercising the engine.
type stubRequest struct{}

func (stubRequest) MethodPath() string { return balanceMethod }

func (stubRequest) MakeRequest(_ *network.Node) (hapi.Message, error) {
	return &hapi.Query{Body: &hapi.CryptoGetBalanceQuery{
		AccountID: &hapi.AccountID{Num: 1001},
	}}, nil
}

func (stubRequest) NewResponse() hapi.Message { return &hapi.Response{} }

func (stubRequest) MapStatus(resp hapi.Message) status.Code {
	r := resp.(*hapi.Response)
	if r.Body == nil {
		return status.Unknown
	}
	return status.Code(r.Body.Header().PrecheckCode)
}

func (stubRequest) TransactionID() entity.TransactionID { return entity.TransactionID{} }

func balanceReply(code status.Code, balance uint64) nodebuf.Reply {
	return nodebuf.Reply{Msg: &hapi.Response{Body: &hapi.CryptoGetBalanceResponse{
		ResponseHeader: &hapi.ResponseHeader{PrecheckCode: int32(code)},
		Balance:        balance,
	}}}
}

func transportFailure() nodebuf.Reply {
	return nodebuf.Reply{Err: grpcstatus.Error(codes.Unavailable, "node is draining")}
}

// harness wires n in-memory nodes into a client with fast retry pacing.
func harness(t *testing.T, names ...string) (*client.Client, map[string]*nodebuf.Node) {
	t.Helper()

	nodes := map[string]*nodebuf.Node{}
	registry := map[string]entity.AccountID{}
	for i, name := range names {
		n := nodebuf.Start()
		t.Cleanup(n.Stop)
		nodes[name] = n
		registry[nodebuf.Address(name)] = entity.NewAccountID(0, 0, uint64(3+i))
	}

	net := network.ForNodes("buftest", registry, "")
	net.SetDialOptions(nodebuf.Dialer(nodes))

	c := client.ForNetwork(net)
	t.Cleanup(c.Close)
	c.SetTimeouts(config.Timeouts{
		GRPCUnary:  2 * time.Second,
		Request:    10 * time.Second,
		MinBackoff: time.Millisecond,
		MaxBackoff: 5 * time.Millisecond,
	})
	return c, nodes
}

// TestExecute_Success delivers the response of a healthy node on the first
// attempt.
func TestExecute_Success(t *testing.T) {
	c, nodes := harness(t, "a")
	nodes["a"].Script(balanceMethod, balanceReply(status.OK, 500))

	resp, err := Execute(context.Background(), c, stubRequest{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	body := resp.(*hapi.Response).Body.(*hapi.CryptoGetBalanceResponse)
	if body.Balance != 500 {
		t.Errorf("balance = %d, want 500", body.Balance)
	}
	if got := nodes["a"].Calls(balanceMethod); got != 1 {
		t.Errorf("node calls = %d, want 1", got)
	}
}

// TestExecute_RetryableThenSuccess backs off after a busy answer and
// succeeds on the second attempt.
func TestExecute_RetryableThenSuccess(t *testing.T) {
	c, nodes := harness(t, "a")
	nodes["a"].Script(balanceMethod,
		balanceReply(status.Busy, 0),
		balanceReply(status.OK, 7),
	)

	if _, err := Execute(context.Background(), c, stubRequest{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := nodes["a"].Calls(balanceMethod); got != 2 {
		t.Errorf("node calls = %d, want 2", got)
	}
}

// TestExecute_FailoverOnTransportError moves to the next node when an
// exchange fails at the transport level.
func TestExecute_FailoverOnTransportError(t *testing.T) {
	c, nodes := harness(t, "a", "b")
	// Selection starts from the base order, so node a is tried first.
	nodes["a"].Script(balanceMethod, transportFailure())
	nodes["b"].Script(balanceMethod, balanceReply(status.OK, 1))

	if _, err := Execute(context.Background(), c, stubRequest{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := nodes["a"].Calls(balanceMethod); got != 1 {
		t.Errorf("failed node calls = %d, want 1", got)
	}
	if got := nodes["b"].Calls(balanceMethod); got != 1 {
		t.Errorf("failover node calls = %d, want 1", got)
	}
}

// TestExecute_TerminalStatus surfaces a non-retryable status as a
// StatusError without further attempts.
func TestExecute_TerminalStatus(t *testing.T) {
	c, nodes := harness(t, "a")
	nodes["a"].Script(balanceMethod, balanceReply(status.InvalidAccountID, 0))

	_, err := Execute(context.Background(), c, stubRequest{})
	se, ok := AsStatusError(err)
	if !ok {
		t.Fatalf("want StatusError, got %v", err)
	}
	if se.Code != status.InvalidAccountID {
		t.Errorf("code = %s, want InvalidAccountID", se.Code)
	}
	if got := nodes["a"].Calls(balanceMethod); got != 1 {
		t.Errorf("node calls = %d, want 1", got)
	}
}

// TestExecute_ExhaustsAttemptBudget stops after exactly the configured
// number of attempts when every node keeps failing.
func TestExecute_ExhaustsAttemptBudget(t *testing.T) {
	c, nodes := harness(t, "a", "b")
	if err := c.SetMaxAttempts(4); err != nil {
		t.Fatal(err)
	}
	nodes["a"].Script(balanceMethod, transportFailure())
	nodes["b"].Script(balanceMethod, transportFailure())

	_, err := Execute(context.Background(), c, stubRequest{})
	me, ok := AsMaxAttemptsError(err)
	if !ok {
		t.Fatalf("want MaxAttemptsError, got %v", err)
	}
	if me.Attempts != 4 {
		t.Errorf("attempts = %d, want 4", me.Attempts)
	}
	total := nodes["a"].Calls(balanceMethod) + nodes["b"].Calls(balanceMethod)
	if total != 4 {
		t.Errorf("total calls = %d, want 4", total)
	}
}

// TestExecute_ClosedClient refuses to run against a closed client.
func TestExecute_ClosedClient(t *testing.T) {
	c, _ := harness(t, "a")
	c.Close()

	if _, err := Execute(context.Background(), c, stubRequest{}); err == nil {
		t.Fatal("Execute on a closed client should fail")
	}
}

// TestExecute_ContextCancelled honors caller cancellation between attempts.
func TestExecute_ContextCancelled(t *testing.T) {
	c, nodes := harness(t, "a")
	nodes["a"].Script(balanceMethod, balanceReply(status.Busy, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Execute(ctx, c, stubRequest{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
