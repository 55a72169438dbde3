package transaction

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/internal/testutil/nodebuf"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/config"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/execution"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
	"github.com/shamank/hiero-sdk-go/pkg/keys"
	"github.com/shamank/hiero-sdk-go/pkg/network"
	"github.com/shamank/hiero-sdk-go/pkg/status"
)

// harness wires in-memory nodes into a client with an operator installed.
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

	key, err := keys.GenerateEd25519()
	if err != nil {
		t.Fatal(err)
	}
	c.SetOperator(entity.NewAccountID(0, 0, 1001), key)
	return c, nodes
}

func precheckReply(code status.Code) nodebuf.Reply {
	return nodebuf.Reply{Msg: &hapi.TransactionResponse{PrecheckCode: int32(code)}}
}

func receiptReply(precheck, receiptStatus status.Code) nodebuf.Reply {
	return nodebuf.Reply{Msg: &hapi.Response{Body: &hapi.TransactionGetReceiptResponse{
		ResponseHeader: &hapi.ResponseHeader{PrecheckCode: int32(precheck)},
		Receipt:        &hapi.TransactionReceipt{Status: int32(receiptStatus)},
	}}}
}

// decodeSubmission unwraps captured request bytes down to the signed body.
func decodeSubmission(t *testing.T, raw []byte) (*hapi.TransactionBody, *hapi.SignedTransaction) {
	t.Helper()

	envelope := &hapi.Transaction{}
	if err := envelope.UnmarshalWire(raw); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	signed := &hapi.SignedTransaction{}
	if err := signed.UnmarshalWire(envelope.SignedTransactionBytes); err != nil {
		t.Fatalf("unmarshal signed transaction: %v", err)
	}
	body := &hapi.TransactionBody{}
	if err := body.UnmarshalWire(signed.BodyBytes); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	return body, signed
}

func balancedTransfer(t *testing.T) *TransferTransaction {
	t.Helper()
	tx := NewTransferTransaction()
	if err := tx.AddHbarTransfer(entity.NewAccountID(0, 0, 1001), hbar.New(-5)); err != nil {
		t.Fatal(err)
	}
	if err := tx.AddHbarTransfer(entity.NewAccountID(0, 0, 2002), hbar.New(5)); err != nil {
		t.Fatal(err)
	}
	return tx
}

// TestTransfer_ZeroSum rejects freezing a transfer whose legs do not cancel
// out.
func TestTransfer_ZeroSum(t *testing.T) {
	c, _ := harness(t, "a")

	tx := NewTransferTransaction()
	if err := tx.AddHbarTransfer(entity.NewAccountID(0, 0, 1001), hbar.New(-5)); err != nil {
		t.Fatal(err)
	}
	if err := tx.AddHbarTransfer(entity.NewAccountID(0, 0, 2002), hbar.New(4)); err != nil {
		t.Fatal(err)
	}
	if err := tx.FreezeWith(c); err == nil {
		t.Fatal("freeze of an unbalanced transfer should fail")
	}

	if err := NewTransferTransaction().FreezeWith(c); err == nil {
		t.Fatal("freeze of an empty transfer should fail")
	}
}

// TestFreeze fixes the transaction id, derives one body per node and locks
// the setters.
func TestFreeze(t *testing.T) {
	c, _ := harness(t, "a", "b")

	tx := balancedTransfer(t)
	if err := tx.SetTransactionMemo("rent"); err != nil {
		t.Fatal(err)
	}
	if err := tx.FreezeWith(c); err != nil {
		t.Fatalf("FreezeWith: %v", err)
	}

	if tx.TransactionID().IsZero() {
		t.Error("freeze should fix a transaction id")
	}
	if !tx.IsFrozen() {
		t.Error("transaction should report frozen")
	}
	if err := tx.SetTransactionMemo("other"); err != ErrFrozen {
		t.Errorf("setter after freeze = %v, want ErrFrozen", err)
	}
	if err := tx.AddHbarTransfer(entity.NewAccountID(0, 0, 3), hbar.Zero); err != ErrFrozen {
		t.Errorf("AddHbarTransfer after freeze = %v, want ErrFrozen", err)
	}

	// Freezing again is a no-op.
	id := tx.TransactionID()
	if err := tx.FreezeWith(c); err != nil {
		t.Fatalf("second FreezeWith: %v", err)
	}
	if tx.TransactionID() != id {
		t.Error("second freeze changed the transaction id")
	}
}

// TestSign requires a frozen transaction and deduplicates keys.
func TestSign(t *testing.T) {
	c, _ := harness(t, "a")

	tx := balancedTransfer(t)
	key, err := keys.GenerateEd25519()
	if err != nil {
		t.Fatal(err)
	}
	if err := tx.Sign(key); err == nil {
		t.Fatal("signing before freeze should fail")
	}

	if err := tx.FreezeWith(c); err != nil {
		t.Fatal(err)
	}
	if err := tx.Sign(key); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := tx.Sign(key); err != nil {
		t.Fatalf("repeated Sign: %v", err)
	}
	if len(tx.signers) != 1 {
		t.Errorf("signers = %d, want 1", len(tx.signers))
	}
}

// TestExecute_SubmitsSignedEnvelope verifies the submitted bytes: the body
// names the target node, the fee and memo survive, and the operator
// signature verifies over the exact body bytes.
func TestExecute_SubmitsSignedEnvelope(t *testing.T) {
	c, nodes := harness(t, "a")
	nodes["a"].Script(hapi.MethodCryptoTransfer, precheckReply(status.OK))

	tx := balancedTransfer(t)
	if err := tx.SetTransactionMemo("invoice 7"); err != nil {
		t.Fatal(err)
	}
	resp, err := tx.Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.TransactionID.IsZero() {
		t.Error("response should carry the transaction id")
	}

	reqs := nodes["a"].Requests(hapi.MethodCryptoTransfer)
	if len(reqs) != 1 {
		t.Fatalf("captured requests = %d, want 1", len(reqs))
	}
	body, signed := decodeSubmission(t, reqs[0])

	if body.Memo != "invoice 7" {
		t.Errorf("memo = %q", body.Memo)
	}
	if body.NodeAccountID == nil || body.NodeAccountID.Num != 3 {
		t.Errorf("node account = %+v, want 0.0.3", body.NodeAccountID)
	}
	if body.TransactionFee == 0 {
		t.Error("a default max fee should be set")
	}

	op := c.Operator()
	if len(signed.SigMap.SigPairs) != 1 {
		t.Fatalf("signature pairs = %d, want 1", len(signed.SigMap.SigPairs))
	}
	pair := signed.SigMap.SigPairs[0]
	if !op.Key.PublicKey().Verify(signed.BodyBytes, pair.Ed25519) {
		t.Error("operator signature does not verify over the body bytes")
	}
}

// TestExecute_FailoverKeepsTransactionID re-submits to the next node under
// the same transaction id, changing only the target node account.
func TestExecute_FailoverKeepsTransactionID(t *testing.T) {
	c, nodes := harness(t, "a", "b")
	nodes["a"].Script(hapi.MethodCryptoTransfer,
		nodebuf.Reply{Err: grpcstatus.Error(codes.Unavailable, "connection reset")})
	nodes["b"].Script(hapi.MethodCryptoTransfer, precheckReply(status.OK))

	tx := balancedTransfer(t)
	if _, err := tx.Execute(context.Background(), c); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	reqsA := nodes["a"].Requests(hapi.MethodCryptoTransfer)
	reqsB := nodes["b"].Requests(hapi.MethodCryptoTransfer)
	if len(reqsA) != 1 || len(reqsB) != 1 {
		t.Fatalf("captured requests = %d/%d, want 1/1", len(reqsA), len(reqsB))
	}

	bodyA, _ := decodeSubmission(t, reqsA[0])
	bodyB, _ := decodeSubmission(t, reqsB[0])

	idA, err := hapi.TransactionIDTo(bodyA.TransactionID)
	if err != nil {
		t.Fatal(err)
	}
	idB, err := hapi.TransactionIDTo(bodyB.TransactionID)
	if err != nil {
		t.Fatal(err)
	}
	if idA.String() != idB.String() {
		t.Errorf("transaction id changed across failover: %s vs %s", idA, idB)
	}
	if bodyA.NodeAccountID.Num == bodyB.NodeAccountID.Num {
		t.Error("failover submission should target a different node account")
	}
}

// TestExecute_TerminalPrecheck surfaces a terminal precheck as a
// StatusError naming the transaction.
func TestExecute_TerminalPrecheck(t *testing.T) {
	c, nodes := harness(t, "a")
	nodes["a"].Script(hapi.MethodCryptoTransfer, precheckReply(status.InsufficientPayerBalance))

	tx := balancedTransfer(t)
	_, err := tx.Execute(context.Background(), c)
	se, ok := execution.AsStatusError(err)
	if !ok {
		t.Fatalf("want StatusError, got %v", err)
	}
	if se.Code != status.InsufficientPayerBalance {
		t.Errorf("code = %s", se.Code)
	}
	if se.TxID.IsZero() {
		t.Error("status error should name the transaction")
	}
}

// TestGetReceipt polls past not-yet-known receipts and surfaces the stored
// consensus status.
func TestGetReceipt(t *testing.T) {
	c, nodes := harness(t, "a")
	nodes["a"].Script(hapi.MethodCryptoTransfer, precheckReply(status.OK))
	nodes["a"].Script(hapi.MethodGetTxReceipts,
		receiptReply(status.OK, status.Unknown),
		receiptReply(status.OK, status.Success),
	)

	tx := balancedTransfer(t)
	resp, err := tx.Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	receipt, err := resp.GetReceipt(context.Background(), c)
	if err != nil {
		t.Fatalf("GetReceipt: %v", err)
	}
	if receipt.Status != status.Success {
		t.Errorf("receipt status = %s, want Success", receipt.Status)
	}
	if got := nodes["a"].Calls(hapi.MethodGetTxReceipts); got != 2 {
		t.Errorf("receipt polls = %d, want 2", got)
	}
}

// TestGetReceipt_FailedStatus returns the receipt together with a
// StatusError when consensus rejected the transaction.
func TestGetReceipt_FailedStatus(t *testing.T) {
	c, nodes := harness(t, "a")
	nodes["a"].Script(hapi.MethodCryptoTransfer, precheckReply(status.OK))
	nodes["a"].Script(hapi.MethodGetTxReceipts,
		receiptReply(status.OK, status.InsufficientPayerBalance))

	tx := balancedTransfer(t)
	resp, err := tx.Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	receipt, err := resp.GetReceipt(context.Background(), c)
	se, ok := execution.AsStatusError(err)
	if !ok {
		t.Fatalf("want StatusError, got %v", err)
	}
	if se.Code != status.InsufficientPayerBalance {
		t.Errorf("code = %s", se.Code)
	}
	if receipt == nil || receipt.Status != status.InsufficientPayerBalance {
		t.Error("failed receipt should still be returned for inspection")
	}
}

// TestExecute_NoOperator fails to auto-freeze without an operator to pay.
func TestExecute_NoOperator(t *testing.T) {
	net := network.ForNodes("bare", map[string]entity.AccountID{
		"passthrough:///x": entity.NewAccountID(0, 0, 3),
	}, "")
	c := client.ForNetwork(net)
	defer c.Close()

	tx := balancedTransfer(t)
	if _, err := tx.Execute(context.Background(), c); err == nil {
		t.Fatal("execute without operator should fail")
	}
}

// TestContractBuilders_RequireFields: contract deployment and calls reject
// freezing without their required fields, before any network traffic.
func TestContractBuilders_RequireFields(t *testing.T) {
	c, _ := harness(t, "a")

	create := NewContractCreateTransaction()
	if err := create.FreezeWith(c); err == nil {
		t.Error("contract create froze without a bytecode file id")
	}
	if err := create.SetBytecodeFileID(entity.NewFileID(0, 0, 9001)); err != nil {
		t.Fatal(err)
	}
	if err := create.FreezeWith(c); err == nil {
		t.Error("contract create froze without gas")
	}
	if err := create.SetGas(100_000); err != nil {
		t.Fatal(err)
	}
	if err := create.FreezeWith(c); err != nil {
		t.Errorf("complete contract create failed to freeze: %v", err)
	}

	call := NewContractExecuteTransaction()
	if err := call.FreezeWith(c); err == nil {
		t.Error("contract call froze without a contract id")
	}
	if err := call.SetContractID(entity.NewContractID(0, 0, 5005)); err != nil {
		t.Fatal(err)
	}
	if err := call.FreezeWith(c); err == nil {
		t.Error("contract call froze without gas")
	}
	if err := call.SetGas(50_000); err != nil {
		t.Fatal(err)
	}
	if err := call.FreezeWith(c); err != nil {
		t.Errorf("complete contract call failed to freeze: %v", err)
	}
}
