// Package transaction implements the write-side operations: hbar transfers,
// file and contract creation, contract execution and wrapped EVM-style
// transactions. A transaction is built mutable, frozen against a client
// (fixing its transaction id and the exact signed bytes for every node), then
// signed and submitted through the shared execution engine. Because the
// frozen bytes differ per node only in the target node account, failover
// re-submits under the same transaction id.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/execution"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
	"github.com/shamank/hiero-sdk-go/pkg/keys"
	"github.com/shamank/hiero-sdk-go/pkg/network"
	"github.com/shamank/hiero-sdk-go/pkg/status"
)

// ErrFrozen is returned by setters once a transaction has been frozen.
var ErrFrozen = errors.New("transaction is frozen")

const defaultValidDuration = 120 * time.Second

// defaultMaxFee caps the node fee when the caller sets no explicit maximum.
var defaultMaxFee = hbar.New(2)

type signer struct {
	pub  keys.PublicKey
	sign func([]byte) ([]byte, error)
}

// Transaction carries the state shared by every concrete transaction type.
// Concrete types embed it and contribute their operation payload through
// buildData.
type Transaction struct {
	methodPath string
	buildData  func() (hapi.BodyData, error)
	validate   func() error

	txID          entity.TransactionID
	maxFee        *hbar.Hbar
	memo          string
	validDuration time.Duration

	frozen   bool
	bodies   map[string][]byte
	signers  []signer
	lastNode entity.AccountID
}

// SetTransactionID pins an explicit transaction id instead of generating one
// from the operator at freeze time.
func (t *Transaction) SetTransactionID(id entity.TransactionID) error {
	if t.frozen {
		return ErrFrozen
	}
	t.txID = id
	return nil
}

// SetTransactionMemo attaches a short memo to the transaction.
func (t *Transaction) SetTransactionMemo(memo string) error {
	if t.frozen {
		return ErrFrozen
	}
	t.memo = memo
	return nil
}

// SetMaxTransactionFee caps the fee the operator is willing to pay.
func (t *Transaction) SetMaxTransactionFee(fee hbar.Hbar) error {
	if t.frozen {
		return ErrFrozen
	}
	t.maxFee = &fee
	return nil
}

// SetTransactionValidDuration bounds how long after its valid-start the
// transaction stays submittable.
func (t *Transaction) SetTransactionValidDuration(d time.Duration) error {
	if t.frozen {
		return ErrFrozen
	}
	t.validDuration = d
	return nil
}

// TransactionID returns the transaction's id. It is the zero value until an
// explicit id was set or the transaction was frozen.
func (t *Transaction) TransactionID() entity.TransactionID { return t.txID }

// IsFrozen reports whether the transaction body has been fixed.
func (t *Transaction) IsFrozen() bool { return t.frozen }

// FreezeWith fixes the transaction id and derives the canonical body bytes
// for every node in the client's registry. After freezing the per-node
// bodies differ only in the target node account, so a failed submission can
// move to another node without changing the transaction id. Freezing twice
// is a no-op.
func (t *Transaction) FreezeWith(c *client.Client) error {
	if t.frozen {
		return nil
	}
	if t.validate != nil {
		if err := t.validate(); err != nil {
			return err
		}
	}

	if t.txID.IsZero() {
		id, err := c.GenerateTransactionID()
		if err != nil {
			return fmt.Errorf("freeze: %w", err)
		}
		t.txID = id
	}

	data, err := t.buildData()
	if err != nil {
		return err
	}

	maxFee := defaultMaxFee
	if t.maxFee != nil {
		maxFee = *t.maxFee
	}
	validDuration := t.validDuration
	if validDuration == 0 {
		validDuration = defaultValidDuration
	}

	nodes := c.Network().Nodes()
	if len(nodes) == 0 {
		return errors.New("freeze: the network has no nodes")
	}
	t.bodies = make(map[string][]byte, len(nodes))
	for _, node := range nodes {
		body := &hapi.TransactionBody{
			TransactionID:  hapi.TransactionIDFrom(t.txID),
			NodeAccountID:  hapi.AccountIDFrom(node.AccountID),
			TransactionFee: uint64(maxFee.ToTinybars()),
			ValidDuration:  hapi.DurationFrom(validDuration),
			Memo:           t.memo,
			Data:           data,
		}
		bodyBytes, err := body.MarshalWire()
		if err != nil {
			return fmt.Errorf("freeze: %w", err)
		}
		t.bodies[node.Address] = bodyBytes
	}

	t.frozen = true
	return nil
}

// Sign adds a signature from the given key. The transaction must be frozen;
// signing the same key twice is a no-op.
func (t *Transaction) Sign(key keys.PrivateKey) error {
	if !t.frozen {
		return errors.New("sign: transaction must be frozen first")
	}
	t.addSigner(signer{pub: key.PublicKey(), sign: key.Sign})
	return nil
}

// SignWithOperator signs with the client's operator key.
func (t *Transaction) SignWithOperator(c *client.Client) error {
	if !t.frozen {
		return errors.New("sign: transaction must be frozen first")
	}
	op := c.Operator()
	if op == nil {
		return errors.New("sign: no operator configured")
	}
	t.addSigner(signer{pub: op.Key.PublicKey(), sign: op.Key.Sign})
	return nil
}

func (t *Transaction) addSigner(s signer) {
	for _, existing := range t.signers {
		if existing.pub.String() == s.pub.String() {
			return
		}
	}
	t.signers = append(t.signers, s)
}

// MethodPath returns the gRPC method the transaction is submitted to.
func (t *Transaction) MethodPath() string { return t.methodPath }

// MakeRequest assembles the signed envelope frozen for the given node.
func (t *Transaction) MakeRequest(node *network.Node) (hapi.Message, error) {
	bodyBytes, ok := t.bodies[node.Address]
	if !ok {
		return nil, fmt.Errorf("transaction was not frozen for node %s", node.Address)
	}
	if len(t.signers) == 0 {
		return nil, errors.New("transaction has no signatures")
	}

	sigMap := &hapi.SignatureMap{}
	for _, s := range t.signers {
		sig, err := s.sign(bodyBytes)
		if err != nil {
			return nil, fmt.Errorf("sign transaction: %w", err)
		}
		sigMap.SigPairs = append(sigMap.SigPairs, hapi.SignatureMapFor(s.pub, sig).SigPairs...)
	}

	signed := &hapi.SignedTransaction{BodyBytes: bodyBytes, SigMap: sigMap}
	signedBytes, err := signed.MarshalWire()
	if err != nil {
		return nil, err
	}
	t.lastNode = node.AccountID
	return &hapi.Transaction{SignedTransactionBytes: signedBytes}, nil
}

// NewResponse allocates the precheck response envelope.
func (t *Transaction) NewResponse() hapi.Message { return &hapi.TransactionResponse{} }

// MapStatus extracts the precheck code.
func (t *Transaction) MapStatus(resp hapi.Message) status.Code {
	return status.Code(resp.(*hapi.TransactionResponse).PrecheckCode)
}

// execute freezes (if needed), ensures an operator signature and submits
// through the engine.
func (t *Transaction) execute(ctx context.Context, c *client.Client) (*Response, error) {
	if !t.frozen {
		if err := t.FreezeWith(c); err != nil {
			return nil, err
		}
	}
	if len(t.signers) == 0 {
		if err := t.SignWithOperator(c); err != nil {
			return nil, err
		}
	}

	if _, err := execution.Execute(ctx, c, t); err != nil {
		return nil, err
	}
	return &Response{TransactionID: t.txID, NodeAccountID: t.lastNode}, nil
}
