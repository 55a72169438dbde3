// Package client exposes the high-level SDK entry point. A Client wires
// together the node registry, the operator identity used to pay for and sign
// submissions, and the execution defaults (attempt budget, query payment cap,
// timeouts) shared by every transaction and query built against it.
package client

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shamank/hiero-sdk-go/pkg/config"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/hbar"
	"github.com/shamank/hiero-sdk-go/pkg/keys"
	"github.com/shamank/hiero-sdk-go/pkg/network"
)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	zap.ReplaceGlobals(newLogger(zapcore.InfoLevel))
}

func newLogger(level zapcore.Level) *zap.Logger {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

// Operator is the account that pays for and signs everything submitted
// through a client.
type Operator struct {
	AccountID entity.AccountID
	Key       keys.PrivateKey
}

// Client is the SDK composition root. It is safe for concurrent use; the
// setters are intended for configure-before-use.
type Client struct {
	mu       sync.RWMutex
	operator *Operator

	net *network.Network

	maxQueryPayment hbar.Hbar
	maxAttempts     int
	timeouts        config.Timeouts

	closeOnce sync.Once
	closed    bool
}

// DefaultMaxAttempts bounds the submit-and-retry loop when the client is not
// configured otherwise.
const DefaultMaxAttempts = 10

func newClient(net *network.Network) *Client {
	return &Client{
		net:             net,
		maxQueryPayment: hbar.New(1),
		maxAttempts:     DefaultMaxAttempts,
		timeouts:        config.Timeouts{}.WithDefaults(),
	}
}

// ForMainnet returns a client against the hosted mainnet node set.
func ForMainnet() (*Client, error) { return forName("mainnet") }

// ForTestnet returns a client against the hosted testnet node set.
func ForTestnet() (*Client, error) { return forName("testnet") }

// ForPreviewnet returns a client against the hosted previewnet node set.
func ForPreviewnet() (*Client, error) { return forName("previewnet") }

func forName(name string) (*Client, error) {
	net, err := network.ForName(name)
	if err != nil {
		return nil, err
	}
	return newClient(net), nil
}

// ForNetwork returns a client against an explicit node registry. The
// registry keeps its own transport defaults (plaintext for custom node
// maps).
func ForNetwork(net *network.Network) *Client {
	return newClient(net)
}

// FromConfig builds a client from a validated configuration: network
// selection, optional operator pair, payment cap and timeouts.
func FromConfig(cfg *config.Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		net *network.Network
		err error
	)
	if len(cfg.Nodes) > 0 {
		nodes := make(map[string]entity.AccountID, len(cfg.Nodes))
		for addr, idStr := range cfg.Nodes {
			id, err := entity.AccountIDFromString(idStr)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", addr, err)
			}
			nodes[addr] = id
		}
		net = network.ForNodes("custom", nodes, cfg.MirrorAddress)
	} else {
		net, err = network.ForName(cfg.Network)
		if err != nil {
			return nil, err
		}
		if cfg.MirrorAddress != "" {
			return nil, errors.New("mirror address override is only valid with a custom node map")
		}
	}

	c := newClient(net)
	c.maxAttempts = cfg.MaxAttempts
	c.timeouts = cfg.Timeouts.WithDefaults()

	if cfg.Debug {
		zap.ReplaceGlobals(newLogger(zapcore.DebugLevel))
	}

	payment, err := hbar.FromString(cfg.MaxQueryPayment)
	if err != nil {
		return nil, fmt.Errorf("max query payment: %w", err)
	}
	if err := c.SetDefaultMaxQueryPayment(payment); err != nil {
		return nil, err
	}

	if cfg.OperatorID != "" {
		id, err := entity.AccountIDFromString(cfg.OperatorID)
		if err != nil {
			return nil, fmt.Errorf("operator id: %w", err)
		}
		key, err := keys.PrivateKeyFromString(cfg.OperatorKey)
		if err != nil {
			return nil, fmt.Errorf("operator key: %w", err)
		}
		c.SetOperator(id, key)
	}

	return c, nil
}

// SetOperator installs the account that pays for and signs submissions.
func (c *Client) SetOperator(id entity.AccountID, key keys.PrivateKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operator = &Operator{AccountID: id, Key: key}
}

// Operator returns the configured operator, or nil.
func (c *Client) Operator() *Operator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.operator
}

// OperatorAccountID returns the operator's account id and whether an
// operator is configured.
func (c *Client) OperatorAccountID() (entity.AccountID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.operator == nil {
		return entity.AccountID{}, false
	}
	return c.operator.AccountID, true
}

// SignWithOperator signs the given bytes with the operator key and returns
// the signature together with the operator's public key.
func (c *Client) SignWithOperator(message []byte) ([]byte, keys.PublicKey, error) {
	c.mu.RLock()
	op := c.operator
	c.mu.RUnlock()
	if op == nil {
		return nil, nil, errors.New("no operator configured")
	}
	sig, err := op.Key.Sign(message)
	if err != nil {
		return nil, nil, fmt.Errorf("operator sign: %w", err)
	}
	return sig, op.Key.PublicKey(), nil
}

// GenerateTransactionID mints a fresh transaction id paid by the operator
// account. It fails when no operator is configured: a transaction id names
// its payer.
func (c *Client) GenerateTransactionID() (entity.TransactionID, error) {
	c.mu.RLock()
	op := c.operator
	c.mu.RUnlock()
	if op == nil {
		return entity.TransactionID{}, errors.New("no operator configured")
	}
	return entity.GenerateTransactionID(op.AccountID), nil
}

// SetDefaultMaxQueryPayment caps the payment the SDK attaches to paid
// queries without an explicit per-call limit. Negative amounts are rejected.
func (c *Client) SetDefaultMaxQueryPayment(limit hbar.Hbar) error {
	if limit.IsNegative() {
		return fmt.Errorf("max query payment must not be negative, got %s", limit)
	}
	c.mu.Lock()
	c.maxQueryPayment = limit
	c.mu.Unlock()
	return nil
}

// DefaultMaxQueryPayment returns the client-wide query payment cap.
func (c *Client) DefaultMaxQueryPayment() hbar.Hbar {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxQueryPayment
}

// SetMaxAttempts bounds the submit-and-retry loop per operation.
func (c *Client) SetMaxAttempts(n int) error {
	if n < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", n)
	}
	c.mu.Lock()
	c.maxAttempts = n
	c.mu.Unlock()
	return nil
}

// MaxAttempts returns the per-operation attempt budget.
func (c *Client) MaxAttempts() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxAttempts
}

// Timeouts returns the client's effective timeout set.
func (c *Client) Timeouts() config.Timeouts {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeouts
}

// SetTimeouts replaces the timeout set, applying defaults to zero fields.
func (c *Client) SetTimeouts(t config.Timeouts) {
	c.mu.Lock()
	c.timeouts = t.WithDefaults()
	c.mu.Unlock()
}

// Network returns the underlying node registry.
func (c *Client) Network() *network.Network { return c.net }

// SetTransportSecurity toggles TLS on consensus-node channels.
func (c *Client) SetTransportSecurity(enabled bool) {
	c.net.SetTransportSecurity(enabled)
}

// SetVerifyCertificates toggles server certificate verification under TLS.
func (c *Client) SetVerifyCertificates(verify bool) {
	c.net.SetVerifyCertificates(verify)
}

// SetTLSRootCertificates installs custom PEM roots for TLS channels.
func (c *Client) SetTLSRootCertificates(pem []byte) {
	c.net.SetTLSRootCertificates(pem)
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Close releases the client's network channels. Safe to call more than
// once; operations issued after Close fail.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		c.net.Close()
	})
}
