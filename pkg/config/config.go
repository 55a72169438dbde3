// Package config defines the runtime configuration for the SDK, including
// network selection, operator credentials, submission limits, debug mode,
// and operation timeouts. It also provides validation and defaulting helpers.
package config

import (
	"errors"
	"time"
)

// Config holds all SDK settings required to initialize a client.
// Use Validate to fill implicit defaults and to check for required fields.
type Config struct {
	// Network selects the target network by name: "mainnet", "testnet" or
	// "previewnet". Leave empty when Nodes is set.
	Network string `json:"network" yaml:"network"`
	// Nodes maps consensus-node endpoints ("host:port") to node account id
	// strings ("0.0.3") for a custom network. Takes precedence over Network.
	Nodes map[string]string `json:"nodes" yaml:"nodes"`
	// MirrorAddress is the mirror-node endpoint ("host:port"). For named
	// networks the hosted mirror is used when empty.
	MirrorAddress string `json:"mirror_address" yaml:"mirror_address"`
	// OperatorID is the paying account id string ("0.0.1001"). Optional if
	// you only run free queries.
	OperatorID string `json:"operator_id" yaml:"operator_id"`
	// OperatorKey is the operator's private key, DER hex or raw hex
	// (optional together with OperatorID).
	OperatorKey string `json:"operator_key" yaml:"operator_key"`
	// MaxQueryPayment caps automatic query payments, as an hbar amount
	// string ("2 ℏ"). Default: 1 ℏ.
	MaxQueryPayment string `json:"max_query_payment" yaml:"max_query_payment"`
	// MaxAttempts bounds the retry/failover loop per operation. Default: 10.
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
}

// Timeouts controls SDK operation deadlines and retry pacing.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	GRPCUnary   time.Duration // single node exchange
	Request     time.Duration // whole submit-and-retry loop
	ReceiptWait time.Duration // poll until receipt is available
	MinBackoff  time.Duration // first retry delay
	MaxBackoff  time.Duration // retry delay cap
}

// Validate normalizes the configuration by applying implicit defaults for
// MaxAttempts and MaxQueryPayment and verifies that a network is selected.
// Returns an error when neither Network nor Nodes is provided, or when an
// operator id and key are not set as a pair.
func (c *Config) Validate() error {

	if c.MaxAttempts == 0 {
		c.MaxAttempts = 10
	}
	if c.MaxAttempts < 0 {
		return errors.New("max attempts must be positive")
	}

	if c.MaxQueryPayment == "" {
		c.MaxQueryPayment = "1 ℏ"
	}

	if (c.OperatorID == "") != (c.OperatorKey == "") {
		return errors.New("operator id and operator key must be set together")
	}

	if c.Network == "" && len(c.Nodes) == 0 {
		return errors.New("a network name or a custom node map is required")
	}

	if len(c.Nodes) > 0 && c.Network == "" && c.MirrorAddress == "" {
		return errors.New("a custom network requires a mirror address")
	}

	return nil
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	GRPCUnary:   10s
//	Request:     120s
//	ReceiptWait: 90s
//	MinBackoff:  250ms
//	MaxBackoff:  8s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.GRPCUnary == 0 {
		tt.GRPCUnary = 10 * time.Second
	}
	if tt.Request == 0 {
		tt.Request = 120 * time.Second
	}
	if tt.ReceiptWait == 0 {
		tt.ReceiptWait = 90 * time.Second
	}
	if tt.MinBackoff == 0 {
		tt.MinBackoff = 250 * time.Millisecond
	}
	if tt.MaxBackoff == 0 {
		tt.MaxBackoff = 8 * time.Second
	}
	return tt
}
