package config

import (
	"testing"
	"time"
)

// TestConfigValidate_AppliesDefaults verifies that Validate applies default
// values for MaxAttempts and MaxQueryPayment when they are not explicitly set.
func TestConfigValidate_AppliesDefaults(t *testing.T) {
	cfg := &Config{
		Network: "testnet",
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if cfg.MaxAttempts != 10 {
		t.Fatalf("unexpected MaxAttempts: %d", cfg.MaxAttempts)
	}
	if cfg.MaxQueryPayment != "1 ℏ" {
		t.Fatalf("unexpected MaxQueryPayment: %s", cfg.MaxQueryPayment)
	}
}

// TestConfigValidate_RequiresNetwork verifies that Validate returns an error
// when neither a network name nor a custom node map is provided.
func TestConfigValidate_RequiresNetwork(t *testing.T) {
	cfg := &Config{}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing network selection")
	}
}

// TestConfigValidate_CustomNetwork verifies the custom node map path and its
// mirror-address requirement.
func TestConfigValidate_CustomNetwork(t *testing.T) {
	cfg := &Config{
		Nodes: map[string]string{"127.0.0.1:50211": "0.0.3"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for custom network without mirror address")
	}

	cfg.MirrorAddress = "127.0.0.1:5600"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

// TestConfigValidate_OperatorPair verifies that an operator id without a key
// (and the reverse) are rejected.
func TestConfigValidate_OperatorPair(t *testing.T) {
	cases := []struct {
		name string
		id   string
		key  string
		ok   bool
	}{
		{"both empty", "", "", true},
		{"both set", "0.0.1001", "302e020100300506032b657004220420" + "00000000000000000000000000000000" + "00000000000000000000000000000000", true},
		{"id only", "0.0.1001", "", false},
		{"key only", "", "deadbeef", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Network:     "testnet",
				OperatorID:  tc.id,
				OperatorKey: tc.key,
			}
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate returned error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// TestTimeoutsWithDefaults verifies that zero timeout values are replaced
// while explicit values are preserved.
func TestTimeoutsWithDefaults(t *testing.T) {
	tt := Timeouts{}.WithDefaults()

	if tt.GRPCUnary != 10*time.Second {
		t.Fatalf("unexpected GRPCUnary: %v", tt.GRPCUnary)
	}
	if tt.Request != 120*time.Second {
		t.Fatalf("unexpected Request: %v", tt.Request)
	}
	if tt.ReceiptWait != 90*time.Second {
		t.Fatalf("unexpected ReceiptWait: %v", tt.ReceiptWait)
	}
	if tt.MinBackoff != 250*time.Millisecond {
		t.Fatalf("unexpected MinBackoff: %v", tt.MinBackoff)
	}
	if tt.MaxBackoff != 8*time.Second {
		t.Fatalf("unexpected MaxBackoff: %v", tt.MaxBackoff)
	}

	custom := Timeouts{GRPCUnary: time.Second}.WithDefaults()
	if custom.GRPCUnary != time.Second {
		t.Fatalf("explicit GRPCUnary overridden: %v", custom.GRPCUnary)
	}
}
