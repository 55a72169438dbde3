// Package network maintains the registry of consensus nodes for a named
// network, the mirror-node endpoint, and the TLS policy applied to both. It
// owns one lazily-established, long-lived gRPC channel per node, shared by
// every operation executed through the same client, and tracks per-node
// health so the execution engine can deprioritize nodes that fail at the
// transport level.
package network

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
)

// Network is a named set of consensus nodes plus one mirror endpoint.
// Mutating methods (TLS setters) are intended for configure-before-use; the
// read paths are safe for concurrent use by independent submissions.
type Network struct {
	mu sync.RWMutex

	name       string
	nodes      []*Node
	mirror     string
	mirrorConn *grpc.ClientConn

	transportSecurity  bool
	verifyCertificates bool
	rootCertificates   []byte

	rotation uint64
	dialOpts []grpc.DialOption
	closed   bool
}

// Node is one consensus node: its payable account id and its endpoint,
// together with transport health state.
type Node struct {
	AccountID entity.AccountID
	Address   string

	mu             sync.Mutex
	conn           *grpc.ClientConn
	badAttempts    int
	unhealthyUntil time.Time
}

const (
	nodeBackoffFloor = 250 * time.Millisecond
	nodeBackoffCeil  = 8 * time.Second
)

var hostedNetworks = map[string]struct {
	nodes  map[string]uint64
	mirror string
}{
	"mainnet": {
		nodes: map[string]uint64{
			"35.237.200.180:50211": 3,
			"35.186.191.247:50211": 4,
			"35.192.2.25:50211":    5,
			"35.199.161.108:50211": 6,
		},
		mirror: "mainnet-public.mirrornode.hedera.com:443",
	},
	"testnet": {
		nodes: map[string]uint64{
			"0.testnet.hedera.com:50211": 3,
			"1.testnet.hedera.com:50211": 4,
			"2.testnet.hedera.com:50211": 5,
			"3.testnet.hedera.com:50211": 6,
		},
		mirror: "testnet.mirrornode.hedera.com:443",
	},
	"previewnet": {
		nodes: map[string]uint64{
			"0.previewnet.hedera.com:50211": 3,
			"1.previewnet.hedera.com:50211": 4,
			"2.previewnet.hedera.com:50211": 5,
		},
		mirror: "previewnet.mirrornode.hedera.com:443",
	},
}

// ForName builds the registry for one of the hosted networks
// ("mainnet", "testnet", "previewnet"). Hosted networks default to TLS with
// certificate verification enabled.
func ForName(name string) (*Network, error) {
	cfg, ok := hostedNetworks[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown network name %q", name)
	}
	nodes := make(map[string]entity.AccountID, len(cfg.nodes))
	for addr, num := range cfg.nodes {
		nodes[addr] = entity.NewAccountID(0, 0, num)
	}
	n := ForNodes(strings.ToLower(name), nodes, cfg.mirror)
	n.transportSecurity = true
	return n, nil
}

// ForNodes builds a custom registry from an explicit address → node account
// map. Custom networks default to plaintext transport; use
// SetTransportSecurity to opt in to TLS.
func ForNodes(name string, nodes map[string]entity.AccountID, mirror string) *Network {
	n := &Network{
		name:               name,
		mirror:             mirror,
		verifyCertificates: true,
	}
	// Sort for a deterministic base ordering; rotation starts from there.
	addrs := make([]string, 0, len(nodes))
	for addr := range nodes {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	for _, addr := range addrs {
		n.nodes = append(n.nodes, &Node{AccountID: nodes[addr], Address: addr})
	}
	return n
}

// Name returns the network's name.
func (n *Network) Name() string { return n.name }

// Nodes returns the registry's node list in its base order.
func (n *Network) Nodes() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Node, len(n.nodes))
	copy(out, n.nodes)
	return out
}

// MirrorAddress returns the configured mirror-node endpoint.
func (n *Network) MirrorAddress() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.mirror
}

// SetTransportSecurity enables or disables TLS for consensus-node channels.
// Existing channels are dropped so the next use redials under the new
// policy.
func (n *Network) SetTransportSecurity(enabled bool) {
	n.mu.Lock()
	n.transportSecurity = enabled
	n.mu.Unlock()
	n.resetChannels()
}

// IsTransportSecurity reports whether TLS is enabled.
func (n *Network) IsTransportSecurity() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.transportSecurity
}

// SetVerifyCertificates enables or disables server certificate verification
// when TLS is on.
func (n *Network) SetVerifyCertificates(verify bool) {
	n.mu.Lock()
	n.verifyCertificates = verify
	n.mu.Unlock()
	n.resetChannels()
}

// IsVerifyCertificates reports whether certificate verification is enabled.
func (n *Network) IsVerifyCertificates() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.verifyCertificates
}

// SetTLSRootCertificates installs custom PEM root certificates for TLS
// channels. Pass nil to revert to the system pool.
func (n *Network) SetTLSRootCertificates(pem []byte) {
	n.mu.Lock()
	n.rootCertificates = pem
	n.mu.Unlock()
	n.resetChannels()
}

// TLSRootCertificates returns the configured custom roots, or nil.
func (n *Network) TLSRootCertificates() []byte {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rootCertificates
}

// SetDialOptions appends extra gRPC dial options applied to every node
// channel. Intended for tests that need an in-memory dialer.
func (n *Network) SetDialOptions(opts ...grpc.DialOption) {
	n.mu.Lock()
	n.dialOpts = append(n.dialOpts, opts...)
	n.mu.Unlock()
	n.resetChannels()
}

// SelectNode returns the next candidate node: healthy nodes in rotating base
// order, falling back to the unhealthy node whose penalty expires soonest
// when every node is marked down. It returns an error only on an empty
// registry.
func (n *Network) SelectNode() (*Node, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.nodes) == 0 {
		return nil, fmt.Errorf("network %q has no nodes", n.name)
	}

	now := time.Now()
	start := int(n.rotation % uint64(len(n.nodes)))
	n.rotation++

	for i := 0; i < len(n.nodes); i++ {
		node := n.nodes[(start+i)%len(n.nodes)]
		if node.healthyAt(now) {
			return node, nil
		}
	}

	best := n.nodes[0]
	for _, node := range n.nodes[1:] {
		if node.penaltyExpiry().Before(best.penaltyExpiry()) {
			best = node
		}
	}
	return best, nil
}

// Deprioritize marks a node as unhealthy after a transport-level failure.
// The penalty grows exponentially with consecutive failures, capped at a few
// seconds so a recovered node returns to rotation quickly.
func (n *Network) Deprioritize(node *Node) {
	node.mu.Lock()
	defer node.mu.Unlock()
	backoff := nodeBackoffFloor << node.badAttempts
	if backoff > nodeBackoffCeil || backoff <= 0 {
		backoff = nodeBackoffCeil
	}
	node.badAttempts++
	node.unhealthyUntil = time.Now().Add(backoff)
	zap.L().Debug("node deprioritized",
		zap.String("node", node.Address),
		zap.Duration("backoff", backoff))
}

// MarkHealthy clears a node's penalty after a transport-successful exchange.
func (n *Network) MarkHealthy(node *Node) {
	node.mu.Lock()
	node.badAttempts = 0
	node.unhealthyUntil = time.Time{}
	node.mu.Unlock()
}

func (node *Node) healthyAt(now time.Time) bool {
	node.mu.Lock()
	defer node.mu.Unlock()
	return !now.Before(node.unhealthyUntil)
}

func (node *Node) penaltyExpiry() time.Time {
	node.mu.Lock()
	defer node.mu.Unlock()
	return node.unhealthyUntil
}

// ChannelFor returns the shared gRPC channel to the given node, dialing it
// lazily under the current TLS policy. Channels carry the hapi codec as the
// default call option so callers exchange wire envelopes directly.
func (n *Network) ChannelFor(node *Node) (*grpc.ClientConn, error) {
	node.mu.Lock()
	defer node.mu.Unlock()

	if node.conn != nil {
		return node.conn, nil
	}

	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return nil, fmt.Errorf("network %q is closed", n.name)
	}
	opts := []grpc.DialOption{
		n.transportCredentialsLocked(),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(hapi.Codec{})),
	}
	opts = append(opts, n.dialOpts...)
	n.mu.RUnlock()

	conn, err := grpc.NewClient(node.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial node %s: %w", node.Address, err)
	}
	node.conn = conn
	return conn, nil
}

// transportCredentialsLocked builds the dial credential option from the
// current TLS policy. Caller holds at least a read lock.
func (n *Network) transportCredentialsLocked() grpc.DialOption {
	if !n.transportSecurity {
		return grpc.WithTransportCredentials(insecure.NewCredentials())
	}
	cfg := &tls.Config{
		InsecureSkipVerify: !n.verifyCertificates, //nolint:gosec // explicit operator opt-out
	}
	if len(n.rootCertificates) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(n.rootCertificates) {
			zap.L().Warn("no usable certificates in custom TLS roots, using system pool")
		} else {
			cfg.RootCAs = pool
		}
	}
	return grpc.WithTransportCredentials(credentials.NewTLS(cfg))
}

// resetChannels drops all open node channels so the next use redials under
// the current settings.
func (n *Network) resetChannels() {
	n.mu.RLock()
	nodes := n.nodes
	n.mu.RUnlock()
	for _, node := range nodes {
		node.mu.Lock()
		if node.conn != nil {
			_ = node.conn.Close()
			node.conn = nil
		}
		node.mu.Unlock()
	}
}

// Close tears down every node channel. Safe to call more than once.
func (n *Network) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	if n.mirrorConn != nil {
		_ = n.mirrorConn.Close()
		n.mirrorConn = nil
	}
	n.mu.Unlock()
	n.resetChannels()
}
