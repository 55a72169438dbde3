package network

import (
	"crypto/tls"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
)

var mirrorTLSPorts = []string{":443", ":50212"}

// MirrorChannel returns the shared channel to the configured mirror node,
// dialing it on first use. TLS is inferred from the endpoint: the hosted
// mirror ports (443, 50212) terminate TLS, anything else is assumed to be a
// local plaintext listener.
func (n *Network) MirrorChannel() (*grpc.ClientConn, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil, fmt.Errorf("network %q is closed", n.name)
	}
	if n.mirror == "" {
		return nil, fmt.Errorf("network %q has no mirror endpoint", n.name)
	}
	if n.mirrorConn != nil {
		return n.mirrorConn, nil
	}

	cred := grpc.WithTransportCredentials(insecure.NewCredentials())
	for _, port := range mirrorTLSPorts {
		if strings.HasSuffix(n.mirror, port) {
			cred = grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12}))
			break
		}
	}
	opts := []grpc.DialOption{
		cred,
		grpc.WithDefaultCallOptions(grpc.ForceCodec(hapi.Codec{})),
	}
	opts = append(opts, n.dialOpts...)

	conn, err := grpc.NewClient(n.mirror, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial mirror %s: %w", n.mirror, err)
	}
	n.mirrorConn = conn
	return conn, nil
}
