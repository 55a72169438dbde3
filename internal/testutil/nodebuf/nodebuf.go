// Package nodebuf provides an in-memory, scriptable consensus node for
// tests. Each node serves a bufconn listener and answers any service method
// from a per-method queue of scripted replies, recording the raw request
// bytes it saw. A transport-level failure is scripted as a reply carrying an
// error.
package nodebuf

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
)

const bufSize = 1024 * 1024

// Reply is one scripted answer. Msg answers a unary call, Stream answers a
// server-streaming call and Err fails the call at the RPC layer. Hold keeps
// a streaming call open after its messages until the client goes away.
type Reply struct {
	Msg    hapi.Message
	Stream []hapi.Message
	Err    error
	Hold   bool
}

// Node is one in-memory consensus node.
type Node struct {
	Listener *bufconn.Listener
	srv      *grpc.Server

	mu      sync.Mutex
	scripts map[string][]Reply
	calls   map[string]int
	reqs    map[string][][]byte
}

// raw carries undecoded wire bytes through the hapi codec.
type raw []byte

func (r *raw) MarshalWire() ([]byte, error) { return *r, nil }
func (r *raw) UnmarshalWire(b []byte) error { *r = append((*r)[:0], b...); return nil }

// Start spins up a node on a fresh bufconn listener. The server answers
// every method through the script queue; an unscripted call fails loudly.
func Start() *Node {
	n := &Node{
		Listener: bufconn.Listen(bufSize),
		scripts:  map[string][]Reply{},
		calls:    map[string]int{},
		reqs:     map[string][][]byte{},
	}
	n.srv = grpc.NewServer(grpc.UnknownServiceHandler(n.handle))
	go func() { _ = n.srv.Serve(n.Listener) }()
	return n
}

// Stop tears the server down.
func (n *Node) Stop() { n.srv.Stop() }

// Script queues replies for the given full method path. Replies are consumed
// in order; the last one sticks for any further calls.
func (n *Node) Script(method string, replies ...Reply) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scripts[method] = append(n.scripts[method], replies...)
}

// Calls returns how many times the given method was invoked.
func (n *Node) Calls(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

// Requests returns the raw request bytes recorded for the given method.
func (n *Node) Requests(method string) [][]byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([][]byte, len(n.reqs[method]))
	copy(out, n.reqs[method])
	return out
}

func (n *Node) next(method string, body []byte) (Reply, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls[method]++
	n.reqs[method] = append(n.reqs[method], body)

	queue := n.scripts[method]
	if len(queue) == 0 {
		return Reply{}, fmt.Errorf("no scripted reply for %s (call %d)", method, n.calls[method])
	}
	rep := queue[0]
	if len(queue) > 1 {
		n.scripts[method] = queue[1:]
	}
	return rep, nil
}

func (n *Node) handle(_ interface{}, stream grpc.ServerStream) error {
	method, _ := grpc.MethodFromServerStream(stream)

	var req raw
	if err := stream.RecvMsg(&req); err != nil {
		return err
	}

	rep, err := n.next(method, req)
	if err != nil {
		return err
	}
	if rep.Err != nil {
		return rep.Err
	}
	if rep.Stream != nil || rep.Hold {
		for _, msg := range rep.Stream {
			if err := stream.SendMsg(msg); err != nil {
				return err
			}
		}
		if rep.Hold {
			<-stream.Context().Done()
		}
		return nil
	}
	return stream.SendMsg(rep.Msg)
}

// Dialer builds a context dialer that routes passthrough addresses to the
// given nodes. Use the returned option together with passthrough:/// node
// addresses in the registry under test.
func Dialer(nodes map[string]*Node) grpc.DialOption {
	return grpc.WithContextDialer(func(_ context.Context, addr string) (net.Conn, error) {
		name := strings.TrimPrefix(addr, "passthrough:///")
		node, ok := nodes[name]
		if !ok {
			return nil, fmt.Errorf("no test node for address %q", addr)
		}
		return node.Listener.Dial()
	})
}

// Address returns the passthrough target for the given node name, suitable
// as a registry node address.
func Address(name string) string { return "passthrough:///" + name }
