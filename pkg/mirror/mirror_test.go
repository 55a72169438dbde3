package mirror

import (
	"context"
	"testing"
	"time"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/internal/testutil/nodebuf"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
	"github.com/shamank/hiero-sdk-go/pkg/network"
)

func harness(t *testing.T) (*client.Client, *nodebuf.Node) {
	t.Helper()

	mirrorNode := nodebuf.Start()
	t.Cleanup(mirrorNode.Stop)

	net := network.ForNodes("buftest", map[string]entity.AccountID{
		nodebuf.Address("a"): entity.NewAccountID(0, 0, 3),
	}, nodebuf.Address("m"))
	net.SetDialOptions(nodebuf.Dialer(map[string]*nodebuf.Node{"m": mirrorNode}))

	c := client.ForNetwork(net)
	t.Cleanup(c.Close)
	return c, mirrorNode
}

func topicMessage(seq uint64, contents string) hapi.Message {
	return &hapi.ConsensusTopicResponse{
		ConsensusTimestamp: hapi.TimestampFrom(time.Unix(1_700_000_000, int64(seq))),
		Message:            []byte(contents),
		SequenceNumber:     seq,
	}
}

// TestSubscribe streams every scripted message to the callback and
// completes when the server ends the stream.
func TestSubscribe(t *testing.T) {
	c, mirrorNode := harness(t)
	mirrorNode.Script(hapi.MethodSubscribeTopic, nodebuf.Reply{Stream: []hapi.Message{
		topicMessage(1, "first"),
		topicMessage(2, "second"),
	}})

	received := make(chan TopicMessage, 2)
	handle, err := NewTopicMessageQuery().
		SetTopicID(entity.NewTopicID(0, 0, 9000)).
		SetLimit(2).
		Subscribe(context.Background(), c, func(msg TopicMessage) {
			received <- msg
		}, nil)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	select {
	case <-handle.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not complete")
	}

	close(received)
	var got []TopicMessage
	for msg := range received {
		got = append(got, msg)
	}
	if len(got) != 2 {
		t.Fatalf("messages = %d, want 2", len(got))
	}
	if string(got[0].Contents) != "first" || got[0].SequenceNumber != 1 {
		t.Errorf("first message = %+v", got[0])
	}
	if string(got[1].Contents) != "second" || got[1].SequenceNumber != 2 {
		t.Errorf("second message = %+v", got[1])
	}

	// The server saw the topic and limit we asked for.
	reqs := mirrorNode.Requests(hapi.MethodSubscribeTopic)
	if len(reqs) != 1 {
		t.Fatalf("captured subscriptions = %d", len(reqs))
	}
	sub := &hapi.ConsensusTopicQuery{}
	if err := sub.UnmarshalWire(reqs[0]); err != nil {
		t.Fatal(err)
	}
	if sub.TopicID == nil || sub.TopicID.Num != 9000 {
		t.Errorf("topic = %+v", sub.TopicID)
	}
	if sub.Limit != 2 {
		t.Errorf("limit = %d", sub.Limit)
	}
}

// TestSubscribe_Unsubscribe cancels a stream that would otherwise stay
// open.
func TestSubscribe_Unsubscribe(t *testing.T) {
	c, mirrorNode := harness(t)
	// One message, then the server holds the stream open until the client
	// cancels.
	mirrorNode.Script(hapi.MethodSubscribeTopic, nodebuf.Reply{
		Stream: []hapi.Message{topicMessage(1, "only")},
		Hold:   true,
	})

	received := make(chan TopicMessage, 1)
	handle, err := NewTopicMessageQuery().
		SetTopicID(entity.NewTopicID(0, 0, 9000)).
		Subscribe(context.Background(), c, func(msg TopicMessage) {
			received <- msg
		}, nil)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}

	done := make(chan struct{})
	go func() {
		handle.Unsubscribe()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Unsubscribe did not return")
	}
}

// TestSubscribe_RequiresCallback rejects a nil onNext.
func TestSubscribe_RequiresCallback(t *testing.T) {
	c, _ := harness(t)
	if _, err := NewTopicMessageQuery().Subscribe(context.Background(), c, nil, nil); err == nil {
		t.Fatal("nil onNext should be rejected")
	}
}
