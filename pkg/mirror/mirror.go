// Package mirror subscribes to consensus topic messages streamed by a
// mirror node. Mirror reads do not touch consensus nodes and are free.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/shamank/hiero-sdk-go/internal/hapi"
	"github.com/shamank/hiero-sdk-go/pkg/client"
	"github.com/shamank/hiero-sdk-go/pkg/entity"
)

// TopicMessage is one message a topic reached consensus on.
type TopicMessage struct {
	ConsensusTimestamp time.Time
	Contents           []byte
	RunningHash        []byte
	SequenceNumber     uint64
}

// TopicMessageQuery describes a topic subscription: which topic, from when,
// and how many messages at most.
type TopicMessageQuery struct {
	topicID   entity.TopicID
	startTime *time.Time
	endTime   *time.Time
	limit     uint64
}

// NewTopicMessageQuery builds an empty subscription query.
func NewTopicMessageQuery() *TopicMessageQuery {
	return &TopicMessageQuery{}
}

// SetTopicID selects the topic to follow.
func (q *TopicMessageQuery) SetTopicID(id entity.TopicID) *TopicMessageQuery {
	q.topicID = id
	return q
}

// SetStartTime replays messages from the given consensus time onward.
// Without it the subscription starts at the current tip.
func (q *TopicMessageQuery) SetStartTime(t time.Time) *TopicMessageQuery {
	q.startTime = &t
	return q
}

// SetEndTime stops the subscription at the given consensus time.
func (q *TopicMessageQuery) SetEndTime(t time.Time) *TopicMessageQuery {
	q.endTime = &t
	return q
}

// SetLimit caps how many messages the server streams before completing.
func (q *TopicMessageQuery) SetLimit(limit uint64) *TopicMessageQuery {
	q.limit = limit
	return q
}

// SubscriptionHandle cancels a running subscription.
type SubscriptionHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Unsubscribe stops the stream and waits for the receive loop to finish.
func (h *SubscriptionHandle) Unsubscribe() {
	h.cancel()
	<-h.done
}

// Done is closed once the receive loop has stopped, whether by Unsubscribe,
// stream completion or error.
func (h *SubscriptionHandle) Done() <-chan struct{} { return h.done }

var subscribeStreamDesc = grpc.StreamDesc{
	StreamName:    "subscribeTopic",
	ServerStreams: true,
}

// Subscribe opens the stream against the client's mirror node and delivers
// each message to onNext from a dedicated goroutine. onError, when not nil,
// observes the terminal error of a stream that did not end cleanly.
func (q *TopicMessageQuery) Subscribe(ctx context.Context, c *client.Client, onNext func(TopicMessage), onError func(error)) (*SubscriptionHandle, error) {
	if onNext == nil {
		return nil, errors.New("an onNext callback is required")
	}

	conn, err := c.Network().MirrorChannel()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	stream, err := conn.NewStream(ctx, &subscribeStreamDesc, hapi.MethodSubscribeTopic)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("open mirror stream: %w", err)
	}

	req := &hapi.ConsensusTopicQuery{
		TopicID: hapi.NewTopicID(q.topicID.Shard, q.topicID.Realm, q.topicID.Num),
		Limit:   q.limit,
	}
	if q.startTime != nil {
		req.ConsensusStartTime = hapi.TimestampFrom(*q.startTime)
	}
	if q.endTime != nil {
		req.ConsensusEndTime = hapi.TimestampFrom(*q.endTime)
	}
	if err := stream.SendMsg(req); err != nil {
		cancel()
		return nil, fmt.Errorf("send subscription: %w", err)
	}
	if err := stream.CloseSend(); err != nil {
		cancel()
		return nil, fmt.Errorf("close send side: %w", err)
	}

	handle := &SubscriptionHandle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(handle.done)
		defer cancel()
		for {
			resp := &hapi.ConsensusTopicResponse{}
			if err := stream.RecvMsg(resp); err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					return
				}
				zap.L().Warn("mirror subscription ended", zap.Error(err))
				if onError != nil {
					onError(err)
				}
				return
			}
			msg := TopicMessage{
				Contents:       resp.Message,
				RunningHash:    resp.RunningHash,
				SequenceNumber: resp.SequenceNumber,
			}
			if resp.ConsensusTimestamp != nil {
				msg.ConsensusTimestamp = resp.ConsensusTimestamp.AsTime()
			}
			onNext(msg)
		}
	}()
	return handle, nil
}
