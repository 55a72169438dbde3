package hapi

import "google.golang.org/protobuf/encoding/protowire"

// ConsensusTopicQuery opens a mirror-node subscription to a topic's message
// stream. Zero time bounds mean "from now" / "no end"; zero limit means
// unbounded.
type ConsensusTopicQuery struct {
	TopicID            *TopicID
	ConsensusStartTime *Timestamp
	ConsensusEndTime   *Timestamp
	Limit              uint64
}

func (q *ConsensusTopicQuery) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, q.TopicID)
	if err != nil {
		return nil, err
	}
	if out, err = appendMessageField(out, 2, q.ConsensusStartTime); err != nil {
		return nil, err
	}
	if out, err = appendMessageField(out, 3, q.ConsensusEndTime); err != nil {
		return nil, err
	}
	return appendVarintField(out, 4, q.Limit), nil
}

func (q *ConsensusTopicQuery) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		switch num {
		case 1:
			q.TopicID = &TopicID{}
			return unmarshalMessageField(value, q.TopicID)
		case 2:
			q.ConsensusStartTime = &Timestamp{}
			return unmarshalMessageField(value, q.ConsensusStartTime)
		case 3:
			q.ConsensusEndTime = &Timestamp{}
			return unmarshalMessageField(value, q.ConsensusEndTime)
		case 4:
			v, err := fieldVarint(value)
			if err != nil {
				return err
			}
			q.Limit = v
		}
		return nil
	})
}

// ConsensusTopicResponse is one streamed topic message from the mirror node.
type ConsensusTopicResponse struct {
	ConsensusTimestamp *Timestamp
	Message            []byte
	RunningHash        []byte
	SequenceNumber     uint64
}

func (r *ConsensusTopicResponse) MarshalWire() ([]byte, error) {
	out, err := appendMessageField(nil, 1, r.ConsensusTimestamp)
	if err != nil {
		return nil, err
	}
	out = appendBytesField(out, 2, r.Message)
	out = appendBytesField(out, 3, r.RunningHash)
	return appendVarintField(out, 4, r.SequenceNumber), nil
}

func (r *ConsensusTopicResponse) UnmarshalWire(data []byte) error {
	return walk(data, func(num protowire.Number, _ protowire.Type, value []byte) error {
		var err error
		switch num {
		case 1:
			r.ConsensusTimestamp = &Timestamp{}
			return unmarshalMessageField(value, r.ConsensusTimestamp)
		case 2:
			r.Message, err = fieldBytes(value)
		case 3:
			r.RunningHash, err = fieldBytes(value)
		case 4:
			r.SequenceNumber, err = fieldVarint(value)
		}
		return err
	})
}
