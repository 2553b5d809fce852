package pubsub

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

var _ PubSubClient = (*MockClient)(nil)

// MockClient is a mock implementation of the PubSubClient interface for
// testing. Published envelopes are recorded instead of sent.
type MockClient struct {
	mu sync.Mutex

	PublishFunc func(event EventType, payload any) error

	// Call records
	PublishedEvents []EventType
	Published       []Envelope
}

// NewMock creates a new mock instance.
func NewMock() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Publish(event EventType, payload any) error {
	payloadData, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.PublishedEvents = append(m.PublishedEvents, event)
	m.Published = append(m.Published, Envelope{
		ID:         uuid.NewString(),
		Type:       event,
		OccurredAt: time.Now().Unix(),
		Payload:    payloadData,
	})
	fn := m.PublishFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(event, payload)
	}
	return nil
}

func (m *MockClient) ProcessMessage(data []byte) (*Envelope, error) {
	var envelope Envelope
	if err := msgpack.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

func (m *MockClient) DecodePayload(env *Envelope, out any) error {
	return msgpack.Unmarshal(env.Payload, out)
}
