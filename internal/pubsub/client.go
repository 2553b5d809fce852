package pubsub

import (
	"context"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new PubSubClient for the given GCP project.
func New(projectID string) PubSubClient {
	ctx := context.Background()
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create pubsub client: %v", err)
	}
	teardown := func() {
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		teardown: teardown,
	}
}

func (c *client) Publish(event EventType, payload any) error {
	ctx := context.Background()

	payloadData, err := msgpack.Marshal(payload)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err, "event", event)
		return err
	}
	envelope := Envelope{
		ID:         uuid.NewString(),
		Type:       event,
		OccurredAt: time.Now().Unix(),
		Payload:    payloadData,
	}
	data, err := msgpack.Marshal(envelope)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err, "event", event)
		return err
	}

	message := &pubsub.Message{
		Data: data,
	}
	result := c.client.Topic(string(event)).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", event)
		return err
	}
	log.Info("Published event", "event", event, "id", envelope.ID, "serverID", serverID)
	return nil
}

func (c *client) ProcessMessage(data []byte) (*Envelope, error) {
	var envelope Envelope
	if err := msgpack.Unmarshal(data, &envelope); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return nil, err
	}
	return &envelope, nil
}

func (c *client) DecodePayload(env *Envelope, out any) error {
	if err := msgpack.Unmarshal(env.Payload, out); err != nil {
		log.Error("MessagePack payload unmarshal error", "error", err, "event", env.Type)
		return err
	}
	return nil
}
