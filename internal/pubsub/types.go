package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event published via pubsub. The event type
// doubles as the topic name.
type EventType string

const (
	EventRosterChanged    EventType = "roster-changed"
	EventSeasonRolledOver EventType = "season-rolled-over"
)

// Envelope wraps every published payload with an id and type so push
// consumers can route without decoding the payload first.
type Envelope struct {
	ID         string    `msgpack:"id"`
	Type       EventType `msgpack:"type"`
	OccurredAt int64     `msgpack:"occurred_at"`
	Payload    []byte    `msgpack:"payload"`
}
