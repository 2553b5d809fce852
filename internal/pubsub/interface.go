package pubsub

// PubSubClient publishes tracker events and decodes push-delivered messages.
type PubSubClient interface {
	// Publish wraps payload in an Envelope and publishes it to the topic
	// named after the event type.
	Publish(event EventType, payload any) error
	// ProcessMessage decodes a push-delivered message body into an Envelope.
	ProcessMessage(data []byte) (*Envelope, error)
	// DecodePayload decodes an envelope payload into the provided pointer.
	DecodePayload(env *Envelope, out any) error
}
