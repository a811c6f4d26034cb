package pubsub

// PubSubClient publishes ledger change events.
type PubSubClient interface {
	SendMessage(topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close()
}
