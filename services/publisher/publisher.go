package publisher

// Publisher defines the interface for publishing scraped listings to an
// external consumer
type Publisher interface {
	// Publish publishes a message under the given key
	Publish(key string, message []byte) error

	// TrimStreams trims backing streams to their configured maximum length
	TrimStreams() error

	// Close closes the publisher
	Close() error
}

// NoopPublisher discards every message. It is used when no Redis address
// is configured.
type NoopPublisher struct{}

// NewNoopPublisher creates a new no-op publisher
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish discards the message
func (n *NoopPublisher) Publish(key string, message []byte) error {
	return nil
}

// TrimStreams is a no-op
func (n *NoopPublisher) TrimStreams() error {
	return nil
}

// Close is a no-op
func (n *NoopPublisher) Close() error {
	return nil
}
