package stream

import "context"

// StreamConsumer serves search requests from a message stream. Setup creates
// the consumer group, Start blocks until ctx is cancelled, Stop releases the
// connection.
type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}
