package broadcast

import "github.com/deeparex/Food-monitoring-System/pkg/logger"

// Option applies a configuration option to the Broadcaster.
type Option func(*Broadcaster)

// WithSubscriberBuffer sets the per-subscriber channel buffer.
func WithSubscriberBuffer(size int) Option {
	return func(b *Broadcaster) {
		if size > 0 {
			b.buffer = size
		}
	}
}

// WithLogger sets a logger for delivery diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(b *Broadcaster) {
		if l != nil {
			b.logger = l
		}
	}
}
