package emitkit

import (
	"time"

	"go.uber.org/zap"
)

// Option configures an Emitter.
type Option func(*config)

// config contains configuration for an emitter.
type config struct {
	// logger receives debug-level dispatch traces and errors from
	// deferred callbacks.
	logger *zap.Logger

	// reduced disables expressions and fire-once containers, the
	// compatibility surface of the original bubbling-only engine.
	reduced bool

	// deferDelay is the delay before a deferred fire-once callback runs.
	deferDelay time.Duration
}

// defaultConfig returns sensible default configuration.
func defaultConfig() config {
	return config{
		logger:     zap.NewNop(),
		reduced:    false,
		deferDelay: time.Millisecond,
	}
}

// WithLogger sets the structured logger for the emitter.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithReducedMode disables expression and fire-once support. Dispatch
// names are taken literally (no bracket splitting), Configure returns
// ErrReducedMode, and only hierarchical bubbling remains.
func WithReducedMode() Option {
	return func(c *config) {
		c.reduced = true
	}
}

// WithDeferDelay sets the delay before a deferred fire-once callback is
// invoked. The delay exists only to decouple the callback from the
// subscriber's call stack; it defaults to one millisecond.
func WithDeferDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.deferDelay = d
		}
	}
}
