package events

const (
	// defaultCapacity is the initial size hint for the handler registry map.
	defaultCapacity = 8
)

// Option configures an Event instance.
type Option func(*config)

// PanicHandler is called when a handler panics during dispatch, receiving the
// recovered panic value. When no handler is configured, the panic propagates
// to the Invoke caller.
type PanicHandler func(recovered any)

type config struct {
	capacity     int
	panicHandler PanicHandler
}

func newConfig(opts []Option) config {
	cfg := config{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithCapacity pre-sizes the handler registry for the expected number of
// registrations. Default is 8. Non-positive values are ignored.
func WithCapacity(size int) Option {
	return func(c *config) {
		if size > 0 {
			c.capacity = size
		}
	}
}

// WithPanicHandler sets a callback to be invoked when a handler panics during
// dispatch. By default panics are not recovered and unwind through the Invoke
// call that ran the handler.
func WithPanicHandler(handler PanicHandler) Option {
	return func(c *config) {
		c.panicHandler = handler
	}
}
