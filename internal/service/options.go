package service

import (
	"time"

	"github.com/mmynk/splitmate/internal/events"
	"github.com/mmynk/splitmate/internal/metrics"
)

type options struct {
	publisher events.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option configures a service.
type Option func(*options)

// WithPublisher sends ledger events to p. Defaults to events.Nop.
func WithPublisher(p events.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

// WithMetrics records counters and gauges on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{
		publisher: events.Nop{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = metrics.Nop()
	}
	return o
}
