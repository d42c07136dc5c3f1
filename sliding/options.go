package sliding

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/fragments/record"
)

// Defaults inherited from the reference speaker-embedding setup.
const (
	DefaultDuration = 3.2 // seconds
	DefaultStep     = 0.8 // seconds
)

// Option customizes a Slicer.
type Option func(*config)

type config struct {
	minDuration float64
	variable    bool
	field       record.Field
	probe       record.Prober
	logger      *zap.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		field:  record.FieldAnnotation,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMinDuration enables variable-length mode: the tail window of an
// interval is clipped to the interval end and kept when at least m long.
// New rejects m ≤ 0 or m > duration.
func WithMinDuration(m float64) Option {
	return func(c *config) {
		c.minDuration = m
		c.variable = true
	}
}

// WithField selects the Record field FromRecord segments.
// Defaults to record.FieldAnnotation.
func WithField(f record.Field) Option {
	return func(c *config) { c.field = f }
}

// WithProber sets the duration probe used for media fields.
func WithProber(p record.Prober) Option {
	return func(c *config) { c.probe = p }
}

// WithLogger attaches a logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("sliding: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}
