package triplet

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/rng"
)

// DefaultPerLabel is the number of consecutive triplets sharing one anchor.
const DefaultPerLabel = 40

// Option customizes a Builder.
type Option func(*config)

type config struct {
	perLabel int
	duration float64
	tracks   bool
	labels   bool
	rng      *rand.Rand
	logger   *zap.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{
		perLabel: DefaultPerLabel,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rng.New(0)
	}
	return cfg
}

func (c config) validate(method string) error {
	if c.perLabel <= 0 {
		return errs.Invalidf(method, "perLabel must be > 0, got %d", c.perLabel)
	}
	if c.duration < 0 {
		return errs.Invalidf(method, "duration must be >= 0, got %g", c.duration)
	}
	return nil
}

// WithPerLabel sets how many triplets share one anchor (default 40).
func WithPerLabel(n int) Option {
	return func(c *config) { c.perLabel = n }
}

// WithDuration drops entries shorter than d and crops every triplet member
// to d seconds. d == 0 (default) keeps whole segments.
func WithDuration(d float64) Option {
	return func(c *config) { c.duration = d }
}

// WithTracks declares the track position of every member.
func WithTracks(yes bool) Option {
	return func(c *config) { c.tracks = yes }
}

// WithLabels declares the label position of every member.
func WithLabels(yes bool) Option {
	return func(c *config) { c.labels = yes }
}

// WithRand provides the random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("triplet: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed seeds a fresh random source (seed 0 ⇒ rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rng.New(seed) }
}

// WithLogger attaches a logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("triplet: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}
