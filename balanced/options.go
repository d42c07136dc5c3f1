package balanced

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/fragments/rng"
)

// DefaultPerLabel is the per-label cap configurations fall back to, the
// same run length triplet builders use.
const DefaultPerLabel = 40

// Option customizes a Sampler.
type Option func(*config)

type config struct {
	duration float64
	repeat   bool
	rng      *rand.Rand
	logger   *zap.Logger
}

func newConfig(opts ...Option) config {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rng.New(0)
	}
	return cfg
}

// WithDuration crops every item to d seconds; labels without a segment that
// long are skipped. d == 0 (default) yields whole segments.
func WithDuration(d float64) Option {
	return func(c *config) { c.duration = d }
}

// WithRepeat cycles the label pass forever. Repetition stops after a pass
// in which fewer than two labels yielded.
func WithRepeat() Option {
	return func(c *config) { c.repeat = true }
}

// WithRand provides the random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("balanced: WithRand(nil)")
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
		panic("balanced: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}
