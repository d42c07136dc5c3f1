package uniform

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/rng"
	"github.com/katalvlaran/fragments/signature"
	"github.com/katalvlaran/fragments/timeline"
)

// Option customizes a Sampler or a Tracks sampler.
type Option func(*config)

type config struct {
	duration    float64
	minDuration float64
	maxDuration float64
	ranged      bool
	weighted    bool
	labels      bool
	rng         *rand.Rand
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
	if cfg.rng == nil {
		cfg.rng = rng.New(0)
	}
	return cfg
}

// validate reports meaningless option combinations.
func (c config) validate(method string) error {
	switch {
	case c.duration < 0:
		return errs.Invalidf(method, "duration must be >= 0, got %g", c.duration)
	case c.ranged && c.duration > 0:
		return errs.Invalidf(method, "fixed duration and duration range are exclusive")
	case c.ranged && !(c.minDuration > 0):
		return errs.Invalidf(method, "min duration must be > 0, got %g", c.minDuration)
	case c.ranged && c.maxDuration < c.minDuration:
		return errs.Invalidf(method, "max duration %g is below min duration %g", c.maxDuration, c.minDuration)
	}
	return nil
}

// threshold is the minimum duration an interval needs to be eligible.
func (c config) threshold() float64 {
	if c.ranged {
		return c.minDuration
	}
	return c.duration
}

// eligible reports whether seg can be sampled under c.
func (c config) eligible(seg timeline.Segment) bool {
	return !seg.Empty() && seg.Duration() >= c.threshold()
}

// crop applies the configured duration policy to a selected interval.
func (c config) crop(seg timeline.Segment) timeline.Segment {
	switch {
	case c.ranged:
		d := rng.Uniform(c.rng, c.minDuration, min(c.maxDuration, seg.Duration()))
		return Crop(c.rng, seg, d)
	case c.duration > 0:
		return Crop(c.rng, seg, c.duration)
	}
	return seg
}

func (c config) segmentShape() signature.SegmentShape {
	if c.ranged {
		return signature.SegmentShape{MinDuration: c.minDuration, MaxDuration: c.maxDuration}
	}
	return signature.SegmentShape{Duration: c.duration}
}

// WithDuration crops every draw to a random sub-interval of d seconds.
// d == 0 (default) yields whole intervals.
func WithDuration(d float64) Option {
	return func(c *config) { c.duration = d }
}

// WithDurationRange crops every draw to a random sub-interval whose
// duration is drawn uniformly from [minDuration, maxDuration], capped at
// the selected interval's duration.
func WithDurationRange(minDuration, maxDuration float64) Option {
	return func(c *config) {
		c.ranged = true
		c.minDuration, c.maxDuration = minDuration, maxDuration
	}
}

// WithWeighted selects intervals with probability proportional to their
// duration instead of uniformly.
func WithWeighted() Option {
	return func(c *config) { c.weighted = true }
}

// WithLabels declares the label position in the Tracks signature.
// Items always carry their label; this only affects Signature and Fields.
func WithLabels(yes bool) Option {
	return func(c *config) { c.labels = yes }
}

// WithRand provides the random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("uniform: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

// WithSeed seeds a fresh random source (seed 0 ⇒ rng.DefaultSeed).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rng.New(seed) }
}

// WithField selects the Record field FromRecord samples from.
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
		panic("uniform: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}
