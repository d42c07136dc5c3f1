package uniform

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/signature"
	"github.com/katalvlaran/fragments/source"
	"github.com/katalvlaran/fragments/stream"
	"github.com/katalvlaran/fragments/timeline"
)

// Sampler draws an infinite stream of segments from any source kind.
type Sampler struct {
	cfg config
}

// New returns a Sampler. Returns ErrInvalidParameter for a negative
// duration, an invalid range, or both a duration and a range.
func New(opts ...Option) (*Sampler, error) {
	cfg := newConfig(opts...)
	if err := cfg.validate("uniform.New"); err != nil {
		return nil, err
	}
	return &Sampler{cfg: cfg}, nil
}

// Signature declares one segment position.
func (s *Sampler) Signature() signature.Node { return s.cfg.segmentShape().Node() }

// Fields flattens a yielded segment for signature.Conform.
func (s *Sampler) Fields(seg timeline.Segment) []any { return s.cfg.segmentShape().Fields(seg) }

// Iterate returns an infinite stream of draws from src. The eligible set is
// computed once; if it is empty, Iterate fails with ErrNoEligibleSource.
func (s *Sampler) Iterate(src source.Source) (stream.Stream[timeline.Segment], error) {
	tl, err := src.Timeline()
	if err != nil {
		return nil, errs.Wrapf(err, "uniform.Iterate")
	}
	eligible := tl.Filter(s.cfg.eligible)
	if len(eligible) == 0 {
		return nil, errs.Wrapf(errs.ErrNoEligibleSource, "uniform.Iterate: none of %d intervals lasts %g s", len(tl), s.cfg.threshold())
	}
	s.cfg.logger.Debug("uniform sampler ready",
		zap.Stringer("source", src.Kind()),
		zap.Int("candidates", len(tl)),
		zap.Int("eligible", len(eligible)),
		zap.Bool("weighted", s.cfg.weighted),
	)

	p := newPicker(eligible, s.cfg.weighted, s.cfg.rng)
	return stream.Repeat(func() timeline.Segment {
		return s.cfg.crop(eligible[p.pick()])
	}), nil
}

// FromRecord samples the configured field of rec (see WithField).
func (s *Sampler) FromRecord(rec *record.Record) (stream.Stream[timeline.Segment], error) {
	src, err := rec.Lookup(s.cfg.field, s.cfg.probe)
	if err != nil {
		return nil, errs.Wrapf(err, "uniform.FromRecord")
	}
	return s.Iterate(src)
}
