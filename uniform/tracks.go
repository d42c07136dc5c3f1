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

// Tracks draws an infinite stream of (segment, track, label) items from an
// annotation: one eligible segment, then one of its tracks uniformly.
type Tracks struct {
	cfg config
}

// NewTracks returns a Tracks sampler; same validation as New.
func NewTracks(opts ...Option) (*Tracks, error) {
	cfg := newConfig(opts...)
	if err := cfg.validate("uniform.NewTracks"); err != nil {
		return nil, err
	}
	return &Tracks{cfg: cfg}, nil
}

func (t *Tracks) shape() signature.ItemShape {
	return signature.ItemShape{Segment: t.cfg.segmentShape(), Track: true, Label: t.cfg.labels}
}

// Signature declares (segment, track) or (segment, track, label).
func (t *Tracks) Signature() signature.Node { return t.shape().Node() }

// Fields flattens a yielded item for signature.Conform.
func (t *Tracks) Fields(it timeline.TrackItem) []any { return t.shape().Fields(it) }

// Iterate returns an infinite stream of items drawn from a Labeled source.
// Returns ErrUnsupportedSourceType for other kinds and ErrNoEligibleSource
// when no annotated segment is long enough.
func (t *Tracks) Iterate(src source.Source) (stream.Stream[timeline.TrackItem], error) {
	if err := source.Require("uniform.Tracks.Iterate", src, source.Labeled); err != nil {
		return nil, err
	}

	// Items are sorted by segment, so entries of one segment are adjacent.
	var segs timeline.Timeline
	var groups [][]timeline.TrackItem
	for _, it := range src.Annotation().Items() {
		if !t.cfg.eligible(it.Segment) {
			continue
		}
		if n := len(segs); n == 0 || segs[n-1] != it.Segment {
			segs = append(segs, it.Segment)
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], it)
	}
	if len(segs) == 0 {
		return nil, errs.Wrapf(errs.ErrNoEligibleSource, "uniform.Tracks.Iterate: no annotated segment lasts %g s", t.cfg.threshold())
	}
	t.cfg.logger.Debug("track sampler ready",
		zap.Int("segments", len(segs)),
		zap.Bool("weighted", t.cfg.weighted),
	)

	p := newPicker(segs, t.cfg.weighted, t.cfg.rng)
	return stream.Repeat(func() timeline.TrackItem {
		group := groups[p.pick()]
		it := group[t.cfg.rng.Intn(len(group))]
		it.Segment = t.cfg.crop(it.Segment)
		return it
	}), nil
}

// FromRecord samples the annotation of rec.
func (t *Tracks) FromRecord(rec *record.Record) (stream.Stream[timeline.TrackItem], error) {
	src, err := rec.Lookup(record.FieldAnnotation, nil)
	if err != nil {
		return nil, errs.Wrapf(err, "uniform.Tracks.FromRecord")
	}
	return t.Iterate(src)
}
