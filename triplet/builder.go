package triplet

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/rng"
	"github.com/katalvlaran/fragments/signature"
	"github.com/katalvlaran/fragments/source"
	"github.com/katalvlaran/fragments/stream"
	"github.com/katalvlaran/fragments/timeline"
	"github.com/katalvlaran/fragments/uniform"
)

// Triplet is one (anchor, positive, negative) sample.
type Triplet struct {
	Anchor   timeline.TrackItem `json:"anchor" yaml:"anchor"`
	Positive timeline.TrackItem `json:"positive" yaml:"positive"`
	Negative timeline.TrackItem `json:"negative" yaml:"negative"`
}

// Builder emits label-bounded triplet streams.
type Builder struct {
	cfg config
}

// New returns a Builder. Returns ErrInvalidParameter for perLabel <= 0 or a
// negative duration.
func New(opts ...Option) (*Builder, error) {
	cfg := newConfig(opts...)
	if err := cfg.validate("triplet.New"); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg}, nil
}

// PerLabel returns the per-anchor cap.
func (b *Builder) PerLabel() int { return b.cfg.perLabel }

// Item describes one triplet member; pairs reuses it.
func (b *Builder) Item() signature.ItemShape {
	return signature.ItemShape{
		Segment: signature.SegmentShape{Duration: b.cfg.duration},
		Track:   b.cfg.tracks,
		Label:   b.cfg.labels,
	}
}

// Signature declares three identical member positions.
func (b *Builder) Signature() signature.Node { return signature.Repeat(3, b.Item().Node()) }

// Fields flattens a triplet for signature.Conform.
func (b *Builder) Fields(t Triplet) []any {
	item := b.Item()
	out := item.Fields(t.Anchor)
	out = append(out, item.Fields(t.Positive)...)
	return append(out, item.Fields(t.Negative)...)
}

// Iterate returns the triplet stream of a Labeled source.
func (b *Builder) Iterate(src source.Source) (stream.Stream[Triplet], error) {
	if err := source.Require("triplet.Iterate", src, source.Labeled); err != nil {
		return nil, err
	}
	d := b.cfg.duration
	ann := src.Annotation().Filter(func(it timeline.TrackItem) bool {
		return !it.Segment.Empty() && it.Segment.Duration() >= d
	})
	labels := ann.Labels()
	if len(labels) < 2 {
		b.cfg.logger.Debug("not enough labels for triplets",
			zap.Int("labels", len(labels)),
			zap.Float64("duration", d),
		)
		return stream.Empty[Triplet](), nil
	}
	ts := &triplets{
		ann:    ann,
		labels: labels,
		cfg:    b.cfg,
		rng:    rng.Derive(b.cfg.rng, 0),
	}
	ts.draw = ts.tracks
	return ts, nil
}

// FromRecord builds triplets from the annotation of rec.
func (b *Builder) FromRecord(rec *record.Record) (stream.Stream[Triplet], error) {
	src, err := rec.Lookup(record.FieldAnnotation, nil)
	if err != nil {
		return nil, errs.Wrapf(err, "triplet.FromRecord")
	}
	return b.Iterate(src)
}

// triplets is the stream state for one Iterate call.
type triplets struct {
	ann    *timeline.Annotation
	labels []timeline.Label
	cfg    config
	rng    *rand.Rand
	// draw opens the track stream of one restriction.
	draw func(ann *timeline.Annotation) stream.Stream[timeline.TrackItem]

	next     int
	label    timeline.Label
	pos, neg stream.Stream[timeline.TrackItem]
	anchor   timeline.TrackItem
	count    int
	active   bool
}

func (t *triplets) TryNext() (Triplet, bool) {
	for {
		if t.active && t.count < t.cfg.perLabel {
			p, okP := t.pos.TryNext()
			n, okN := t.neg.TryNext()
			if okP && okN {
				t.count++
				return Triplet{
					Anchor:   t.crop(t.anchor),
					Positive: t.crop(p),
					Negative: t.crop(n),
				}, true
			}
			t.cfg.logger.Debug("label exhausted",
				zap.String("label", string(t.label)),
				zap.Int("triplets", t.count),
				zap.Bool("positives", okP),
				zap.Bool("negatives", okN),
			)
		}
		t.active = false
		if t.next == len(t.labels) {
			return Triplet{}, false
		}
		t.open(t.labels[t.next])
		t.next++
	}
}

// open prepares the positive and negative streams of label and draws its
// anchor.
func (t *triplets) open(label timeline.Label) {
	t.label, t.count = label, 0
	t.pos = t.draw(t.ann.Subset([]timeline.Label{label}, false))
	t.neg = t.draw(t.ann.Subset([]timeline.Label{label}, true))
	t.anchor, t.active = t.pos.TryNext()
}

// tracks returns an infinite track stream over ann, or an empty one when
// nothing in ann is eligible.
func (t *triplets) tracks(ann *timeline.Annotation) stream.Stream[timeline.TrackItem] {
	sampler, err := uniform.NewTracks(
		uniform.WithRand(rng.Derive(t.rng, uint64(t.next))),
		uniform.WithLogger(t.cfg.logger),
	)
	if err != nil {
		return stream.Empty[timeline.TrackItem]()
	}
	s, err := sampler.Iterate(source.FromAnnotation(ann))
	if err != nil {
		return stream.Empty[timeline.TrackItem]()
	}
	return s
}

func (t *triplets) crop(it timeline.TrackItem) timeline.TrackItem {
	if t.cfg.duration > 0 {
		it.Segment = uniform.Crop(t.rng, it.Segment, t.cfg.duration)
	}
	return it
}
