package balanced

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

// Sampler yields per-label runs of (segment, label) items.
type Sampler struct {
	perLabel int
	cfg      config
}

// New returns a Sampler capped at perLabel items per label and pass.
// Returns ErrInvalidParameter for perLabel <= 0 or a negative duration.
func New(perLabel int, opts ...Option) (*Sampler, error) {
	if perLabel <= 0 {
		return nil, errs.Invalidf("balanced.New", "perLabel must be > 0, got %d", perLabel)
	}
	cfg := newConfig(opts...)
	if cfg.duration < 0 {
		return nil, errs.Invalidf("balanced.New", "duration must be >= 0, got %g", cfg.duration)
	}
	return &Sampler{perLabel: perLabel, cfg: cfg}, nil
}

// PerLabel returns the per-label cap.
func (s *Sampler) PerLabel() int { return s.perLabel }

func (s *Sampler) shape() signature.ItemShape {
	return signature.ItemShape{Segment: signature.SegmentShape{Duration: s.cfg.duration}, Label: true}
}

// Signature declares (segment, label).
func (s *Sampler) Signature() signature.Node { return s.shape().Node() }

// Fields flattens a yielded item for signature.Conform.
func (s *Sampler) Fields(it timeline.TrackItem) []any { return s.shape().Fields(it) }

// Iterate returns the per-label stream over a Labeled source. Items carry
// Segment and Label; Track is left empty.
func (s *Sampler) Iterate(src source.Source) (stream.Stream[timeline.TrackItem], error) {
	if err := source.Require("balanced.Iterate", src, source.Labeled); err != nil {
		return nil, err
	}
	ann := src.Annotation()
	labels := ann.Labels()
	s.cfg.logger.Debug("balanced sampler ready",
		zap.Int("labels", len(labels)),
		zap.Int("per_label", s.perLabel),
		zap.Bool("repeat", s.cfg.repeat),
	)
	return &runs{
		ann:      ann,
		labels:   labels,
		perLabel: s.perLabel,
		cfg:      s.cfg,
		rng:      rng.Derive(s.cfg.rng, 0),
	}, nil
}

// FromRecord samples the annotation of rec.
func (s *Sampler) FromRecord(rec *record.Record) (stream.Stream[timeline.TrackItem], error) {
	src, err := rec.Lookup(record.FieldAnnotation, nil)
	if err != nil {
		return nil, errs.Wrapf(err, "balanced.FromRecord")
	}
	return s.Iterate(src)
}

// runs is the stream state: the label cursor and the current label's run.
type runs struct {
	ann      *timeline.Annotation
	labels   []timeline.Label
	perLabel int
	cfg      config
	rng      *rand.Rand

	next   int // index of the next label to open
	label  timeline.Label
	cur    stream.Stream[timeline.Segment]
	count  int
	active int // labels that yielded during the current pass
}

func (r *runs) TryNext() (timeline.TrackItem, bool) {
	for {
		if r.cur != nil && r.count < r.perLabel {
			if seg, ok := r.cur.TryNext(); ok {
				if r.count == 0 {
					r.active++
				}
				r.count++
				return timeline.TrackItem{Segment: seg, Label: r.label}, true
			}
		}
		if !r.open() {
			return timeline.TrackItem{}, false
		}
	}
}

// open moves to the next label, leaving cur nil when that label is skipped.
// It reports false once the stream is over.
//
// A new pass only starts when the previous one had at least two yielding
// labels; with a single one, its runs would join across passes.
func (r *runs) open() bool {
	if r.next == len(r.labels) {
		if !r.cfg.repeat || r.active < 2 {
			if r.cfg.repeat {
				r.cfg.logger.Debug("repeat stopped",
					zap.Int("yielding_labels", r.active),
				)
			}
			return false
		}
		r.next, r.active = 0, 0
	}
	label := r.labels[r.next]
	r.next++
	r.cur, r.label, r.count = nil, label, 0

	sub, err := uniform.New(
		uniform.WithDuration(r.cfg.duration),
		uniform.WithWeighted(),
		uniform.WithRand(rng.Derive(r.rng, uint64(r.next))),
		uniform.WithLogger(r.cfg.logger),
	)
	if err == nil {
		r.cur, err = sub.Iterate(source.FromTimeline(r.ann.LabelTimeline(label)))
	}
	if err != nil {
		r.cur = nil
		r.cfg.logger.Debug("label skipped",
			zap.String("label", string(label)),
			zap.Error(err),
		)
	}
	return true
}
