package sliding

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/signature"
	"github.com/katalvlaran/fragments/source"
	"github.com/katalvlaran/fragments/stream"
	"github.com/katalvlaran/fragments/timeline"
)

// boundaryEps absorbs float error in the window-end test.
const boundaryEps = 1e-9

// Slicer is a deterministic sliding-window segmenter. It holds no state
// between calls; every stream it returns is independent.
type Slicer struct {
	duration float64
	step     float64
	cfg      config
}

// New returns a Slicer with window duration and step (seconds).
// Returns ErrInvalidParameter when duration ≤ 0, step ≤ 0, or, in
// variable-length mode, minDuration ∉ (0, duration].
func New(duration, step float64, opts ...Option) (*Slicer, error) {
	if !(duration > 0) {
		return nil, errs.Invalidf("sliding.New", "duration must be > 0, got %g", duration)
	}
	if !(step > 0) {
		return nil, errs.Invalidf("sliding.New", "step must be > 0, got %g", step)
	}
	cfg := newConfig(opts...)
	if cfg.variable && !(cfg.minDuration > 0 && cfg.minDuration <= duration) {
		return nil, errs.Invalidf("sliding.New", "min duration must be in (0, %g], got %g", duration, cfg.minDuration)
	}
	return &Slicer{duration: duration, step: step, cfg: cfg}, nil
}

// Duration returns the window duration.
func (s *Slicer) Duration() float64 { return s.duration }

// Step returns the window step.
func (s *Slicer) Step() float64 { return s.step }

func (s *Slicer) shape() signature.SegmentShape {
	if s.cfg.variable {
		return signature.SegmentShape{MinDuration: s.cfg.minDuration, MaxDuration: s.duration}
	}
	return signature.SegmentShape{Duration: s.duration}
}

// Signature declares a segment of fixed duration, or of duration in
// [minDuration, duration] in variable-length mode.
func (s *Slicer) Signature() signature.Node { return s.shape().Node() }

// Fields flattens a yielded window for signature.Conform.
func (s *Slicer) Fields(w timeline.Segment) []any { return s.shape().Fields(w) }

// Windows segments a single interval. The stream is finite.
func (s *Slicer) Windows(seg timeline.Segment) stream.Stream[timeline.Segment] {
	k := 0
	done := false
	return stream.Func[timeline.Segment](func() (timeline.Segment, bool) {
		for !done {
			start := seg.Start + float64(k)*s.step
			end := start + s.duration
			k++
			if end <= seg.End+boundaryEps {
				return timeline.Segment{Start: start, End: end}, true
			}
			// First overrunning window: the interval's tail is exhausted.
			done = true
			if !s.cfg.variable {
				break
			}
			tail := timeline.Segment{Start: start, End: seg.End}
			if !tail.Empty() && tail.Duration() >= s.cfg.minDuration-boundaryEps {
				return tail, true
			}
		}
		return timeline.Segment{}, false
	})
}

// Iterate segments every interval of src independently and concatenates
// the windows in collection order. All source kinds are accepted.
func (s *Slicer) Iterate(src source.Source) (stream.Stream[timeline.Segment], error) {
	tl, err := src.Timeline()
	if err != nil {
		return nil, errs.Wrapf(err, "sliding.Iterate")
	}
	s.cfg.logger.Debug("sliding windows",
		zap.Stringer("source", src.Kind()),
		zap.Int("intervals", len(tl)),
		zap.Float64("duration", s.duration),
		zap.Float64("step", s.step),
		zap.Bool("variable", s.cfg.variable),
	)

	i := 0
	var cur stream.Stream[timeline.Segment]
	return stream.Func[timeline.Segment](func() (timeline.Segment, bool) {
		for {
			if cur != nil {
				if w, ok := cur.TryNext(); ok {
					return w, true
				}
			}
			if i >= len(tl) {
				return timeline.Segment{}, false
			}
			cur = s.Windows(tl[i])
			i++
		}
	}), nil
}

// FromRecord segments the configured field of rec (see WithField).
func (s *Slicer) FromRecord(rec *record.Record) (stream.Stream[timeline.Segment], error) {
	src, err := rec.Lookup(s.cfg.field, s.cfg.probe)
	if err != nil {
		return nil, errs.Wrapf(err, "sliding.FromRecord")
	}
	return s.Iterate(src)
}
