package timeline

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/fragments/errs"
)

// Segment is a half-open time span [Start, End) in seconds.
// The zero value is the empty segment at t=0.
type Segment struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// NewSegment validates bounds and returns the segment.
// Returns ErrInvalidParameter for NaN/Inf bounds or Start > End.
func NewSegment(start, end float64) (Segment, error) {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
		return Segment{}, errs.Invalidf("timeline.NewSegment", "bounds must be finite, got [%g, %g)", start, end)
	}
	if start > end {
		return Segment{}, errs.Invalidf("timeline.NewSegment", "start %g is after end %g", start, end)
	}
	return Segment{Start: start, End: end}, nil
}

// Duration returns End - Start.
func (s Segment) Duration() float64 { return s.End - s.Start }

// Empty reports whether the segment has no positive duration.
func (s Segment) Empty() bool { return !(s.End > s.Start) }

// Middle returns the midpoint of the segment.
func (s Segment) Middle() float64 { return 0.5 * (s.Start + s.End) }

// Contains reports whether other lies entirely within s.
func (s Segment) Contains(other Segment) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Intersects reports whether s and other share a non-empty span.
func (s Segment) Intersects(other Segment) bool {
	return s.Start < other.End && other.Start < s.End
}

// Intersection returns the common span of s and other, or the zero
// Segment when they do not intersect.
func (s Segment) Intersection(other Segment) Segment {
	if !s.Intersects(other) {
		return Segment{}
	}
	return Segment{Start: math.Max(s.Start, other.Start), End: math.Min(s.End, other.End)}
}

// Compare orders segments by Start, then End.
func (s Segment) Compare(other Segment) int {
	switch {
	case s.Start < other.Start:
		return -1
	case s.Start > other.Start:
		return 1
	case s.End < other.End:
		return -1
	case s.End > other.End:
		return 1
	}
	return 0
}

func (s Segment) String() string {
	return fmt.Sprintf("[%.3f, %.3f)", s.Start, s.End)
}

// Timeline is an ordered collection of segments. Insertion order matters
// for iteration (sliding windows are emitted in collection order) but not
// for sampling probability.
type Timeline []Segment

// Durations returns the duration of every segment, in order.
func (t Timeline) Durations() []float64 {
	out := make([]float64, len(t))
	for i, s := range t {
		out[i] = s.Duration()
	}
	return out
}

// Total returns the sum of segment durations (overlaps counted twice).
func (t Timeline) Total() float64 {
	var sum float64
	for _, s := range t {
		sum += s.Duration()
	}
	return sum
}

// Extent returns the smallest segment covering every segment of t,
// or the zero Segment for an empty timeline.
func (t Timeline) Extent() Segment {
	if len(t) == 0 {
		return Segment{}
	}
	ext := t[0]
	for _, s := range t[1:] {
		ext.Start = math.Min(ext.Start, s.Start)
		ext.End = math.Max(ext.End, s.End)
	}
	return ext
}

// Filter returns a new timeline with the segments for which keep is true.
func (t Timeline) Filter(keep func(Segment) bool) Timeline {
	out := make(Timeline, 0, len(t))
	for _, s := range t {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// Sorted returns a sorted copy of t.
func (t Timeline) Sorted() Timeline {
	out := slices.Clone(t)
	slices.SortStableFunc(out, Segment.Compare)
	return out
}

// Support returns the union of t: overlapping or touching segments are
// merged, empty segments dropped, and the result sorted.
//
// Complexity: O(n log n).
func (t Timeline) Support() Timeline {
	sorted := t.Filter(func(s Segment) bool { return !s.Empty() }).Sorted()
	if len(sorted) == 0 {
		return Timeline{}
	}
	out := Timeline{sorted[0]}
	for _, s := range sorted[1:] {
		last := &out[len(out)-1]
		if s.Start <= last.End {
			last.End = math.Max(last.End, s.End)
			continue
		}
		out = append(out, s)
	}
	return out
}
