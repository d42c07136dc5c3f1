package signature

import "github.com/katalvlaran/fragments/timeline"

// SegmentShape describes a bare segment position.
type SegmentShape struct {
	Duration    float64
	MinDuration float64
	MaxDuration float64
}

// Node returns the declared leaf.
func (s SegmentShape) Node() Node {
	if s.MaxDuration > 0 {
		return SegmentRange(s.MinDuration, s.MaxDuration)
	}
	return Segment(s.Duration)
}

// Fields flattens a yielded segment.
func (s SegmentShape) Fields(seg timeline.Segment) []any { return []any{seg} }

// ItemShape describes one track-level item position: a segment, optionally
// followed by its track and/or its label.
type ItemShape struct {
	Segment SegmentShape
	Track   bool
	Label   bool
}

// Node returns a bare segment leaf when neither track nor label is
// declared, and a tuple otherwise.
func (s ItemShape) Node() Node {
	seg := s.Segment.Node()
	if !s.Track && !s.Label {
		return seg
	}
	nodes := []Node{seg}
	if s.Track {
		nodes = append(nodes, Track())
	}
	if s.Label {
		nodes = append(nodes, Label())
	}
	return Tuple(nodes...)
}

// Fields flattens it according to the declared positions.
func (s ItemShape) Fields(it timeline.TrackItem) []any {
	out := []any{it.Segment}
	if s.Track {
		out = append(out, it.Track)
	}
	if s.Label {
		out = append(out, it.Label)
	}
	return out
}
