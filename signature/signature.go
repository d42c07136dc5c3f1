// Package signature describes, declaratively, the shape of the values a
// generator yields: which positions hold segments (and of what duration),
// tracks, labels, booleans or timestamps.
//
// A signature is metadata only. It is consumed by batch assemblers to
// validate or cast generator output and performs no sampling itself.
//
// Single source of truth:
//
//	Generators build their Signature() and flatten their yielded values from
//	the same configuration value (see ItemShape), so the declared shape and
//	the actual shape cannot drift. Conform checks one against the other.
package signature

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/timeline"
)

// Type tags a leaf position.
type Type string

// Leaf types.
const (
	TypeSegment   Type = "segment"
	TypeTrack     Type = "track"
	TypeLabel     Type = "label"
	TypeBoolean   Type = "boolean"
	TypeTimestamp Type = "timestamp"
)

// durationTolerance bounds float error when checking declared durations.
const durationTolerance = 1e-9

// Node is either a leaf (Type set) or a positional tuple (Tuple set).
//
// For segment leaves, Duration > 0 declares a fixed duration; otherwise
// MinDuration/MaxDuration (when MaxDuration > 0) declare a bounded range;
// neither means whole, unconstrained segments.
type Node struct {
	Type        Type    `json:"type,omitempty" yaml:"type,omitempty"`
	Duration    float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
	MinDuration float64 `json:"min_duration,omitempty" yaml:"min_duration,omitempty"`
	MaxDuration float64 `json:"max_duration,omitempty" yaml:"max_duration,omitempty"`
	Tuple       []Node  `json:"tuple,omitempty" yaml:"tuple,omitempty"`
}

// Segment declares a segment leaf of fixed duration (0 = whole segments).
func Segment(duration float64) Node {
	return Node{Type: TypeSegment, Duration: duration}
}

// SegmentRange declares a segment leaf whose duration lies in [min, max].
func SegmentRange(minDuration, maxDuration float64) Node {
	return Node{Type: TypeSegment, MinDuration: minDuration, MaxDuration: maxDuration}
}

// Track declares a track leaf.
func Track() Node { return Node{Type: TypeTrack} }

// Label declares a label leaf.
func Label() Node { return Node{Type: TypeLabel} }

// Boolean declares a boolean leaf.
func Boolean() Node { return Node{Type: TypeBoolean} }

// Timestamp declares a timestamp leaf (seconds, float64).
func Timestamp() Node { return Node{Type: TypeTimestamp} }

// Tuple composes nodes positionally.
func Tuple(nodes ...Node) Node { return Node{Tuple: nodes} }

// Repeat returns a tuple of n copies of node.
func Repeat(n int, node Node) Node {
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i] = node
	}
	return Tuple(nodes...)
}

// IsTuple reports whether n is a tuple node.
func (n Node) IsTuple() bool { return n.Type == "" }

// Leaves returns the leaf nodes of n in positional (depth-first) order.
func (n Node) Leaves() []Node {
	if !n.IsTuple() {
		return []Node{n}
	}
	var out []Node
	for _, c := range n.Tuple {
		out = append(out, c.Leaves()...)
	}
	return out
}

func (n Node) String() string {
	if n.IsTuple() {
		parts := make([]string, len(n.Tuple))
		for i, c := range n.Tuple {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	if n.Type != TypeSegment {
		return string(n.Type)
	}
	switch {
	case n.Duration > 0:
		return fmt.Sprintf("segment{%g}", n.Duration)
	case n.MaxDuration > 0:
		return fmt.Sprintf("segment{%g..%g}", n.MinDuration, n.MaxDuration)
	}
	return "segment"
}

// Conform checks that values, a flattened yielded element, match the leaves
// of n position by position. Returns ErrSignatureMismatch on any deviation.
func Conform(n Node, values []any) error {
	leaves := n.Leaves()
	if len(leaves) != len(values) {
		return errs.Wrapf(errs.ErrSignatureMismatch, "signature %v has %d positions, value has %d", n, len(leaves), len(values))
	}
	for i, leaf := range leaves {
		if err := conformLeaf(leaf, values[i]); err != nil {
			return errs.Wrapf(err, "position %d", i)
		}
	}
	return nil
}

func conformLeaf(leaf Node, v any) error {
	var ok bool
	switch leaf.Type {
	case TypeSegment:
		var s timeline.Segment
		if s, ok = v.(timeline.Segment); ok {
			return conformSegment(leaf, s)
		}
	case TypeTrack:
		_, ok = v.(timeline.Track)
	case TypeLabel:
		_, ok = v.(timeline.Label)
	case TypeBoolean:
		_, ok = v.(bool)
	case TypeTimestamp:
		_, ok = v.(float64)
	}
	if !ok {
		return errs.Wrapf(errs.ErrSignatureMismatch, "want %s, got %T", leaf.Type, v)
	}
	return nil
}

func conformSegment(leaf Node, s timeline.Segment) error {
	d := s.Duration()
	switch {
	case !(d > 0):
		return errs.Wrapf(errs.ErrSignatureMismatch, "segment %v has no positive duration", s)
	case leaf.Duration > 0 && math.Abs(d-leaf.Duration) > durationTolerance:
		return errs.Wrapf(errs.ErrSignatureMismatch, "segment %v: want duration %g", s, leaf.Duration)
	case leaf.MaxDuration > 0 && (d < leaf.MinDuration-durationTolerance || d > leaf.MaxDuration+durationTolerance):
		return errs.Wrapf(errs.ErrSignatureMismatch, "segment %v: want duration in [%g, %g]", s, leaf.MinDuration, leaf.MaxDuration)
	}
	return nil
}
