// Package source defines the tagged union of interval sources a generator
// can consume: a scalar duration, a single segment, a timeline, or a
// labeled annotation.
//
// The variant is resolved once, at the API boundary. Each generator
// declares the kinds it accepts (Require) and fails with
// errs.ErrUnsupportedSourceType on the rest.
package source

import (
	"fmt"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/timeline"
)

// Kind enumerates the source variants. The zero Kind is Invalid.
type Kind int

const (
	// Invalid is the kind of the zero Source.
	Invalid Kind = iota
	// Scalar is a bare duration d, standing for the span [0, d).
	Scalar
	// Single is one segment.
	Single
	// Collection is an ordered timeline.
	Collection
	// Labeled is an annotation (segment × track → label).
	Labeled
)

// AllKinds lists every valid variant.
var AllKinds = []Kind{Scalar, Single, Collection, Labeled}

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Single:
		return "single"
	case Collection:
		return "collection"
	case Labeled:
		return "labeled"
	}
	return fmt.Sprintf("invalid(%d)", int(k))
}

// Source holds exactly one variant.
type Source struct {
	kind       Kind
	duration   float64
	segment    timeline.Segment
	timeline   timeline.Timeline
	annotation *timeline.Annotation
}

// FromDuration returns a Scalar source covering [0, d).
func FromDuration(d float64) Source {
	return Source{kind: Scalar, duration: d}
}

// FromSegment returns a Single source.
func FromSegment(s timeline.Segment) Source {
	return Source{kind: Single, segment: s}
}

// FromTimeline returns a Collection source. tl is not copied.
func FromTimeline(tl timeline.Timeline) Source {
	return Source{kind: Collection, timeline: tl}
}

// FromAnnotation returns a Labeled source; a nil annotation yields the
// zero (Invalid) Source.
func FromAnnotation(a *timeline.Annotation) Source {
	if a == nil {
		return Source{}
	}
	return Source{kind: Labeled, annotation: a}
}

// Kind returns the variant tag.
func (s Source) Kind() Kind { return s.kind }

// Duration returns the scalar duration; meaningful for Scalar only.
func (s Source) Duration() float64 { return s.duration }

// Segment returns the single segment; meaningful for Single only.
func (s Source) Segment() timeline.Segment { return s.segment }

// Annotation returns the annotation; nil unless Labeled.
func (s Source) Annotation() *timeline.Annotation { return s.annotation }

// Timeline resolves any valid variant into an ordered timeline:
// Scalar → [0, d), Single → [segment], Collection → itself,
// Labeled → the annotation's distinct segments.
func (s Source) Timeline() (timeline.Timeline, error) {
	switch s.kind {
	case Scalar:
		if !(s.duration > 0) {
			return nil, errs.Invalidf("source.Timeline", "scalar duration must be > 0, got %g", s.duration)
		}
		return timeline.Timeline{{Start: 0, End: s.duration}}, nil
	case Single:
		return timeline.Timeline{s.segment}, nil
	case Collection:
		return s.timeline, nil
	case Labeled:
		return s.annotation.Timeline(), nil
	}
	return nil, errs.Wrapf(errs.ErrUnsupportedSourceType, "source.Timeline: %v", s.kind)
}

// Require returns ErrUnsupportedSourceType unless src is one of kinds.
// method prefixes the error message.
func Require(method string, src Source, kinds ...Kind) error {
	for _, k := range kinds {
		if src.kind == k {
			return nil
		}
	}
	return errs.Wrapf(errs.ErrUnsupportedSourceType, "%s: got %v, want one of %v", method, src.kind, kinds)
}
