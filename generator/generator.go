package generator

import (
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/signature"
	"github.com/katalvlaran/fragments/source"
	"github.com/katalvlaran/fragments/stream"
)

// Sample is one generated element: the typed value (a timeline.Segment,
// timeline.TrackItem, triplet.Triplet or pairs.Pair) and its flattened
// positions.
type Sample struct {
	Value  any
	Fields []any
}

// Generator is the type-erased generator surface.
type Generator interface {
	Signature() signature.Node
	Sample(src source.Source) (stream.Stream[Sample], error)
	FromRecord(rec *record.Record) (stream.Stream[Sample], error)
}

// Iterator is the typed surface every concrete generator implements.
type Iterator[T any] interface {
	Signature() signature.Node
	Fields(v T) []any
	Iterate(src source.Source) (stream.Stream[T], error)
	FromRecord(rec *record.Record) (stream.Stream[T], error)
}

// Wrap adapts a typed generator to Generator.
func Wrap[T any](it Iterator[T]) Generator {
	return wrapped[T]{it: it}
}

type wrapped[T any] struct {
	it Iterator[T]
}

func (w wrapped[T]) Signature() signature.Node { return w.it.Signature() }

func (w wrapped[T]) Sample(src source.Source) (stream.Stream[Sample], error) {
	s, err := w.it.Iterate(src)
	if err != nil {
		return nil, err
	}
	return w.samples(s), nil
}

func (w wrapped[T]) FromRecord(rec *record.Record) (stream.Stream[Sample], error) {
	s, err := w.it.FromRecord(rec)
	if err != nil {
		return nil, err
	}
	return w.samples(s), nil
}

func (w wrapped[T]) samples(s stream.Stream[T]) stream.Stream[Sample] {
	return stream.Map(s, func(v T) Sample {
		return Sample{Value: v, Fields: w.it.Fields(v)}
	})
}
