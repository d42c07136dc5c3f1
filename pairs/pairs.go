// Package pairs turns triplets into relevance-labeled (query, candidate)
// pairs: every triplet (q, p, n) yields ((q, p), true) then ((q, n), false),
// adjacent in the output. The stream is twice as long as the triplet
// stream it wraps; options are those of package triplet.
package pairs

import (
	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/signature"
	"github.com/katalvlaran/fragments/source"
	"github.com/katalvlaran/fragments/stream"
	"github.com/katalvlaran/fragments/timeline"
	"github.com/katalvlaran/fragments/triplet"
)

// Pair is one relevance pair. Relevant reports whether Candidate shares
// Query's label.
type Pair struct {
	Query     timeline.TrackItem `json:"query" yaml:"query"`
	Candidate timeline.TrackItem `json:"candidate" yaml:"candidate"`
	Relevant  bool               `json:"relevant" yaml:"relevant"`
}

// Builder wraps a triplet.Builder.
type Builder struct {
	triplets *triplet.Builder
}

// New returns a Builder; opts configure the underlying triplet.Builder.
func New(opts ...triplet.Option) (*Builder, error) {
	t, err := triplet.New(opts...)
	if err != nil {
		return nil, errs.Wrapf(err, "pairs.New")
	}
	return &Builder{triplets: t}, nil
}

// Signature declares ((item, item), boolean).
func (b *Builder) Signature() signature.Node {
	item := b.triplets.Item().Node()
	return signature.Tuple(signature.Tuple(item, item), signature.Boolean())
}

// Fields flattens a pair for signature.Conform.
func (b *Builder) Fields(p Pair) []any {
	item := b.triplets.Item()
	out := item.Fields(p.Query)
	out = append(out, item.Fields(p.Candidate)...)
	return append(out, p.Relevant)
}

// Iterate returns the pair stream of a Labeled source.
func (b *Builder) Iterate(src source.Source) (stream.Stream[Pair], error) {
	ts, err := b.triplets.Iterate(src)
	if err != nil {
		return nil, errs.Wrapf(err, "pairs.Iterate")
	}
	var pending *Pair
	return stream.Func[Pair](func() (Pair, bool) {
		if pending != nil {
			p := *pending
			pending = nil
			return p, true
		}
		t, ok := ts.TryNext()
		if !ok {
			return Pair{}, false
		}
		pending = &Pair{Query: t.Anchor, Candidate: t.Negative, Relevant: false}
		return Pair{Query: t.Anchor, Candidate: t.Positive, Relevant: true}, true
	}), nil
}

// FromRecord builds pairs from the annotation of rec.
func (b *Builder) FromRecord(rec *record.Record) (stream.Stream[Pair], error) {
	src, err := rec.Lookup(record.FieldAnnotation, nil)
	if err != nil {
		return nil, errs.Wrapf(err, "pairs.FromRecord")
	}
	return b.Iterate(src)
}
