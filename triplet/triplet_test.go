package triplet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/signature"
	"github.com/katalvlaran/fragments/source"
	"github.com/katalvlaran/fragments/stream"
	"github.com/katalvlaran/fragments/timeline"
	"github.com/katalvlaran/fragments/triplet"
)

func seg(s, e float64) timeline.Segment { return timeline.Segment{Start: s, End: e} }

// fixture has three speakers; segment [0, 4) hosts two overlapping tracks.
func fixture(t *testing.T) *timeline.Annotation {
	t.Helper()
	ann := timeline.NewAnnotation("meeting")
	for _, e := range []struct {
		s     timeline.Segment
		track timeline.Track
		label timeline.Label
	}{
		{seg(0, 4), "a", "alice"},
		{seg(0, 4), "b", "bob"},
		{seg(5, 8), "c", "alice"},
		{seg(9, 9.5), "d", "bob"},
		{seg(10, 16), "e", "carol"},
		{seg(17, 20), "f", "bob"},
	} {
		require.NoError(t, ann.Set(e.s, e.track, e.label))
	}
	return ann
}

func TestBuilder_LabelRelations(t *testing.T) {
	ann := fixture(t)
	b, err := triplet.New(triplet.WithPerLabel(5), triplet.WithTracks(true), triplet.WithLabels(true), triplet.WithSeed(11))
	require.NoError(t, err)
	assert.Equal(t, "((segment, track, label), (segment, track, label), (segment, track, label))", b.Signature().String())

	ts, err := b.Iterate(source.FromAnnotation(ann))
	require.NoError(t, err)
	got := stream.Collect(ts)
	require.Len(t, got, 15)

	for i, tr := range got {
		for _, it := range []timeline.TrackItem{tr.Anchor, tr.Positive, tr.Negative} {
			label, ok := ann.Get(it.Segment, it.Track)
			require.True(t, ok, "%v is an annotation entry", it)
			require.Equal(t, label, it.Label)
		}
		assert.Equal(t, tr.Anchor.Label, tr.Positive.Label)
		assert.NotEqual(t, tr.Anchor.Label, tr.Negative.Label)
		require.NoError(t, signature.Conform(b.Signature(), b.Fields(tr)))

		// One anchor per label run, runs in sorted label order.
		assert.Equal(t, []timeline.Label{"alice", "bob", "carol"}[i/5], tr.Anchor.Label)
		if i%5 != 0 {
			assert.Equal(t, got[i-1].Anchor, tr.Anchor)
		}
	}
}

func TestBuilder_DurationFiltersAndCrops(t *testing.T) {
	ann := fixture(t)
	b, err := triplet.New(triplet.WithPerLabel(10), triplet.WithDuration(2), triplet.WithLabels(true), triplet.WithSeed(3))
	require.NoError(t, err)
	assert.Equal(t, signature.Repeat(3, signature.Tuple(signature.Segment(2), signature.Label())), b.Signature())

	ts, err := b.Iterate(source.FromAnnotation(ann))
	require.NoError(t, err)
	got := stream.Collect(ts)
	require.Len(t, got, 30)

	anchors := map[timeline.Segment]bool{}
	for _, tr := range got {
		for _, it := range []timeline.TrackItem{tr.Anchor, tr.Positive, tr.Negative} {
			require.InDelta(t, 2.0, it.Segment.Duration(), 1e-9)
			require.False(t, seg(9, 9.5).Intersects(it.Segment), "short entry is filtered")
			inside := false
			for _, ls := range ann.LabelTimeline(it.Label) {
				inside = inside || ls.Contains(it.Segment)
			}
			require.True(t, inside, "%v lies in a %s segment", it.Segment, it.Label)
		}
		require.NoError(t, signature.Conform(b.Signature(), b.Fields(tr)))
		anchors[tr.Anchor.Segment] = true
	}
	assert.Greater(t, len(anchors), 3, "anchor is re-cropped for every triplet")
}

func TestBuilder_FewerThanTwoLabels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b, err := triplet.New(triplet.WithLogger(zap.New(core)))
	require.NoError(t, err)

	single := timeline.NewAnnotation("solo")
	require.NoError(t, single.Set(seg(0, 10), "a", "alice"))
	require.NoError(t, single.Set(seg(12, 20), "b", "alice"))
	ts, err := b.Iterate(source.FromAnnotation(single))
	require.NoError(t, err)
	assert.Empty(t, stream.Collect(ts))

	// Two labels, but only one survives the duration filter.
	long, err := triplet.New(triplet.WithDuration(5), triplet.WithLogger(zap.New(core)))
	require.NoError(t, err)
	ts, err = long.Iterate(source.FromAnnotation(fixture(t)))
	require.NoError(t, err)
	assert.Empty(t, stream.Collect(ts))

	assert.Equal(t, 2, logs.FilterMessage("not enough labels for triplets").Len())
}

func TestBuilder_Errors(t *testing.T) {
	_, err := triplet.New(triplet.WithPerLabel(0))
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	_, err = triplet.New(triplet.WithDuration(-1))
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)

	b, err := triplet.New()
	require.NoError(t, err)
	assert.Equal(t, triplet.DefaultPerLabel, b.PerLabel())
	_, err = b.Iterate(source.FromDuration(10))
	assert.ErrorIs(t, err, errs.ErrUnsupportedSourceType)
	_, err = b.FromRecord(&record.Record{})
	assert.ErrorIs(t, err, errs.ErrMissingField)

	assert.Panics(t, func() { triplet.WithRand(nil) })
	assert.Panics(t, func() { triplet.WithLogger(nil) })
}

func TestBuilder_SeedDeterminism(t *testing.T) {
	run := func(seed int64) []triplet.Triplet {
		b, err := triplet.New(triplet.WithPerLabel(4), triplet.WithDuration(1), triplet.WithSeed(seed))
		require.NoError(t, err)
		ts, err := b.FromRecord(&record.Record{Annotation: fixture(t)})
		require.NoError(t, err)
		return stream.Collect(ts)
	}
	assert.Equal(t, run(9), run(9))
	assert.NotEqual(t, run(9), run(10))
}
