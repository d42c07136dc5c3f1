package uniform_test

import (
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/rng"
	"github.com/katalvlaran/fragments/signature"
	"github.com/katalvlaran/fragments/source"
	"github.com/katalvlaran/fragments/stream"
	"github.com/katalvlaran/fragments/timeline"
	"github.com/katalvlaran/fragments/uniform"
)

const (
	nDraws       = 20000
	freqTol      = 0.02
	boundsTol    = 1e-9
	seedFixture  = int64(7)
	seedFixture2 = int64(8)
)

func seg(s, e float64) timeline.Segment { return timeline.Segment{Start: s, End: e} }

// shareOf returns the fraction of draws lying inside target.
func shareOf(t *testing.T, draws []timeline.Segment, target timeline.Segment) float64 {
	t.Helper()
	hits := make([]float64, len(draws))
	for i, d := range draws {
		if target.Contains(d) {
			hits[i] = 1
		}
	}
	m, err := stats.Mean(hits)
	require.NoError(t, err)
	return m
}

func TestSampler_UnweightedIsUniform(t *testing.T) {
	s, err := uniform.New(uniform.WithSeed(seedFixture))
	require.NoError(t, err)

	// Equal lengths: ~50/50.
	draws, err := s.Iterate(source.FromTimeline(timeline.Timeline{seg(0, 5), seg(10, 15)}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, shareOf(t, stream.Take(draws, nDraws), seg(0, 5)), freqTol)

	// Unequal lengths are still picked uniformly when not weighted.
	draws, err = s.Iterate(source.FromTimeline(timeline.Timeline{seg(0, 1), seg(10, 19)}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, shareOf(t, stream.Take(draws, nDraws), seg(0, 1)), freqTol)
}

func TestSampler_WeightedIsProportional(t *testing.T) {
	s, err := uniform.New(uniform.WithWeighted(), uniform.WithSeed(seedFixture))
	require.NoError(t, err)

	tl := timeline.Timeline{seg(0, 1), seg(10, 13), seg(20, 26)}
	draws, err := s.Iterate(source.FromTimeline(tl))
	require.NoError(t, err)
	got := stream.Take(draws, nDraws)

	assert.InDelta(t, 0.1, shareOf(t, got, tl[0]), freqTol)
	assert.InDelta(t, 0.3, shareOf(t, got, tl[1]), freqTol)
	assert.InDelta(t, 0.6, shareOf(t, got, tl[2]), freqTol)
}

func TestSampler_WholeSegmentsByDefault(t *testing.T) {
	tl := timeline.Timeline{seg(0, 2), seg(3, 3), seg(5, 9)}
	s, err := uniform.New()
	require.NoError(t, err)
	draws, err := s.Iterate(source.FromTimeline(tl))
	require.NoError(t, err)
	for _, d := range stream.Take(draws, 200) {
		assert.Contains(t, []timeline.Segment{seg(0, 2), seg(5, 9)}, d, "empty segment is never drawn")
	}
	assert.Equal(t, timeline.Timeline{seg(0, 2), seg(3, 3), seg(5, 9)}, tl, "source untouched")
}

func TestSampler_FixedCrop(t *testing.T) {
	tl := timeline.Timeline{seg(0, 1), seg(2, 6), seg(10, 12.5)}
	for _, weighted := range []bool{false, true} {
		opts := []uniform.Option{uniform.WithDuration(2), uniform.WithSeed(seedFixture)}
		if weighted {
			opts = append(opts, uniform.WithWeighted())
		}
		s, err := uniform.New(opts...)
		require.NoError(t, err)
		draws, err := s.Iterate(source.FromTimeline(tl))
		require.NoError(t, err)

		for _, d := range stream.Take(draws, 2000) {
			require.InDelta(t, 2.0, d.Duration(), boundsTol)
			require.False(t, seg(0, 1).Intersects(d), "too-short interval is never used")
			inside := (d.Start >= 2 && d.End <= 6+boundsTol) || (d.Start >= 10 && d.End <= 12.5+boundsTol)
			require.True(t, inside, "draw %v lies in its source interval", d)
			require.NoError(t, signature.Conform(s.Signature(), s.Fields(d)))
		}
	}
}

func TestSampler_RangeCrop(t *testing.T) {
	s, err := uniform.New(uniform.WithDurationRange(1, 5), uniform.WithSeed(seedFixture))
	require.NoError(t, err)
	assert.Equal(t, signature.SegmentRange(1, 5), s.Signature())

	draws, err := s.Iterate(source.FromTimeline(timeline.Timeline{seg(0, 0.5), seg(0, 3)}))
	require.NoError(t, err)
	durations := make([]float64, 0, 2000)
	for _, d := range stream.Take(draws, 2000) {
		require.GreaterOrEqual(t, d.Start, 0.0)
		require.LessOrEqual(t, d.End, 3+boundsTol)
		require.GreaterOrEqual(t, d.Duration(), 1-boundsTol)
		require.LessOrEqual(t, d.Duration(), 3+boundsTol, "max is re-clamped to the interval's duration")
		durations = append(durations, d.Duration())
	}
	mean, err := stats.Mean(durations)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mean, 0.1, "duration is uniform on [1, 3]")
}

func TestSampler_NoEligibleSource(t *testing.T) {
	s, err := uniform.New(uniform.WithDuration(5))
	require.NoError(t, err)
	_, err = s.Iterate(source.FromTimeline(timeline.Timeline{seg(0, 1), seg(2, 4)}))
	assert.ErrorIs(t, err, errs.ErrNoEligibleSource)

	_, err = s.Iterate(source.FromTimeline(nil))
	assert.ErrorIs(t, err, errs.ErrNoEligibleSource)

	_, err = s.Iterate(source.Source{})
	assert.ErrorIs(t, err, errs.ErrUnsupportedSourceType)
}

func TestNew_InvalidOptions(t *testing.T) {
	cases := map[string][]uniform.Option{
		"negative duration": {uniform.WithDuration(-1)},
		"zero range min":    {uniform.WithDurationRange(0, 2)},
		"inverted range":    {uniform.WithDurationRange(3, 2)},
		"duration + range":  {uniform.WithDuration(1), uniform.WithDurationRange(1, 2)},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uniform.New(opts...)
			assert.ErrorIs(t, err, errs.ErrInvalidParameter)
			_, err = uniform.NewTracks(opts...)
			assert.ErrorIs(t, err, errs.ErrInvalidParameter)
		})
	}
	assert.Panics(t, func() { uniform.WithRand(nil) })
	assert.Panics(t, func() { uniform.WithLogger(nil) })
}

func TestSampler_SeedDeterminism(t *testing.T) {
	run := func(seed int64) []timeline.Segment {
		s, err := uniform.New(uniform.WithDuration(0.5), uniform.WithWeighted(), uniform.WithSeed(seed))
		require.NoError(t, err)
		draws, err := s.Iterate(source.FromDuration(30))
		require.NoError(t, err)
		return stream.Take(draws, 50)
	}
	assert.Equal(t, run(seedFixture), run(seedFixture))
	assert.NotEqual(t, run(seedFixture), run(seedFixture2))
}

func TestSampler_FromRecord(t *testing.T) {
	rec := &record.Record{Annotated: timeline.Timeline{seg(0, 10)}}
	s, err := uniform.New(uniform.WithDuration(1), uniform.WithField(record.FieldAnnotated))
	require.NoError(t, err)
	draws, err := s.FromRecord(rec)
	require.NoError(t, err)
	d, ok := draws.TryNext()
	require.True(t, ok)
	assert.True(t, seg(0, 10+boundsTol).Contains(d))

	wav, err := uniform.New(uniform.WithDuration(1), uniform.WithField(record.FieldWAV),
		uniform.WithProber(record.ProberFunc(func(string) (float64, error) { return 4, nil })))
	require.NoError(t, err)
	draws, err = wav.FromRecord(&record.Record{Medium: map[string]string{"wav": "a.wav"}})
	require.NoError(t, err)
	d, _ = draws.TryNext()
	assert.True(t, seg(0, 4+boundsTol).Contains(d))
}

func annotationFixture(t *testing.T) *timeline.Annotation {
	t.Helper()
	ann := timeline.NewAnnotation("r")
	require.NoError(t, ann.Set(seg(0, 4), "a", "alice"))
	require.NoError(t, ann.Set(seg(0, 4), "b", "bob"))
	require.NoError(t, ann.Set(seg(6, 6.5), "c", "carol"))
	return ann
}

func TestTracks_DrawsAnnotatedItems(t *testing.T) {
	ann := annotationFixture(t)
	tr, err := uniform.NewTracks(uniform.WithSeed(seedFixture), uniform.WithLabels(true))
	require.NoError(t, err)
	assert.Equal(t, signature.Tuple(signature.Segment(0), signature.Track(), signature.Label()), tr.Signature())

	items, err := tr.Iterate(source.FromAnnotation(ann))
	require.NoError(t, err)
	var tracksOn04 []float64
	for _, it := range stream.Take(items, 4000) {
		label, ok := ann.Get(it.Segment, it.Track)
		require.True(t, ok, "item %v is an annotation entry", it)
		require.Equal(t, label, it.Label)
		require.NoError(t, signature.Conform(tr.Signature(), tr.Fields(it)))
		if it.Segment == seg(0, 4) {
			v := 0.0
			if it.Track == "a" {
				v = 1
			}
			tracksOn04 = append(tracksOn04, v)
		}
	}
	share, err := stats.Mean(tracksOn04)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, share, 0.05, "tracks of one segment are drawn uniformly")
}

func TestTracks_DurationAndErrors(t *testing.T) {
	ann := annotationFixture(t)

	tr, err := uniform.NewTracks(uniform.WithDuration(1), uniform.WithSeed(seedFixture))
	require.NoError(t, err)
	assert.Equal(t, signature.Tuple(signature.Segment(1), signature.Track()), tr.Signature())
	items, err := tr.Iterate(source.FromAnnotation(ann))
	require.NoError(t, err)
	for _, it := range stream.Take(items, 200) {
		require.InDelta(t, 1.0, it.Segment.Duration(), boundsTol)
		require.NotEqual(t, timeline.Label("carol"), it.Label, "0.5 s segment is ineligible")
	}

	long, err := uniform.NewTracks(uniform.WithDuration(10))
	require.NoError(t, err)
	_, err = long.Iterate(source.FromAnnotation(ann))
	assert.ErrorIs(t, err, errs.ErrNoEligibleSource)

	_, err = tr.Iterate(source.FromTimeline(timeline.Timeline{seg(0, 4)}))
	assert.ErrorIs(t, err, errs.ErrUnsupportedSourceType)

	_, err = tr.FromRecord(&record.Record{})
	assert.ErrorIs(t, err, errs.ErrMissingField)
}

func TestCrop(t *testing.T) {
	r := rng.New(seedFixture)
	s := seg(3, 4)
	for i := 0; i < 100; i++ {
		c := uniform.Crop(r, s, 0.25)
		assert.InDelta(t, 0.25, c.Duration(), boundsTol)
		assert.GreaterOrEqual(t, c.Start, 3.0)
		assert.LessOrEqual(t, c.End, 4+boundsTol)
	}
	assert.Equal(t, seg(3, 5), uniform.Crop(r, s, 2), "no slack: offset 0")
}
