package balanced_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/fragments/balanced"
	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/signature"
	"github.com/katalvlaran/fragments/source"
	"github.com/katalvlaran/fragments/stream"
	"github.com/katalvlaran/fragments/timeline"
)

func seg(s, e float64) timeline.Segment { return timeline.Segment{Start: s, End: e} }

// fixture: alice and carol have long turns, bob only a 0.5 s one.
func fixture(t *testing.T) *timeline.Annotation {
	t.Helper()
	ann := timeline.NewAnnotation("meeting")
	require.NoError(t, ann.Set(seg(0, 5), "a", "alice"))
	require.NoError(t, ann.Set(seg(8, 10), "a", "alice"))
	require.NoError(t, ann.Set(seg(5, 5.5), "b", "bob"))
	require.NoError(t, ann.Set(seg(11, 20), "c", "carol"))
	return ann
}

// runLengths returns the lengths of maximal same-label runs.
func runLengths(items []timeline.TrackItem) (labels []timeline.Label, lengths []int) {
	for i, it := range items {
		if i == 0 || items[i-1].Label != it.Label {
			labels = append(labels, it.Label)
			lengths = append(lengths, 0)
		}
		lengths[len(lengths)-1]++
	}
	return labels, lengths
}

func TestSampler_CapsAndSkips(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s, err := balanced.New(3, balanced.WithDuration(1), balanced.WithSeed(5), balanced.WithLogger(zap.New(core)))
	require.NoError(t, err)

	items, err := s.Iterate(source.FromAnnotation(fixture(t)))
	require.NoError(t, err)
	got := stream.Collect(items)

	labels, lengths := runLengths(got)
	assert.Equal(t, []timeline.Label{"alice", "carol"}, labels, "bob is skipped, order is sorted")
	assert.Equal(t, []int{3, 3}, lengths)

	ann := fixture(t)
	for _, it := range got {
		require.InDelta(t, 1.0, it.Segment.Duration(), 1e-9)
		inside := false
		for _, ls := range ann.LabelTimeline(it.Label) {
			inside = inside || ls.Contains(it.Segment)
		}
		require.True(t, inside, "%v lies in a %s segment", it.Segment, it.Label)
		require.NoError(t, signature.Conform(s.Signature(), s.Fields(it)))
	}

	skipped := logs.FilterMessage("label skipped").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, "bob", skipped[0].ContextMap()["label"])
}

func TestSampler_RepeatCycles(t *testing.T) {
	s, err := balanced.New(2, balanced.WithRepeat(), balanced.WithSeed(5))
	require.NoError(t, err)
	items, err := s.Iterate(source.FromAnnotation(fixture(t)))
	require.NoError(t, err)

	labels, lengths := runLengths(stream.Take(items, 24))
	assert.Equal(t, []timeline.Label{"alice", "bob", "carol", "alice", "bob", "carol", "alice", "bob", "carol", "alice", "bob", "carol"}, labels)
	for _, n := range lengths {
		assert.LessOrEqual(t, n, 2)
	}
}

func TestSampler_RepeatEndsWhenNothingIsEligible(t *testing.T) {
	s, err := balanced.New(2, balanced.WithRepeat(), balanced.WithDuration(30))
	require.NoError(t, err)
	items, err := s.Iterate(source.FromAnnotation(fixture(t)))
	require.NoError(t, err)
	_, ok := items.TryNext()
	assert.False(t, ok)
}

func TestSampler_RepeatNeverJoinsRuns(t *testing.T) {
	// Single yielding label: alice is followed by the ineligible bob, so a
	// second pass would extend alice's run. The stream ends after one run.
	solo := timeline.NewAnnotation("solo")
	require.NoError(t, solo.Set(seg(0, 5), "a", "alice"))
	require.NoError(t, solo.Set(seg(5, 5.5), "b", "bob"))

	core, logs := observer.New(zapcore.DebugLevel)
	s, err := balanced.New(2, balanced.WithRepeat(), balanced.WithDuration(1), balanced.WithLogger(zap.New(core)))
	require.NoError(t, err)
	items, err := s.Iterate(source.FromAnnotation(solo))
	require.NoError(t, err)
	labels, lengths := runLengths(stream.Take(items, 8))
	assert.Equal(t, []timeline.Label{"alice"}, labels)
	assert.Equal(t, []int{2}, lengths)
	assert.Equal(t, 1, logs.FilterMessage("repeat stopped").Len())

	// Two yielding labels around a skipped one: runs alternate across pass
	// boundaries and never exceed the cap.
	s, err = balanced.New(3, balanced.WithRepeat(), balanced.WithDuration(1), balanced.WithSeed(2))
	require.NoError(t, err)
	items, err = s.Iterate(source.FromAnnotation(fixture(t)))
	require.NoError(t, err)
	labels, lengths = runLengths(stream.Take(items, 60))
	require.Len(t, labels, 20)
	for i, l := range labels {
		assert.Equal(t, []timeline.Label{"alice", "carol"}[i%2], l)
		assert.Equal(t, 3, lengths[i])
	}
}

func TestSampler_Errors(t *testing.T) {
	_, err := balanced.New(0)
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	_, err = balanced.New(1, balanced.WithDuration(-2))
	assert.ErrorIs(t, err, errs.ErrInvalidParameter)

	s, err := balanced.New(1)
	require.NoError(t, err)
	_, err = s.Iterate(source.FromTimeline(timeline.Timeline{seg(0, 1)}))
	assert.ErrorIs(t, err, errs.ErrUnsupportedSourceType)
	_, err = s.FromRecord(&record.Record{URI: "empty"})
	assert.ErrorIs(t, err, errs.ErrMissingField)

	assert.Panics(t, func() { balanced.WithRand(nil) })
	assert.Panics(t, func() { balanced.WithLogger(nil) })
}

func TestSampler_SeedDeterminism(t *testing.T) {
	run := func(seed int64) []timeline.TrackItem {
		s, err := balanced.New(4, balanced.WithDuration(0.5), balanced.WithSeed(seed))
		require.NoError(t, err)
		items, err := s.FromRecord(&record.Record{Annotation: fixture(t)})
		require.NoError(t, err)
		return stream.Collect(items)
	}
	assert.Equal(t, run(3), run(3))
	assert.NotEqual(t, run(3), run(4))
	assert.Len(t, run(3), 12)
}
