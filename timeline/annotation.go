package timeline

import (
	"slices"
	"strings"

	"github.com/katalvlaran/fragments/errs"
)

// Track distinguishes co-occurring annotations on the same segment.
type Track string

// Label is the class attached to a (Segment, Track) pair.
type Label string

// TrackItem is one (segment, track, label) entry of an Annotation. It is
// also the element type of the track-level sampling streams.
type TrackItem struct {
	Segment Segment `json:"segment" yaml:"segment"`
	Track   Track   `json:"track" yaml:"track"`
	Label   Label   `json:"label" yaml:"label"`
}

type trackKey struct {
	seg   Segment
	track Track
}

// Annotation maps (Segment, Track) pairs to Labels. Keys are unique;
// setting an existing key overwrites its label.
type Annotation struct {
	// URI identifies the annotated recording. Informational only.
	URI string

	entries map[trackKey]Label
}

// NewAnnotation returns an empty annotation for the given recording URI.
func NewAnnotation(uri string) *Annotation {
	return &Annotation{URI: uri, entries: make(map[trackKey]Label)}
}

// Set assigns label to (seg, track).
// Returns ErrInvalidParameter for an empty or inverted segment, or an empty
// label.
func (a *Annotation) Set(seg Segment, track Track, label Label) error {
	if seg.Empty() {
		return errs.Invalidf("Annotation.Set", "segment %v is empty", seg)
	}
	if label == "" {
		return errs.Invalidf("Annotation.Set", "empty label for %v/%s", seg, track)
	}
	if a.entries == nil {
		a.entries = make(map[trackKey]Label)
	}
	a.entries[trackKey{seg: seg, track: track}] = label
	return nil
}

// Get returns the label of (seg, track), if present.
func (a *Annotation) Get(seg Segment, track Track) (Label, bool) {
	l, ok := a.entries[trackKey{seg: seg, track: track}]
	return l, ok
}

// Len returns the number of (segment, track) entries.
func (a *Annotation) Len() int { return len(a.entries) }

// Items returns every entry sorted by segment, then track.
func (a *Annotation) Items() []TrackItem {
	out := make([]TrackItem, 0, len(a.entries))
	for k, l := range a.entries {
		out = append(out, TrackItem{Segment: k.seg, Track: k.track, Label: l})
	}
	slices.SortFunc(out, func(x, y TrackItem) int {
		if c := x.Segment.Compare(y.Segment); c != 0 {
			return c
		}
		return strings.Compare(string(x.Track), string(y.Track))
	})
	return out
}

// Timeline returns the distinct annotated segments, sorted.
// Tracks and labels are ignored.
func (a *Annotation) Timeline() Timeline {
	seen := make(map[Segment]struct{}, len(a.entries))
	out := make(Timeline, 0, len(a.entries))
	for k := range a.entries {
		if _, ok := seen[k.seg]; ok {
			continue
		}
		seen[k.seg] = struct{}{}
		out = append(out, k.seg)
	}
	slices.SortFunc(out, Segment.Compare)
	return out
}

// Tracks returns the tracks hosted by seg, sorted.
func (a *Annotation) Tracks(seg Segment) []Track {
	var out []Track
	for k := range a.entries {
		if k.seg == seg {
			out = append(out, k.track)
		}
	}
	slices.Sort(out)
	return out
}

// Labels returns the distinct labels, sorted.
func (a *Annotation) Labels() []Label {
	seen := make(map[Label]struct{})
	for _, l := range a.entries {
		seen[l] = struct{}{}
	}
	out := make([]Label, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

// LabelTimeline returns the sorted distinct segments carrying label.
func (a *Annotation) LabelTimeline(label Label) Timeline {
	return a.Subset([]Label{label}, false).Timeline()
}

// Filter returns a new annotation with the entries for which keep is true.
func (a *Annotation) Filter(keep func(TrackItem) bool) *Annotation {
	out := NewAnnotation(a.URI)
	for k, l := range a.entries {
		if keep(TrackItem{Segment: k.seg, Track: k.track, Label: l}) {
			out.entries[k] = l
		}
	}
	return out
}

// Subset returns a new annotation restricted to labels, or, when invert is
// true, to every label not in labels.
func (a *Annotation) Subset(labels []Label, invert bool) *Annotation {
	return a.Filter(func(it TrackItem) bool {
		return slices.Contains(labels, it.Label) != invert
	})
}

// Coverage returns the union of annotated segments.
func (a *Annotation) Coverage() Timeline {
	return a.Timeline().Support()
}
