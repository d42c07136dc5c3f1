package uniform

import (
	"math/rand"
	"sort"

	"github.com/katalvlaran/fragments/timeline"
)

// picker draws indices in [0, n): uniformly, or from a categorical
// distribution given by a cumulative weight table.
type picker struct {
	n          int
	cumulative []float64 // nil ⇒ uniform
	rng        *rand.Rand
}

// newPicker builds a picker over segs. With weighted set, index i is drawn
// with probability segs[i].Duration() / total. All durations must be > 0.
func newPicker(segs []timeline.Segment, weighted bool, r *rand.Rand) picker {
	p := picker{n: len(segs), rng: r}
	if !weighted {
		return p
	}
	p.cumulative = make([]float64, len(segs))
	var total float64
	for i, s := range segs {
		total += s.Duration()
		p.cumulative[i] = total
	}
	return p
}

func (p picker) pick() int {
	if p.cumulative == nil {
		return p.rng.Intn(p.n)
	}
	u := p.rng.Float64() * p.cumulative[p.n-1]
	i := sort.Search(p.n, func(i int) bool { return p.cumulative[i] > u })
	if i >= p.n {
		i = p.n - 1
	}
	return i
}

// Crop returns a sub-interval of seg lasting d seconds, with a start offset
// drawn uniformly from [0, seg.Duration() − d]. When d ≥ seg.Duration()
// the offset is 0 and the result starts at seg.Start.
func Crop(r *rand.Rand, seg timeline.Segment, d float64) timeline.Segment {
	slack := seg.Duration() - d
	start := seg.Start
	if slack > 0 {
		start += r.Float64() * slack
	}
	return timeline.Segment{Start: start, End: start + d}
}
