// Package uniform draws infinite random streams of intervals.
//
// Two samplers share one option set:
//
//   - Sampler draws segments from any source (scalar, segment, timeline,
//     annotation). Each draw picks one eligible interval, uniformly or with
//     probability proportional to its duration (WithWeighted), then either
//     yields it whole or crops a random sub-interval: a fixed duration
//     (WithDuration) or a duration drawn uniformly from a range
//     (WithDurationRange, capped at the interval's own duration).
//   - Tracks draws (segment, track, label) items from an annotation: pick a
//     segment as above, then one of its tracks uniformly.
//
// Eligibility is decided once, at Iterate: zero-length intervals and
// intervals shorter than the requested duration (or range minimum) are
// dropped, and an empty eligible set fails with errs.ErrNoEligibleSource.
// Draws never fail afterwards; the returned streams never end.
//
// Randomness comes from the *rand.Rand given with WithRand or WithSeed
// (default: rng.New(0)). A sampler owns that handle; it is not safe for
// concurrent use.
package uniform
