// Package balanced draws per-label capped sample runs from an annotation.
//
// For every distinct label (in sorted order) a Sampler builds a
// duration-weighted uniform.Sampler over that label's segments and yields up
// to perLabel (segment, label) items from it before moving to the next
// label. It is not round-robin: each label contributes one run of at most
// perLabel consecutive items per pass.
//
// Labels whose segments are all shorter than the requested duration are
// skipped. Sub-samplers are built lazily, when their label comes up, each
// on its own substream derived from the sampler's random source.
//
// By default one pass over the labels is made and the stream ends. With
// WithRepeat the pass restarts forever, as long as at least two labels
// yielded during the previous pass; otherwise the last run would continue
// into the next pass and exceed perLabel, so the stream ends instead.
package balanced
