// Package triplet builds (anchor, positive, negative) triplets from an
// annotation, for metric-learning style training.
//
// For every label L (sorted order) a Builder opens two infinite track
// streams: positives drawn among entries labeled L, negatives among entries
// not labeled L. The first positive becomes the anchor; then up to
// PerLabel times one more positive and one negative are drawn and the
// triplet is emitted. Anchor and positive always share a label, the
// negative never does.
//
// A restriction with nothing eligible gives an empty stream; the first
// failed pull ends the current label quietly and the builder moves on. In
// particular a label whose negatives are all filtered out contributes zero
// triplets, even though positives would be available.
//
// With WithDuration(d), entries shorter than d are dropped before anything
// else, and each of anchor, positive and negative is cropped to a random
// d-second sub-interval after the triplet is selected. An annotation left
// with fewer than two labels yields an empty stream, without error.
//
// The output stream is finite: at most PerLabel triplets per label.
package triplet
