// Package fragments draws training fragments from annotated recordings:
// sliding windows, random segments, per-label balanced runs, and
// (anchor, positive, negative) triplets or relevance pairs.
//
// 🚀 Packages
//
//	timeline/    segments, timelines, (segment, track) → label annotations
//	source/      the four accepted source shapes, resolved once
//	record/      recording records (YAML), field lookup, WAV duration probe
//	stream/      pull-based lazy streams: TryNext() (value, ok)
//	signature/   declared output shapes and conformance checks
//	sliding/     sliding-window segmentation
//	uniform/     uniform or duration-weighted random segments and tracks
//	balanced/    per-label capped sampling runs
//	triplet/     label-bounded triplet streams
//	pairs/       relevance pairs derived from triplets
//	generator/   common Generator surface and YAML configuration
//	cmd/fragments   command line front end
//
// ✨ Conventions
//
//   - Every generator exposes Signature, Iterate and FromRecord.
//   - Randomness is an explicit *rand.Rand per generator (WithRand, WithSeed);
//     one seed reproduces a whole run.
//   - Errors are sentinels in errs, matched with errors.Is.
//   - Logging goes through an injected *zap.Logger (WithLogger), silent by
//     default.
package fragments
