// Package sliding segments intervals into running windows.
//
// 🚀 What it does
//
//	Given a window duration D and a step S, every source interval [a, b) is
//	covered left to right by windows [a + k·S, a + k·S + D) for k = 0, 1, …
//	while the window end does not exceed b.
//
// ✨ Length policies
//   - fixed (default): a window overrunning b is discarded and the interval
//     is done. An interval shorter than D contributes nothing.
//   - variable (WithMinDuration(m), 0 < m ≤ D): the first overrunning window
//     is clipped to b and yielded if its clipped duration is ≥ m; either way
//     the interval is done. An interval shorter than D but at least m long is
//     therefore yielded once, whole.
//
// Window starts are computed by index (a + k·S), not by accumulation, and
// the end test tolerates 1e-9 s of float error so that, e.g., L=10, D=3,
// S=1 yields exactly 8 windows.
//
// ⚙️ Usage:
//
//	s, err := sliding.New(3.2, 0.8, sliding.WithMinDuration(1.0))
//	windows, err := s.Iterate(source.FromDuration(60))
//	for w := range stream.All(windows) { ... }
//
// Streams are finite and single-pass. Sources of every kind are accepted;
// a Labeled source is segmented along its distinct annotated segments.
//
// Complexity: O(L/S) windows per interval of length L, O(1) memory.
package sliding
