// Package timeline provides the interval vocabulary shared by every
// generator in fragments: Segment (a half-open time span), Timeline (an
// ordered collection of segments), and Annotation (a labeled mapping from
// (Segment, Track) pairs to Labels).
//
// What it is (and is not):
//
//	timeline is a narrow collaborator. It offers the handful of geometric
//	queries the sampling engine needs (duration, containment, intersection,
//	union) and the two derived views of an Annotation the engine relies on:
//	its segment timeline and its label-restricted subsets. It is not a
//	general interval-arithmetic library.
//
// Determinism:
//
//   - Timeline preserves insertion order.
//   - Annotation views (Timeline, Labels, Tracks, Items) are sorted, so a
//     generator iterating them is reproducible for a given seed regardless
//     of Go map ordering.
//
// Mutability:
//
//	Segments are values. Annotation is mutable only through Set; every view
//	(Subset, Filter, Timeline, ...) returns fresh data, so samplers never
//	mutate the caller's annotation.
//
// Example:
//
//	ann := timeline.NewAnnotation("meeting-01")
//	_ = ann.Set(timeline.Segment{Start: 0, End: 4}, "t0", "alice")
//	_ = ann.Set(timeline.Segment{Start: 3, End: 9}, "t1", "bob")
//	fmt.Println(ann.Labels())   // [alice bob]
//	fmt.Println(ann.Coverage()) // [[0.000, 9.000)]
package timeline
