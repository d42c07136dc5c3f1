// Package generator gives every fragment generator one common surface and
// builds generators from YAML configuration.
//
// Concrete generators (sliding.Slicer, uniform.Sampler, uniform.Tracks,
// balanced.Sampler, triplet.Builder, pairs.Builder) yield their own typed
// values. Wrap erases the element type into a Generator yielding Sample
// values, each carrying the typed value and its flattened fields, so that a
// consumer can check every element against Signature with
// signature.Conform.
//
// A generator configuration looks like:
//
//	kind: triplets      # sliding | random | tracks | balanced | triplets | pairs
//	duration: 2.0
//	per_label: 40
//	labels: true
//	seed: 42
//
// Unset fields take the defaults of the owning package.
package generator
