// Package stream is the pull-based lazy sequence abstraction every generator
// in fragments returns.
//
// A Stream produces one element per TryNext call. ok=false is the normal,
// silent end signal: it is how a finite stream terminates and how an empty
// restricted sub-stream reports exhaustion. It is never an error.
//
// Streams are single-pass and stateful. Re-creating the generator restarts
// from the beginning, deterministically for a fixed seed.
//
// Infinite streams (random samplers) never return ok=false. Consumers that
// need a bounded run must impose a limit themselves (Take, Limit).
package stream

import "iter"

// Stream is a lazy, single-pass sequence.
type Stream[T any] interface {
	// TryNext produces the next element, or ok=false once the stream ends.
	TryNext() (value T, ok bool)
}

// Func adapts a plain function to Stream.
type Func[T any] func() (T, bool)

// TryNext calls f.
func (f Func[T]) TryNext() (T, bool) { return f() }

// Empty returns a stream that ends immediately.
func Empty[T any]() Stream[T] {
	return Func[T](func() (T, bool) {
		var zero T
		return zero, false
	})
}

// FromSlice returns a finite stream over items, in order. items is not copied.
func FromSlice[T any](items []T) Stream[T] {
	i := 0
	return Func[T](func() (T, bool) {
		if i >= len(items) {
			var zero T
			return zero, false
		}
		v := items[i]
		i++
		return v, true
	})
}

// Repeat returns an infinite stream calling next for every element.
func Repeat[T any](next func() T) Stream[T] {
	return Func[T](func() (T, bool) { return next(), true })
}

// Map applies fn lazily to every element of s.
func Map[T, U any](s Stream[T], fn func(T) U) Stream[U] {
	return Func[U](func() (U, bool) {
		v, ok := s.TryNext()
		if !ok {
			var zero U
			return zero, false
		}
		return fn(v), true
	})
}

// Limit returns a stream ending after at most n elements of s.
func Limit[T any](s Stream[T], n int) Stream[T] {
	left := n
	return Func[T](func() (T, bool) {
		if left <= 0 {
			var zero T
			return zero, false
		}
		v, ok := s.TryNext()
		if !ok {
			left = 0
			return v, false
		}
		left--
		return v, true
	})
}

// Take pulls at most n elements from s.
func Take[T any](s Stream[T], n int) []T {
	out := make([]T, 0, max(n, 0))
	for len(out) < n {
		v, ok := s.TryNext()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// Collect drains s. It never returns on an infinite stream.
func Collect[T any](s Stream[T]) []T {
	var out []T
	for {
		v, ok := s.TryNext()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Concat chains streams, draining each before moving to the next.
func Concat[T any](streams ...Stream[T]) Stream[T] {
	i := 0
	return Func[T](func() (T, bool) {
		for i < len(streams) {
			if v, ok := streams[i].TryNext(); ok {
				return v, true
			}
			i++
		}
		var zero T
		return zero, false
	})
}

// All exposes s as a range-over-func sequence.
func All[T any](s Stream[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := s.TryNext()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Peekable wraps a Stream with a one-element lookahead, exposing the
// HasNext/Next pair. On an infinite stream HasNext is always true.
type Peekable[T any] struct {
	src    Stream[T]
	head   T
	loaded bool
	done   bool
}

// NewPeekable wraps s.
func NewPeekable[T any](s Stream[T]) *Peekable[T] {
	return &Peekable[T]{src: s}
}

// HasNext reports whether Next will produce an element. It may pull one
// element from the underlying stream.
func (p *Peekable[T]) HasNext() bool {
	if p.loaded {
		return true
	}
	if p.done {
		return false
	}
	v, ok := p.src.TryNext()
	if !ok {
		p.done = true
		return false
	}
	p.head, p.loaded = v, true
	return true
}

// Next returns the next element, or ok=false at the end.
func (p *Peekable[T]) Next() (T, bool) {
	if !p.HasNext() {
		var zero T
		return zero, false
	}
	v := p.head
	var zero T
	p.head, p.loaded = zero, false
	return v, true
}

// TryNext makes Peekable a Stream itself.
func (p *Peekable[T]) TryNext() (T, bool) { return p.Next() }
