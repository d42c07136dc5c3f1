// SPDX-License-Identifier: MIT
// Package: fragments/errs
//
// errors.go: sentinel errors shared by every generator package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Context is attached with Wrapf (method prefix + detail), never by
//     defining new sentinels with parameters baked in.
//   • Algorithms never panic; option constructors may panic on nil handles.
//   • Exhaustion of a restricted sub-stream is NOT an error: it surfaces as
//     TryNext() returning ok=false and is handled locally by the caller.

package errs

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrInvalidParameter indicates a meaningless construction parameter:
// non-positive duration or step, inverted duration range, non-positive
// per-label cap, or an inverted segment.
// Usage: if errors.Is(err, ErrInvalidParameter) { /* fix configuration */ }.
var ErrInvalidParameter = errors.New("fragments: invalid parameter")

// ErrUnsupportedSourceType indicates the source variant is not accepted by
// the generator it was handed to (e.g. a scalar duration given to a
// triplet builder, or a zero Source).
var ErrUnsupportedSourceType = errors.New("fragments: unsupported source type")

// ErrNoEligibleSource indicates that, after filtering by the requested
// duration, no interval qualifies for sampling. Raised once at setup.
var ErrNoEligibleSource = errors.New("fragments: no eligible source interval")

// ErrMissingField indicates a Record does not carry the requested field
// (e.g. no annotation, or no medium.wav reference).
var ErrMissingField = errors.New("fragments: record field missing")

// ErrSignatureMismatch indicates a yielded value does not conform to the
// declared signature of its generator.
var ErrSignatureMismatch = errors.New("fragments: value does not match signature")

// ErrProbe indicates the external duration probe could not determine the
// duration of a medium.
var ErrProbe = errors.New("fragments: duration probe failed")

// Wrapf attaches a formatted message to err while keeping it matchable by
// errors.Is. Returns nil when err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return pkgerrors.WithMessage(err, fmt.Sprintf(format, args...))
}

// Invalidf returns ErrInvalidParameter wrapped with a method-prefixed detail,
// e.g. Invalidf("sliding.New", "step must be > 0, got %g", step).
func Invalidf(method, format string, args ...interface{}) error {
	return Wrapf(ErrInvalidParameter, "%s: %s", method, fmt.Sprintf(format, args...))
}

// Cause returns the innermost error, as github.com/pkg/errors sees it.
var Cause = pkgerrors.Cause
