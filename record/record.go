// Package record implements the "current recording" contract generators
// read from: the annotated region, its annotation, a derivable coverage
// view, and optional media references resolved to a duration by a probe.
//
// Records are loaded from YAML files (Load, Decode). The sampling core
// never touches files other than through this package.
package record

import (
	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/source"
	"github.com/katalvlaran/fragments/timeline"
)

// Field names a Record field a generator may sample from.
type Field string

// Record fields.
const (
	// FieldAnnotated is the region considered fully labeled.
	FieldAnnotated Field = "annotated"
	// FieldAnnotation is the labeled annotation itself.
	FieldAnnotation Field = "annotation"
	// FieldCoverage is the union of annotated segments.
	FieldCoverage Field = "coverage"
	// FieldWAV resolves medium["wav"] to a scalar duration.
	FieldWAV Field = "medium.wav"
)

// Fields lists every known field.
var Fields = []Field{FieldAnnotated, FieldAnnotation, FieldCoverage, FieldWAV}

// ParseField validates s as a Field.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errs.Invalidf("record.ParseField", "unknown field %q", s)
}

// Record is one annotated recording.
type Record struct {
	URI        string
	Annotated  timeline.Timeline
	Annotation *timeline.Annotation
	// Medium maps a media kind ("wav") to a path.
	Medium map[string]string
}

// Coverage returns the union of annotated segments, or nil when the record
// has no annotation.
func (r *Record) Coverage() timeline.Timeline {
	if r.Annotation == nil {
		return nil
	}
	return r.Annotation.Coverage()
}

// Lookup extracts field as a Source. probe is only consulted for media
// fields and may be nil otherwise. Returns ErrMissingField when the record
// does not carry the field.
func (r *Record) Lookup(field Field, probe Prober) (source.Source, error) {
	switch field {
	case FieldAnnotated:
		if r.Annotated == nil {
			return source.Source{}, errs.Wrapf(errs.ErrMissingField, "record %q: %s", r.URI, field)
		}
		return source.FromTimeline(r.Annotated), nil
	case FieldAnnotation:
		if r.Annotation == nil {
			return source.Source{}, errs.Wrapf(errs.ErrMissingField, "record %q: %s", r.URI, field)
		}
		return source.FromAnnotation(r.Annotation), nil
	case FieldCoverage:
		if r.Annotation == nil {
			return source.Source{}, errs.Wrapf(errs.ErrMissingField, "record %q: %s", r.URI, field)
		}
		return source.FromTimeline(r.Coverage()), nil
	case FieldWAV:
		path, ok := r.Medium["wav"]
		if !ok || path == "" {
			return source.Source{}, errs.Wrapf(errs.ErrMissingField, "record %q: %s", r.URI, field)
		}
		if probe == nil {
			probe = WAVProber{}
		}
		d, err := probe.Duration(path)
		if err != nil {
			return source.Source{}, errs.Wrapf(err, "record %q", r.URI)
		}
		return source.FromDuration(d), nil
	}
	return source.Source{}, errs.Invalidf("Record.Lookup", "unknown field %q", field)
}
