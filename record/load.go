package record

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/timeline"
)

// fileRecord is the on-disk YAML layout:
//
//	uri: meeting-01
//	annotated:
//	  - {start: 0, end: 60}
//	annotation:
//	  - {start: 0, end: 4, track: t0, label: alice}
//	medium:
//	  wav: meeting-01.wav
type fileRecord struct {
	URI        string             `yaml:"uri"`
	Annotated  []timeline.Segment `yaml:"annotated"`
	Annotation []fileEntry        `yaml:"annotation"`
	Medium     map[string]string  `yaml:"medium"`
}

type fileEntry struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Track string  `yaml:"track"`
	Label string  `yaml:"label"`
}

// Decode reads one YAML record from r.
func Decode(r io.Reader) (*Record, error) {
	var fr fileRecord
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fr); err != nil {
		return nil, errs.Wrapf(errs.ErrInvalidParameter, "record.Decode: %v", err)
	}

	rec := &Record{URI: fr.URI, Medium: fr.Medium}
	if fr.Annotated != nil {
		rec.Annotated = make(timeline.Timeline, 0, len(fr.Annotated))
		for _, s := range fr.Annotated {
			seg, err := timeline.NewSegment(s.Start, s.End)
			if err != nil {
				return nil, errs.Wrapf(err, "record %q: annotated", fr.URI)
			}
			rec.Annotated = append(rec.Annotated, seg)
		}
	}
	if fr.Annotation != nil {
		rec.Annotation = timeline.NewAnnotation(fr.URI)
		for i, e := range fr.Annotation {
			seg, err := timeline.NewSegment(e.Start, e.End)
			if err != nil {
				return nil, errs.Wrapf(err, "record %q: annotation[%d]", fr.URI, i)
			}
			track := timeline.Track(e.Track)
			if track == "" {
				track = defaultTrack(i)
			}
			if err := rec.Annotation.Set(seg, track, timeline.Label(e.Label)); err != nil {
				return nil, errs.Wrapf(err, "record %q: annotation[%d]", fr.URI, i)
			}
		}
	}
	return rec, nil
}

// Load reads a YAML record file. Relative media paths are resolved against
// the file's directory.
func Load(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrapf(err, "record.Load")
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		return nil, errs.Wrapf(err, "%s", path)
	}
	dir := filepath.Dir(path)
	for kind, p := range rec.Medium {
		if p != "" && !filepath.IsAbs(p) {
			rec.Medium[kind] = filepath.Join(dir, p)
		}
	}
	return rec, nil
}

// defaultTrack names anonymous tracks by entry position ("_0", "_1", ...).
func defaultTrack(i int) timeline.Track {
	return timeline.Track("_" + strconv.Itoa(i))
}
