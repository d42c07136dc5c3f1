package record

import (
	"io"
	"os"

	"github.com/go-audio/riff"
	"github.com/go-audio/wav"

	"github.com/katalvlaran/fragments/errs"
)

// Prober resolves a media path to its duration in seconds.
type Prober interface {
	Duration(path string) (float64, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(path string) (float64, error)

// Duration calls f.
func (f ProberFunc) Duration(path string) (float64, error) { return f(path) }

// WAVProber reads the header of a WAV file and returns its PCM duration.
// Sample data is never read.
type WAVProber struct{}

// Duration implements Prober.
func (WAVProber) Duration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errs.Wrapf(errs.ErrProbe, "open %s: %v", path, err)
	}
	defer f.Close()

	d, err := WAVDuration(f)
	if err != nil {
		return 0, errs.Wrapf(err, "%s", path)
	}
	return d, nil
}

// WAVDuration decodes a WAV stream up to its PCM chunk and returns
// PCM size / average byte rate, in seconds.
func WAVDuration(r io.ReadSeeker) (float64, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return 0, errs.Wrapf(errs.ErrProbe, "not a valid WAV stream: %v", dec.Err())
	}
	if err := dec.FwdToPCM(); err != nil {
		return 0, errs.Wrapf(errs.ErrProbe, "no PCM chunk: %v", err)
	}
	if dec.PCMChunk == nil || dec.PCMChunk.ID != riff.DataFormatID {
		return 0, errs.Wrapf(errs.ErrProbe, "no PCM chunk")
	}
	if dec.AvgBytesPerSec == 0 {
		return 0, errs.Wrapf(errs.ErrProbe, "zero byte rate")
	}
	return float64(dec.PCMLen()) / float64(dec.AvgBytesPerSec), nil
}
