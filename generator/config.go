package generator

import (
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fragments/balanced"
	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/pairs"
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/sliding"
	"github.com/katalvlaran/fragments/timeline"
	"github.com/katalvlaran/fragments/triplet"
	"github.com/katalvlaran/fragments/uniform"
)

// Kind selects the generator a Config builds.
type Kind string

// Generator kinds.
const (
	KindSliding  Kind = "sliding"
	KindRandom   Kind = "random"
	KindTracks   Kind = "tracks"
	KindBalanced Kind = "balanced"
	KindTriplets Kind = "triplets"
	KindPairs    Kind = "pairs"
)

// Kinds lists every known kind.
var Kinds = []Kind{KindSliding, KindRandom, KindTracks, KindBalanced, KindTriplets, KindPairs}

// Config is the YAML generator configuration. Fields irrelevant to Kind are
// ignored.
type Config struct {
	Kind Kind `yaml:"kind"`

	// Duration is the window (sliding) or crop (others) duration in seconds.
	Duration float64 `yaml:"duration,omitempty"`
	// Step is the sliding window stride.
	Step float64 `yaml:"step,omitempty"`
	// MinDuration enables variable-length windows (sliding) or, with
	// MaxDuration, random-duration crops (random, tracks).
	MinDuration float64 `yaml:"min_duration,omitempty"`
	MaxDuration float64 `yaml:"max_duration,omitempty"`

	Weighted bool `yaml:"weighted,omitempty"`
	PerLabel int  `yaml:"per_label,omitempty"`
	Repeat   bool `yaml:"repeat,omitempty"`
	Tracks   bool `yaml:"tracks,omitempty"`
	Labels   bool `yaml:"labels,omitempty"`

	// Field is the record field sampled by sliding and random generators.
	Field record.Field `yaml:"field,omitempty"`
	Seed  int64        `yaml:"seed,omitempty"`
}

// DecodeConfig reads one YAML Config from r. Unknown keys are rejected.
func DecodeConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errs.Wrapf(errs.ErrInvalidParameter, "generator.DecodeConfig: %v", err)
	}
	return cfg, nil
}

// LoadConfig reads a YAML Config file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errs.Wrapf(err, "generator.LoadConfig")
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, errs.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Build constructs the generator described by cfg. probe resolves media
// durations and may be nil (WAV header probe). logger may be nil.
func Build(cfg Config, probe record.Prober, logger *zap.Logger) (Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("generator", string(cfg.Kind)))
	if cfg.Field != "" {
		if _, err := record.ParseField(string(cfg.Field)); err != nil {
			return nil, errs.Wrapf(err, "generator.Build")
		}
	}

	switch cfg.Kind {
	case KindSliding:
		return buildSliding(cfg, probe, logger)
	case KindRandom:
		opts := uniformOptions(cfg, probe, logger)
		if cfg.Field != "" {
			opts = append(opts, uniform.WithField(cfg.Field))
		}
		s, err := uniform.New(opts...)
		if err != nil {
			return nil, err
		}
		return Wrap[timeline.Segment](s), nil
	case KindTracks:
		s, err := uniform.NewTracks(append(uniformOptions(cfg, probe, logger), uniform.WithLabels(cfg.Labels))...)
		if err != nil {
			return nil, err
		}
		return Wrap[timeline.TrackItem](s), nil
	case KindBalanced:
		opts := []balanced.Option{
			balanced.WithDuration(cfg.Duration),
			balanced.WithSeed(cfg.Seed),
			balanced.WithLogger(logger),
		}
		if cfg.Repeat {
			opts = append(opts, balanced.WithRepeat())
		}
		perLabel := cfg.PerLabel
		if perLabel == 0 {
			perLabel = balanced.DefaultPerLabel
		}
		s, err := balanced.New(perLabel, opts...)
		if err != nil {
			return nil, err
		}
		return Wrap[timeline.TrackItem](s), nil
	case KindTriplets:
		b, err := triplet.New(tripletOptions(cfg, logger)...)
		if err != nil {
			return nil, err
		}
		return Wrap[triplet.Triplet](b), nil
	case KindPairs:
		b, err := pairs.New(tripletOptions(cfg, logger)...)
		if err != nil {
			return nil, err
		}
		return Wrap[pairs.Pair](b), nil
	}
	return nil, errs.Invalidf("generator.Build", "unknown kind %q, want one of %v", cfg.Kind, Kinds)
}

func buildSliding(cfg Config, probe record.Prober, logger *zap.Logger) (Generator, error) {
	duration, step := cfg.Duration, cfg.Step
	if duration == 0 {
		duration = sliding.DefaultDuration
	}
	if step == 0 {
		step = sliding.DefaultStep
	}
	opts := []sliding.Option{sliding.WithLogger(logger)}
	if cfg.MinDuration != 0 {
		opts = append(opts, sliding.WithMinDuration(cfg.MinDuration))
	}
	if cfg.Field != "" {
		opts = append(opts, sliding.WithField(cfg.Field))
	}
	if probe != nil {
		opts = append(opts, sliding.WithProber(probe))
	}
	s, err := sliding.New(duration, step, opts...)
	if err != nil {
		return nil, err
	}
	return Wrap[timeline.Segment](s), nil
}

func uniformOptions(cfg Config, probe record.Prober, logger *zap.Logger) []uniform.Option {
	opts := []uniform.Option{uniform.WithSeed(cfg.Seed), uniform.WithLogger(logger)}
	if cfg.MaxDuration > 0 {
		opts = append(opts, uniform.WithDurationRange(cfg.MinDuration, cfg.MaxDuration))
	}
	if cfg.Duration != 0 {
		opts = append(opts, uniform.WithDuration(cfg.Duration))
	}
	if cfg.Weighted {
		opts = append(opts, uniform.WithWeighted())
	}
	if probe != nil {
		opts = append(opts, uniform.WithProber(probe))
	}
	return opts
}

func tripletOptions(cfg Config, logger *zap.Logger) []triplet.Option {
	opts := []triplet.Option{
		triplet.WithDuration(cfg.Duration),
		triplet.WithTracks(cfg.Tracks),
		triplet.WithLabels(cfg.Labels),
		triplet.WithSeed(cfg.Seed),
		triplet.WithLogger(logger),
	}
	if cfg.PerLabel != 0 {
		opts = append(opts, triplet.WithPerLabel(cfg.PerLabel))
	}
	return opts
}
