package main

import (
	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/source"
)

// summary describes the interval durations of one record field.
type summary struct {
	URI       string             `yaml:"uri"`
	Field     record.Field       `yaml:"field"`
	Intervals int                `yaml:"intervals"`
	Total     float64            `yaml:"total"`
	Min       float64            `yaml:"min"`
	Max       float64            `yaml:"max"`
	Mean      float64            `yaml:"mean"`
	Median    float64            `yaml:"median"`
	P90       float64            `yaml:"p90"`
	StdDev    float64            `yaml:"stddev"`
	Labels    map[string]float64 `yaml:"labels,omitempty"`
}

func summarize(rec *record.Record, field record.Field) (summary, error) {
	src, err := rec.Lookup(field, nil)
	if err != nil {
		return summary{}, err
	}
	tl, err := src.Timeline()
	if err != nil {
		return summary{}, err
	}
	s := summary{URI: rec.URI, Field: field, Intervals: len(tl)}
	if src.Kind() == source.Labeled {
		ann := src.Annotation()
		s.Labels = make(map[string]float64)
		for _, l := range ann.Labels() {
			s.Labels[string(l)] = ann.LabelTimeline(l).Total()
		}
	}
	if len(tl) == 0 {
		return s, nil
	}

	d := stats.Float64Data(tl.Durations())
	s.Total, _ = stats.Sum(d)
	s.Min, _ = stats.Min(d)
	s.Max, _ = stats.Max(d)
	s.Mean, _ = stats.Mean(d)
	s.Median, _ = stats.Median(d)
	s.P90, _ = stats.Percentile(d, 90)
	s.StdDev, _ = stats.StandardDeviation(d)
	return s, nil
}

func statsCmd() *cobra.Command {
	var (
		recordPath string
		field      string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "summarize the interval durations of a record field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := record.ParseField(field)
			if err != nil {
				return err
			}
			rec, err := record.Load(recordPath)
			if err != nil {
				return err
			}
			s, err := summarize(rec, f)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(s)
		},
	}
	cmd.Flags().StringVar(&recordPath, "record", "", "record YAML file")
	cmd.Flags().StringVar(&field, "field", string(record.FieldAnnotation), "record field: annotated, annotation, coverage or medium.wav")
	_ = cmd.MarkFlagRequired("record")
	return cmd
}
