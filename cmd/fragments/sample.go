package main

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/fragments/errs"
	"github.com/katalvlaran/fragments/generator"
	"github.com/katalvlaran/fragments/record"
	"github.com/katalvlaran/fragments/stream"
)

func sampleCmd() *cobra.Command {
	var (
		recordPath string
		configPath string
		limit      int
		seed       int64
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "print generated samples of a record as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return errs.Invalidf("sample", "--limit must be > 0, got %d", limit)
			}
			logger := commandLogger(cmd)
			defer logger.Sync()

			cfg, err := generator.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			rec, err := record.Load(recordPath)
			if err != nil {
				return err
			}
			gen, err := generator.Build(cfg, nil, logger)
			if err != nil {
				return err
			}
			samples, err := gen.FromRecord(rec)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			n := 0
			for s := range stream.All(stream.Limit(samples, limit)) {
				if err := enc.Encode(s.Value); err != nil {
					return errors.Wrap(err, "writing sample")
				}
				n++
			}
			logger.Info("sampling done",
				zap.String("record", rec.URI),
				zap.String("kind", string(cfg.Kind)),
				zap.Int("samples", n),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&recordPath, "record", "", "record YAML file")
	cmd.Flags().StringVar(&configPath, "config", "", "generator YAML file")
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum number of samples")
	cmd.Flags().Int64Var(&seed, "seed", 0, "override the configured seed")
	_ = cmd.MarkFlagRequired("record")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
