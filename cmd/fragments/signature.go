package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fragments/generator"
)

func signatureCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "signature",
		Short: "print the output signature of a generator configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := generator.LoadConfig(configPath)
			if err != nil {
				return err
			}
			gen, err := generator.Build(cfg, nil, commandLogger(cmd))
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(gen.Signature())
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "generator YAML file")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
