// Command fragments draws training fragments from annotated recordings.
//
//	fragments sample --record rec.yaml --config gen.yaml --limit 100
//	fragments signature --config gen.yaml
//	fragments stats --record rec.yaml --field annotation
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fragments",
		Short:         "sample windows, segments, triplets and pairs from annotated recordings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("debug", false, "log debug events to stderr")

	root.AddCommand(sampleCmd(), signatureCmd(), statsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fragments:", err)
		os.Exit(1)
	}
}
