package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/methylsight/bicover/pkg/config"
	"github.com/methylsight/bicover/pkg/pipeline"
)

// dominateOpts holds the command-line flags for the dominate command.
type dominateOpts struct {
	output    string
	timepoint string
	weights   string
	refresh   bool
}

// newDominateCmd creates the dominate command, which computes only the
// weighted red-blue dominating set for a graph.
func newDominateCmd(configPath *string) *cobra.Command {
	opts := dominateOpts{weights: pipeline.WeightUniform}

	cmd := &cobra.Command{
		Use:   "dominate <graph.json>",
		Short: "Compute the weighted red-blue dominating set",
		Long: `Compute a minimal set of DMR nodes such that every reachable gene is
adjacent to at least one member. Results are cached by graph content
hash, so repeated runs over an unchanged graph are free.

Examples:
  bicover dominate p21.json
  bicover dominate p21.json --weights area -o domset.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runDominate(c.Context(), *configPath, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.timepoint, "timepoint", "", "override the graph's timepoint tag")
	cmd.Flags().StringVar(&opts.weights, "weights", opts.weights, "DMR weighting scheme (uniform, area)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the dominating-set cache")

	return cmd
}

func runDominate(ctx context.Context, configPath string, opts dominateOpts, graphPath string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	g, err := loadGraph(graphPath, opts.timepoint)
	if err != nil {
		return err
	}
	if _, err := g.Validate(); err != nil {
		return err
	}

	c, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, logger)
	defer runner.Close()

	p := newProgress(logger)
	ds, hit, err := runner.DominateWithCacheInfo(ctx, g, pipeline.Options{
		Weights: opts.weights,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Dominating set: %d DMRs covering %d genes", ds.Size(), len(ds.DominatedGenes)))
	printStats(g.NodeCount(), g.EdgeCount(), hit)
	if len(ds.Unreachable) > 0 {
		printWarning("%d genes are unreachable from any DMR", len(ds.Unreachable))
	}

	return writeJSON(opts.output, ds)
}
