package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/config"
	"github.com/methylsight/bicover/pkg/reconcile"
)

// edgesOpts holds the command-line flags for the edges command.
type edgesOpts struct {
	format      string
	output      string
	timepoint   string
	perBiclique bool
}

// newEdgesCmd creates the edges command, which classifies every edge of
// the original graph and the biclique cover as permanent, false positive
// or false negative.
func newEdgesCmd(configPath *string) *cobra.Command {
	var opts edgesOpts

	cmd := &cobra.Command{
		Use:   "edges <graph.json> <cover.txt>",
		Short: "Reconcile cover edges against the measured graph",
		Long: `Classify every edge: permanent edges appear in both the measured graph
and the biclique cover, false positives only in the measured graph, and
false negatives only in the cover's completion.

Examples:
  bicover edges p21.json p21_cover.txt
  bicover edges p21.json p21_cover.txt --per-biclique -o edges.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runEdges(c.Context(), *configPath, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatNumber, "cover token format (number, gene-name)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.timepoint, "timepoint", "", "override the graph's timepoint tag")
	cmd.Flags().BoolVar(&opts.perBiclique, "per-biclique", false, "include per-biclique statistics")

	return cmd
}

func runEdges(ctx context.Context, configPath string, opts edgesOpts, graphPath, coverPath string) error {
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
	cover, err := loadCover(coverPath, opts.format, g, cfg)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	bg := biclique.BuildGraph(g, cover)
	result, err := reconcile.Classify(g, bg, cover, reconcile.Options{PerBiclique: opts.perBiclique})
	if err != nil {
		return err
	}
	if err := result.Validate(g, bg); err != nil {
		return err
	}
	p.done(fmt.Sprintf("Classified %d edges", result.Stats.Permanent+result.Stats.FalsePositives+result.Stats.FalseNegatives))

	printKeyValue("permanent", fmt.Sprintf("%d", result.Stats.Permanent))
	printKeyValue("false positives", fmt.Sprintf("%d", result.Stats.FalsePositives))
	printKeyValue("false negatives", fmt.Sprintf("%d", result.Stats.FalseNegatives))
	printKeyValue("accuracy", fmt.Sprintf("%.4f", result.Stats.Accuracy))

	return writeJSON(opts.output, result)
}
