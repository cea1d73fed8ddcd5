package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/components"
	"github.com/methylsight/bicover/pkg/config"
)

// componentsOpts holds the command-line flags for the components command.
type componentsOpts struct {
	format    string
	output    string
	timepoint string
}

// newComponentsCmd creates the components command, which partitions the
// graph into connected, biconnected and triconnected components. When a
// cover file is given, the biclique graph's components are classified
// too.
func newComponentsCmd(configPath *string) *cobra.Command {
	var opts componentsOpts

	cmd := &cobra.Command{
		Use:   "components <graph.json> [cover.txt]",
		Short: "Analyze graph connectivity structure",
		Long: `Partition the measured graph into connected, biconnected and
triconnected components, reporting articulation points, bridges and
separation pairs. With a cover file, the rebuilt biclique graph's
connected components are classified as well.

Examples:
  bicover components p21.json
  bicover components p21.json p21_cover.txt -o components.json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			coverPath := ""
			if len(args) == 2 {
				coverPath = args[1]
			}
			return runComponents(c.Context(), *configPath, opts, args[0], coverPath)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatNumber, "cover token format (number, gene-name)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.timepoint, "timepoint", "", "override the graph's timepoint tag")

	return cmd
}

func runComponents(ctx context.Context, configPath string, opts componentsOpts, graphPath, coverPath string) error {
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

	bg := g
	var cover []biclique.Biclique
	if coverPath != "" {
		cover, err = loadCover(coverPath, opts.format, g, cfg)
		if err != nil {
			return err
		}
		bg = biclique.BuildGraph(g, cover)
	}

	p := newProgress(logger)
	analysis := components.Analyze(cfg.Thresholds, g, bg, cover, nil)
	p.done(fmt.Sprintf("Partitioned %d nodes", g.NodeCount()))

	printKeyValue("connected", fmt.Sprintf("%d", len(analysis.Original.Connected.Components)))
	printKeyValue("biconnected", fmt.Sprintf("%d", len(analysis.Original.Biconnected.Components)))
	printKeyValue("triconnected", fmt.Sprintf("%d", len(analysis.Original.Triconnected.Components)))
	printKeyValue("articulation", fmt.Sprintf("%d", len(analysis.Original.ArticulationPoints)))
	printKeyValue("bridges", fmt.Sprintf("%d", len(analysis.Original.Bridges)))

	return writeJSON(opts.output, analysis)
}
