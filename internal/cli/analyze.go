package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/methylsight/bicover/pkg/config"
	"github.com/methylsight/bicover/pkg/pipeline"
	"github.com/methylsight/bicover/pkg/store"
)

// analyzeOpts holds the command-line flags for the analyze command.
type analyzeOpts struct {
	format       string // cover token format: number or gene-name
	output       string // report file path (stdout if empty)
	timepoint    string // override the graph's timepoint tag
	weights      string // dominating-set weighting scheme
	perBiclique  bool   // per-biclique reconciliation stats
	skipDominate bool   // skip the dominating-set stage
	optimize     bool   // drop redundant dominating-set members
	refresh      bool   // bypass the dominating-set cache
	archive      bool   // persist the report to MongoDB
}

// newAnalyzeCmd creates the analyze command, which runs the complete
// pipeline over a graph and its biclique cover and writes a report.
func newAnalyzeCmd(configPath *string) *cobra.Command {
	opts := analyzeOpts{weights: pipeline.WeightUniform}

	cmd := &cobra.Command{
		Use:   "analyze <graph.json> <cover.txt>",
		Short: "Run the complete analysis pipeline",
		Long: `Run the complete analysis pipeline over a bipartite graph and its
biclique cover: validation, biclique graph reconstruction, edge
reconciliation, dominating set computation, component analysis and
report aggregation.

Examples:
  bicover analyze p21.json p21_cover.txt
  bicover analyze p21.json p21_cover.txt -o report.json --weights area
  bicover analyze p21.json named_cover.txt --format gene-name`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runAnalyze(c.Context(), *configPath, opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatNumber, "cover token format (number, gene-name)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "report file (stdout if empty)")
	cmd.Flags().StringVar(&opts.timepoint, "timepoint", "", "override the graph's timepoint tag")
	cmd.Flags().StringVar(&opts.weights, "weights", opts.weights, "DMR weighting scheme (uniform, area)")
	cmd.Flags().BoolVar(&opts.perBiclique, "per-biclique", false, "include per-biclique reconciliation statistics")
	cmd.Flags().BoolVar(&opts.skipDominate, "skip-dominate", false, "skip the dominating-set stage")
	cmd.Flags().BoolVar(&opts.optimize, "optimize", false, "drop dominating-set members made redundant by biclique co-membership")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the dominating-set cache")
	cmd.Flags().BoolVar(&opts.archive, "store", false, "persist the report to MongoDB (requires [mongo] config)")

	return cmd
}

func runAnalyze(ctx context.Context, configPath string, opts analyzeOpts, graphPath, coverPath string) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	g, err := loadGraph(graphPath, opts.timepoint)
	if err != nil {
		return err
	}
	cover, err := loadCover(coverPath, opts.format, g, cfg)
	if err != nil {
		return err
	}

	c, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, logger)
	defer runner.Close()

	p := newProgress(logger)
	result, err := runner.Execute(ctx, g, cover, pipeline.Options{
		Thresholds:   cfg.Thresholds,
		Weights:      opts.weights,
		PerBiclique:  opts.perBiclique,
		SkipDominate: opts.skipDominate,
		Optimize:     opts.optimize,
		Refresh:      opts.refresh,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Analyzed %d bicliques over %d edges", len(cover), result.Stats.EdgeCount))

	printSummary(result)

	if opts.output != "" {
		if err := store.ExportReport(result.Report, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
	} else if err := writeJSON("", result.Report); err != nil {
		return err
	}

	if opts.archive {
		if err := archiveReport(ctx, cfg, result); err != nil {
			return err
		}
		printSuccess("Archived report %s", result.Report.RunID)
	}

	return nil
}

func archiveReport(ctx context.Context, cfg config.Config, result *pipeline.Result) error {
	st, err := store.NewMongoStore(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer st.Close(ctx)
	return st.SaveReport(ctx, result.Report)
}

// printSummary renders the static analyze summary.
func printSummary(result *pipeline.Result) {
	rep := result.Report

	printNewline()
	fmt.Println(StyleTitle.Render("Analysis Summary"))
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.DominateHit)
	printNewline()

	if rep.Timepoint != "" {
		printKeyValue("timepoint", rep.Timepoint)
	}
	printKeyValue("bicliques", fmt.Sprintf("%d", rep.BicliqueCount))
	printKeyValue("categories", fmt.Sprintf("simple %d · interesting %d · complex %d · empty %d",
		rep.Categories["simple"], rep.Categories["interesting"],
		rep.Categories["complex"], rep.Categories["empty"]))

	rs := rep.Reconciliation.Stats
	printKeyValue("permanent", fmt.Sprintf("%d", rs.Permanent))
	printKeyValue("false pos/neg", fmt.Sprintf("%d / %d", rs.FalsePositives, rs.FalseNegatives))
	printKeyValue("accuracy", fmt.Sprintf("%.4f", rs.Accuracy))
	printKeyValue("noise", fmt.Sprintf("%.2f%%", rs.NoisePercent))

	comp := rep.Components
	printKeyValue("components", fmt.Sprintf("connected %d · biconnected %d · triconnected %d",
		len(comp.Original.Connected.Components),
		len(comp.Original.Biconnected.Components),
		len(comp.Original.Triconnected.Components)))

	if ds := rep.DominatingSet; ds != nil {
		printKeyValue("dominating set", fmt.Sprintf("%d DMRs covering %d genes",
			ds.Size(), len(ds.DominatedGenes)))
		if len(result.DroppedMembers) > 0 {
			printDetail("redundancy optimizer dropped %d members", len(result.DroppedMembers))
		}
	}

	if result.Validation.RemovedIsolatedGenes > 0 {
		printWarning("removed %d isolated gene nodes during validation", result.Validation.RemovedIsolatedGenes)
	}
	printNewline()
}
