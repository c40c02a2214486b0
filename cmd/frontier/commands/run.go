package commands

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/brandonshearin/frontier/graph"
	"github.com/brandonshearin/frontier/report"
	"github.com/brandonshearin/frontier/shortestpath"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a graph and compute the shortest path between two of its nodes",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runShortestPath(cmd)
	},
}

func init() {
	flags := runCmd.Flags()
	flags.Int("nodes", 100, "number of graph nodes")
	flags.Int64("seed", graph.DefaultSeed, "graph generation seed")
	flags.Float64("edge-probability", graph.DefaultEdgeProbability, "probability that two nodes are connected")
	flags.Int64("max-weight", graph.DefaultMaxWeight, "exclusive upper bound for edge weights")
	flags.Int("threads", runtime.NumCPU(), "total threads; one is reserved for the coordinator")
	flags.Int("workers", 0, "worker pool size (overrides --threads when set)")
	flags.Int("source", -1, "source node (-1 picks one at random)")
	flags.Int("target", -1, "target node (-1 picks one at random)")
	flags.Bool("table", false, "print the per-node distance table")
	flags.Bool("dump-graph", false, "print every edge with the final distances")
	flags.Duration("timeout", 0, "abort the traversal after this long (0 disables)")
}

func runShortestPath(cmd *cobra.Command) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	workers := viper.GetInt("workers")
	if workers == 0 {
		workers = shortestpath.WorkersForThreads(viper.GetInt("threads"))
	}
	calc, err := shortestpath.NewCalculator(shortestpath.Config{
		Workers:      workers,
		Observer:     shortestpath.NewLoggingObserver(logger),
		CollectTable: viper.GetBool("table"),
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	seed := viper.GetInt64("seed")
	g, err := graph.Generate(graph.GeneratorConfig{
		Nodes:           viper.GetInt("nodes"),
		Seed:            seed,
		EdgeProbability: viper.GetFloat64("edge-probability"),
		MaxWeight:       viper.GetInt64("max-weight"),
	})
	if err != nil {
		return err
	}

	source, target := graph.NodeID(viper.GetInt("source")), graph.NodeID(viper.GetInt("target"))
	if source < 0 || target < 0 {
		randomSource, randomTarget, err := graph.PickSourceAndTarget(g, seed)
		if err != nil {
			return err
		}
		if source < 0 {
			source = randomSource
		}
		if target < 0 {
			target = randomTarget
		}
	}

	logger.WithFields(logrus.Fields{
		"nodes":  g.NodeCount(),
		"edges":  g.EdgeCount(),
		"source": source,
		"target": target,
	}).Info("graph generated")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
		defer cancelTimeout()
	}

	start := time.Now()
	res, err := calc.Run(ctx, g, source, target)
	if err != nil {
		return xerrors.Errorf("shortest path from %d to %d: %w", source, target, err)
	}
	logger.WithField("elapsed", time.Since(start).String()).Info("traversal finished")

	out := cmd.OutOrStdout()
	if err = report.WriteResult(out, res); err != nil {
		return err
	}
	if viper.GetBool("table") {
		if err = report.WriteTable(out, res); err != nil {
			return err
		}
	}
	if viper.GetBool("dump-graph") {
		return report.WriteGraph(out, g)
	}
	return nil
}
