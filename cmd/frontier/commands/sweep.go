package commands

import (
	"context"
	"os"
	"os/signal"
	"runtime"

	"github.com/brandonshearin/frontier/graph"
	"github.com/brandonshearin/frontier/report"
	"github.com/brandonshearin/frontier/sweep"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Solve a batch of seeded graphs with several worker counts and compare the results",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSweep(cmd)
	},
}

func init() {
	flags := sweepCmd.Flags()
	flags.Int("nodes", 100, "number of nodes in every graph")
	flags.Float64("edge-probability", graph.DefaultEdgeProbability, "probability that two nodes are connected")
	flags.Int64("max-weight", graph.DefaultMaxWeight, "exclusive upper bound for edge weights")
	flags.Int64("first-seed", graph.DefaultSeed, "seed of the first trial")
	flags.Int("trials", 10, "number of trials")
	flags.IntSlice("worker-counts", []int{1, 4}, "worker pool sizes every trial is solved with")
	flags.Int("parallelism", runtime.NumCPU(), "number of trials solved concurrently")
}

func runSweep(cmd *cobra.Command) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	trials, err := sweep.Run(ctx, sweep.Config{
		Nodes:           viper.GetInt("nodes"),
		EdgeProbability: viper.GetFloat64("edge-probability"),
		MaxWeight:       viper.GetInt64("max-weight"),
		FirstSeed:       viper.GetInt64("first-seed"),
		Trials:          viper.GetInt("trials"),
		WorkerCounts:    viper.GetIntSlice("worker-counts"),
		Parallelism:     viper.GetInt("parallelism"),
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	return report.WriteTrials(cmd.OutOrStdout(), trials)
}
