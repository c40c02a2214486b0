package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "frontier",
	Short: "Parallel frontier-relaxation shortest paths",
	Long: `frontier computes single-source shortest paths over randomly generated
weighted graphs. One coordinator selects the frontier node each round while
a fixed pool of workers relaxes its edges in parallel.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text or json)")
	bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}

// initConfig wires viper to the optional config file and FRONTIER_*
// environment variables. Flags passed on the command line take precedence.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "reading config file %q: %v\n", cfgFile, err)
			os.Exit(1)
		}
	}

	viper.SetEnvPrefix("frontier")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func bindFlags(flags *pflag.FlagSet) {
	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
}

// newLogger builds the root logger from the log-level and log-format
// settings.
func newLogger() (*logrus.Entry, error) {
	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, xerrors.Errorf("parsing log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	switch format := viper.GetString("log-format"); format {
	case "json":
		logger.SetFormatter(new(logrus.JSONFormatter))
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, xerrors.Errorf("unsupported log format %q", format)
	}

	host, _ := os.Hostname()
	return logrus.NewEntry(logger).WithField("host", host), nil
}
