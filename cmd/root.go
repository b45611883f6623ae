// Package cmd provides the command-line interface of the example experiment.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Execute runs the root command and exits the process. Functions registered
// with atexit, such as statistic output flushes, run before the exit.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "experiment",
		Short: "Loads the example experiment configuration.",
		Long: `Prints the parameters of the example experiment and ` +
			`configures how the simulation host collects statistics. ` +
			`Replace the example with your actual experiment configuration.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}

			logrus.SetLevel(level)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	opts.addFlags(rootCmd)

	return rootCmd
}
