package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simexp/experiment/experiment"
	"github.com/simexp/experiment/statistics"
)

func run(cmd *cobra.Command, opts *options) error {
	params, err := opts.params(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	host := statistics.MakeHostBuilder().
		WithWriter(out).
		WithOutputDir(opts.statDir).
		Build()

	script := experiment.MakeBuilder().
		WithParams(params).
		WithWriter(out).
		WithStatisticLoadLevel(opts.statLevel).
		WithStatisticOutput(opts.statOutput).
		Build()

	logrus.WithFields(logrus.Fields{
		"clock":  params.ClockFrequency,
		"memory": params.MemorySize,
	}).Info("Loading experiment configuration")

	if err := script.Run(host); err != nil {
		return err
	}

	if err := host.Close(); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"level":  host.StatisticLoadLevel(),
		"output": host.StatisticOutput(),
	}).Info("Experiment configuration complete")

	return nil
}
