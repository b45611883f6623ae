package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/simexp/experiment/experiment"
	"github.com/simexp/experiment/statistics"
)

type options struct {
	clock      string // Clock frequency, overrides the config file
	memory     string // Memory size, overrides the config file
	configPath string // YAML file with the experiment parameters
	envFile    string // dotenv file loaded before reading the environment
	statLevel  int    // Statistic load level requested from the host
	statOutput string // Statistic output requested from the host
	statDir    string // Directory of file-based statistic outputs
	logLevel   string // Log verbosity level
}

func (o *options) addFlags(cmd *cobra.Command) {
	defaults := experiment.DefaultParams()

	cmd.Flags().StringVar(&o.clock, "clock", defaults.ClockFrequency,
		"Clock frequency")
	cmd.Flags().StringVar(&o.memory, "memory", defaults.MemorySize,
		"Memory size")
	cmd.Flags().StringVar(&o.configPath, "config", "",
		"YAML file with the experiment parameters")
	cmd.Flags().StringVar(&o.envFile, "env-file", "",
		"dotenv file to load into the environment")
	cmd.Flags().IntVar(&o.statLevel, "stat-level",
		experiment.DefaultStatisticLoadLevel,
		"Statistic load level")
	cmd.Flags().StringVar(&o.statOutput, "stat-output",
		statistics.ConsoleOutput,
		"Statistic output (console, csv, sqlite)")
	cmd.Flags().StringVar(&o.statDir, "stat-dir", "",
		"Directory for csv and sqlite statistic outputs")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log", "error",
		"Log level (trace, debug, info, warn, error, fatal, panic)")
}

// params resolves the experiment parameters. Later sources win: defaults,
// config file, environment, flags.
func (o *options) params(cmd *cobra.Command) (experiment.Params, error) {
	p := experiment.DefaultParams()

	if o.configPath != "" {
		var err error
		p, err = experiment.LoadParams(o.configPath)
		if err != nil {
			return p, err
		}
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return p, fmt.Errorf("loading env file: %w", err)
		}
	}

	p.ApplyEnv()

	if cmd.Flags().Changed("clock") {
		p.ClockFrequency = o.clock
	}

	if cmd.Flags().Changed("memory") {
		p.MemorySize = o.memory
	}

	return p, p.Validate()
}
