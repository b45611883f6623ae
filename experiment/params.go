// Package experiment holds the configuration script of the example
// experiment. The script prints the experiment parameters and configures
// how the host collects statistics.
package experiment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the parameters.
const (
	EnvClockFrequency = "EXPERIMENT_CLOCK_FREQUENCY"
	EnvMemorySize     = "EXPERIMENT_MEMORY_SIZE"
)

// Params are the experiment parameters. The values are shown as written and
// are never parsed.
type Params struct {
	ClockFrequency string `yaml:"clock_frequency"`
	MemorySize     string `yaml:"memory_size"`
}

// DefaultParams returns the parameters of the example experiment.
func DefaultParams() Params {
	return Params{
		ClockFrequency: "1GHz",
		MemorySize:     "1GB",
	}
}

// LoadParams reads parameters from a YAML file. Keys missing from the file
// keep their default values. Unknown keys are rejected.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("reading experiment config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return p, fmt.Errorf("parsing experiment config: %w", err)
	}

	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("experiment config %s: %w", path, err)
	}

	return p, nil
}

// ApplyEnv overrides the parameters with the environment variables that are
// set.
func (p *Params) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvClockFrequency); ok {
		p.ClockFrequency = v
	}

	if v, ok := os.LookupEnv(EnvMemorySize); ok {
		p.MemorySize = v
	}
}

// Validate checks that both parameters are set.
func (p Params) Validate() error {
	if p.ClockFrequency == "" {
		return errors.New("clock frequency must not be empty")
	}

	if p.MemorySize == "" {
		return errors.New("memory size must not be empty")
	}

	return nil
}
