package experiment

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/simexp/experiment/statistics"
)

// Title is the first line the script prints.
const Title = "Example Experiment Configuration"

// Separator brackets the parameter block.
var Separator = strings.Repeat("=", 50)

// DefaultStatisticLoadLevel is the load level the script requests.
const DefaultStatisticLoadLevel = 5

// Host is the simulation host that the script configures.
type Host interface {
	SetStatisticLoadLevel(level int) error
	SetStatisticOutput(name string) error
}

// Script prints the experiment parameters and configures the statistics of
// a Host.
type Script struct {
	params    Params
	out       io.Writer
	loadLevel int
	output    string
}

// Params returns the parameters the script prints.
func (s *Script) Params() Params {
	return s.params
}

// Run executes the script against the host. A failing host call is returned
// right away and nothing more is printed.
func (s *Script) Run(host Host) error {
	fmt.Fprintln(s.out, Title)
	fmt.Fprintln(s.out, Separator)
	fmt.Fprintf(s.out, "Clock frequency: %s\n", s.params.ClockFrequency)
	fmt.Fprintf(s.out, "Memory size: %s\n", s.params.MemorySize)
	fmt.Fprintln(s.out, Separator)

	if err := host.SetStatisticLoadLevel(s.loadLevel); err != nil {
		return fmt.Errorf("setting statistic load level: %w", err)
	}

	if err := host.SetStatisticOutput(s.output); err != nil {
		return fmt.Errorf("setting statistic output: %w", err)
	}

	fmt.Fprintln(s.out, "\nConfiguration loaded successfully!")
	fmt.Fprintln(s.out,
		"Note: This is an example. "+
			"Replace it with your actual experiment configuration.")

	return nil
}

// Builder can build Scripts.
type Builder struct {
	params    Params
	out       io.Writer
	loadLevel int
	output    string
}

// MakeBuilder creates a Builder with the example parameters, writing to
// standard output.
func MakeBuilder() Builder {
	return Builder{
		params:    DefaultParams(),
		out:       os.Stdout,
		loadLevel: DefaultStatisticLoadLevel,
		output:    statistics.ConsoleOutput,
	}
}

// WithParams sets the parameters to print.
func (b Builder) WithParams(p Params) Builder {
	b.params = p
	return b
}

// WithWriter sets where the script prints to.
func (b Builder) WithWriter(w io.Writer) Builder {
	b.out = w
	return b
}

// WithStatisticLoadLevel sets the load level requested from the host.
func (b Builder) WithStatisticLoadLevel(level int) Builder {
	b.loadLevel = level
	return b
}

// WithStatisticOutput sets the output requested from the host.
func (b Builder) WithStatisticOutput(name string) Builder {
	b.output = name
	return b
}

// Build creates a Script.
func (b Builder) Build() *Script {
	return &Script{
		params:    b.params,
		out:       b.out,
		loadLevel: b.loadLevel,
		output:    b.output,
	}
}
