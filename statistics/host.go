package statistics

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// MaxLoadLevel is the highest statistic load level a Host accepts.
const MaxLoadLevel = 10

var (
	// ErrInvalidLoadLevel is returned when a load level is out of range.
	ErrInvalidLoadLevel = errors.New("invalid statistic load level")

	// ErrUnknownOutput is returned when an output name is not registered.
	ErrUnknownOutput = errors.New("unknown statistic output")
)

// Host owns the statistics configuration of a simulation.
//
// Statistics registered while the load level is below their own level stay
// disabled. When the Host closes, every enabled statistic is written to the
// selected output.
type Host struct {
	loadLevel  int
	outputName string
	options    OutputOptions
	factories  map[string]OutputFactory
	statistics []*Statistic
	closed     bool
}

// SetStatisticLoadLevel sets the level that newly registered statistics are
// compared against. Level 0 disables all statistics.
func (h *Host) SetStatisticLoadLevel(level int) error {
	if level < 0 || level > MaxLoadLevel {
		return fmt.Errorf("%w: %d, must be within [0, %d]",
			ErrInvalidLoadLevel, level, MaxLoadLevel)
	}

	h.loadLevel = level

	return nil
}

// StatisticLoadLevel returns the current load level.
func (h *Host) StatisticLoadLevel() int {
	return h.loadLevel
}

// SetStatisticOutput selects the output that statistics are written to.
func (h *Host) SetStatisticOutput(name string) error {
	if _, found := h.factories[name]; !found {
		return fmt.Errorf("%w: %q, available: %v",
			ErrUnknownOutput, name, h.OutputNames())
	}

	h.outputName = name

	return nil
}

// StatisticOutput returns the name of the selected output.
func (h *Host) StatisticOutput() string {
	return h.outputName
}

// RegisterOutput makes an output available under the given name.
func (h *Host) RegisterOutput(name string, factory OutputFactory) {
	if name == "" {
		panic("output name must not be empty")
	}

	h.factories[name] = factory
}

// OutputNames lists the registered outputs in alphabetical order.
func (h *Host) OutputNames() []string {
	names := make([]string, 0, len(h.factories))
	for name := range h.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// RegisterStatistic creates a statistic for a component. The statistic is
// enabled if its level does not exceed the current load level.
func (h *Host) RegisterStatistic(
	component, name string,
	level int,
) *Statistic {
	if h.closed {
		panic("cannot register statistic on a closed host")
	}

	enabled := level > 0 && level <= h.loadLevel
	s := newStatistic(component, name, level, enabled)
	h.statistics = append(h.statistics, s)

	return s
}

// Statistics returns all the registered statistics.
func (h *Host) Statistics() []*Statistic {
	return h.statistics
}

// Close writes the enabled statistics to the selected output. Only the
// first call has an effect.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true

	output := h.factories[h.outputName](h.options)

	if err := output.Init(); err != nil {
		return fmt.Errorf("initializing %s output: %w", h.outputName, err)
	}

	for _, s := range h.statistics {
		if s.Enabled() {
			output.Write(s.record())
		}
	}

	if err := output.Flush(); err != nil {
		output.Close()
		return fmt.Errorf("flushing %s output: %w", h.outputName, err)
	}

	if err := output.Close(); err != nil {
		return fmt.Errorf("closing %s output: %w", h.outputName, err)
	}

	return nil
}

// HostBuilder can build Hosts.
type HostBuilder struct {
	writer    io.Writer
	dir       string
	path      string
	loadLevel int
	output    string
}

// MakeHostBuilder creates a HostBuilder with the console output selected
// and all statistics disabled.
func MakeHostBuilder() HostBuilder {
	return HostBuilder{
		output: ConsoleOutput,
	}
}

// WithWriter sets the writer of the console output.
func (b HostBuilder) WithWriter(w io.Writer) HostBuilder {
	b.writer = w
	return b
}

// WithOutputDir sets the directory that file-based outputs write to.
func (b HostBuilder) WithOutputDir(dir string) HostBuilder {
	b.dir = dir
	return b
}

// WithOutputPath sets the file name, without extension, of file-based
// outputs.
func (b HostBuilder) WithOutputPath(path string) HostBuilder {
	b.path = path
	return b
}

// WithLoadLevel sets the initial load level.
func (b HostBuilder) WithLoadLevel(level int) HostBuilder {
	b.loadLevel = level
	return b
}

// WithOutput sets the initial output.
func (b HostBuilder) WithOutput(name string) HostBuilder {
	b.output = name
	return b
}

// Build creates a Host. It panics if the initial settings are invalid.
func (b HostBuilder) Build() *Host {
	h := &Host{
		options: OutputOptions{
			Writer: b.writer,
			Dir:    b.dir,
			Path:   b.path,
		},
		factories: defaultFactories(),
	}

	if err := h.SetStatisticLoadLevel(b.loadLevel); err != nil {
		panic(err)
	}

	if err := h.SetStatisticOutput(b.output); err != nil {
		panic(err)
	}

	return h
}
