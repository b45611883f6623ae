package statistics

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// Names of the outputs that every Host knows about.
const (
	ConsoleOutput = "console"
	CSVOutput     = "csv"
	SQLiteOutput  = "sqlite"
)

// An Output is a destination that statistics are written to.
type Output interface {
	// Init prepares the output. It is called once before any Write.
	Init() error

	// Write buffers one statistic record.
	Write(record Record)

	// Flush writes all the buffered records.
	Flush() error

	// Close releases the resources held by the output.
	Close() error
}

// OutputOptions carries the settings an OutputFactory may need.
type OutputOptions struct {
	// Writer receives the console output.
	Writer io.Writer

	// Dir is the directory that file-based outputs are created in.
	Dir string

	// Path overrides the generated file name, without extension.
	Path string
}

// An OutputFactory creates an Output.
type OutputFactory func(opts OutputOptions) Output

func defaultFactories() map[string]OutputFactory {
	return map[string]OutputFactory{
		ConsoleOutput: func(opts OutputOptions) Output {
			w := opts.Writer
			if w == nil {
				w = os.Stdout
			}

			return NewConsoleWriter(w)
		},
		CSVOutput: func(opts OutputOptions) Output {
			return NewCSVWriter(filePath(opts, "stats_"))
		},
		SQLiteOutput: func(opts OutputOptions) Output {
			return NewSQLiteWriter(filePath(opts, "stats_"))
		},
	}
}

func filePath(opts OutputOptions, prefix string) string {
	name := opts.Path
	if name == "" {
		name = prefix + xid.New().String()
	}

	if opts.Dir == "" {
		return name
	}

	return filepath.Join(opts.Dir, name)
}
