package statistics

import (
	"fmt"
	"io"
)

// ConsoleWriter prints one line per statistic.
type ConsoleWriter struct {
	w       io.Writer
	records []Record
}

// NewConsoleWriter creates a ConsoleWriter that prints to w.
func NewConsoleWriter(w io.Writer) *ConsoleWriter {
	return &ConsoleWriter{w: w}
}

// Init does nothing for the console.
func (o *ConsoleWriter) Init() error {
	return nil
}

// Write buffers a record.
func (o *ConsoleWriter) Write(record Record) {
	o.records = append(o.records, record)
}

// Flush prints the buffered records.
func (o *ConsoleWriter) Flush() error {
	for _, e := range o.records {
		_, err := fmt.Fprintf(o.w,
			"%s.%s : Count = %d; Sum = %g; Min = %g; Max = %g\n",
			e.Component, e.Name, e.Count, e.Sum, e.Min, e.Max)
		if err != nil {
			return err
		}
	}

	o.records = nil

	return nil
}

// Close does nothing for the console.
func (o *ConsoleWriter) Close() error {
	return nil
}
