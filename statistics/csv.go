package statistics

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/tebeka/atexit"
)

// CSVWriter stores statistics in a CSV file.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer

	records    []Record
	bufferSize int
	err        error
	closed     bool
}

// NewCSVWriter creates a CSVWriter. The ".csv" extension is appended to
// path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Filename returns the name of the file that the writer writes to.
func (o *CSVWriter) Filename() string {
	return o.path + ".csv"
}

// Init creates the CSV file. It fails if the file already exists.
func (o *CSVWriter) Init() error {
	filename := o.Filename()

	_, err := os.Stat(filename)
	if err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	w := csv.NewWriter(file)
	_ = w.Write([]string{
		"ID", "Component", "Statistic", "Count", "Sum", "Min", "Max",
	})
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return err
	}

	o.file = file
	o.writer = w

	atexit.Register(func() {
		_ = o.Close()
	})

	return nil
}

// Write buffers a record, flushing when the buffer is full. A failed flush
// is reported by Close.
func (o *CSVWriter) Write(record Record) {
	o.records = append(o.records, record)
	if len(o.records) >= o.bufferSize {
		if err := o.Flush(); err != nil && o.err == nil {
			o.err = err
		}
	}
}

// Flush writes the buffered records to the file. Records are dropped from
// the buffer once they are handed to the file, so a retry never writes a
// row twice.
func (o *CSVWriter) Flush() error {
	for i, r := range o.records {
		err := o.writer.Write([]string{
			r.ID,
			r.Component,
			r.Name,
			strconv.FormatUint(r.Count, 10),
			formatFloat(r.Sum),
			formatFloat(r.Min),
			formatFloat(r.Max),
		})
		if err != nil {
			o.records = o.records[i:]
			return err
		}
	}

	o.records = nil
	o.writer.Flush()

	return o.writer.Error()
}

// Close flushes the remaining records and closes the file. It returns the
// first error met by Write or by the final flush. Calling Close more than
// once is allowed.
func (o *CSVWriter) Close() error {
	if o.closed || o.file == nil {
		return nil
	}
	o.closed = true

	err := o.Flush()
	if o.err != nil {
		err = o.err
	}

	if err != nil {
		o.file.Close()
		return err
	}

	return o.file.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
