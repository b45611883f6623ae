package statistics

import (
	"database/sql"
	"fmt"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/tebeka/atexit"
)

// SQLiteWriter stores statistics in a SQLite database.
type SQLiteWriter struct {
	*sql.DB

	dbName    string
	records   []Record
	batchSize int
	err       error
	closed    bool
}

// NewSQLiteWriter creates a SQLiteWriter. The ".sqlite3" extension is
// appended to path.
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{
		dbName:    path,
		batchSize: 100000,
	}
}

// Filename returns the name of the database file.
func (o *SQLiteWriter) Filename() string {
	return o.dbName + ".sqlite3"
}

// Init creates the database and the statistics table. It fails if the
// database file already exists.
func (o *SQLiteWriter) Init() error {
	filename := o.Filename()

	_, err := os.Stat(filename)
	if err == nil {
		return fmt.Errorf("file %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		create table statistics
		(
			id        varchar(200) not null,
			component varchar(200) not null,
			name      varchar(200) not null,
			count     integer      not null,
			sum       float        not null,
			min       float        not null,
			max       float        not null
		);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("creating statistics table: %w", err)
	}

	o.DB = db

	atexit.Register(func() {
		_ = o.Close()
	})

	return nil
}

// Write buffers a record, flushing when a batch is full. A failed flush is
// reported by Close.
func (o *SQLiteWriter) Write(record Record) {
	o.records = append(o.records, record)
	if len(o.records) >= o.batchSize {
		if err := o.Flush(); err != nil && o.err == nil {
			o.err = err
		}
	}
}

// Flush inserts all the buffered records in one transaction. The buffer is
// kept if the transaction fails.
func (o *SQLiteWriter) Flush() error {
	if len(o.records) == 0 {
		return nil
	}

	tx, err := o.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		insert into statistics (id, component, name, count, sum, min, max)
		values (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range o.records {
		_, err := stmt.Exec(
			e.ID,
			e.Component,
			e.Name,
			e.Count,
			e.Sum,
			e.Min,
			e.Max,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("inserting statistic %s.%s: %w",
				e.Component, e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	o.records = nil

	return nil
}

// Close flushes the remaining records and closes the database. It returns
// the first error met by Write or by the final flush. Calling Close more
// than once is allowed.
func (o *SQLiteWriter) Close() error {
	if o.closed || o.DB == nil {
		return nil
	}
	o.closed = true

	err := o.Flush()
	if o.err != nil {
		err = o.err
	}

	if err != nil {
		o.DB.Close()
		return err
	}

	return o.DB.Close()
}
