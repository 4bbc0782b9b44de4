package trace

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"ticksched/internal/sched"
)

var csvHeader = []string{"timestamp", "tick", "event", "pid", "name", "elapsed", "total", "policy"}

// CSVWriter records every non-tick event as one CSV row.
type CSVWriter struct {
	w      *csv.Writer
	closer io.Closer
	err    error
}

// NewCSVWriter writes the header to w and returns the writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	cw.write(csvHeader)
	return cw
}

// CreateCSV creates (or truncates) the file at path for CSV tracing.
func CreateCSV(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	cw := NewCSVWriter(f)
	cw.closer = f
	return cw, nil
}

// Hook is a sched.Hook.
func (c *CSVWriter) Hook(ev sched.StatusEvent) {
	if ev.Kind == sched.StatusTick {
		return
	}

	c.write([]string{
		ev.Time.Format(time.RFC3339Nano),
		strconv.FormatInt(ev.Tick, 10),
		ev.Kind.String(),
		strconv.FormatUint(uint64(ev.ProcessID), 10),
		ev.Name,
		strconv.Itoa(ev.Elapsed),
		strconv.Itoa(ev.Total),
		ev.Policy,
	})
}

func (c *CSVWriter) write(rec []string) {
	if c.err != nil {
		return
	}
	c.err = c.w.Write(rec)
}

// Flush writes buffered rows and returns the first error seen so far.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	if c.err == nil {
		c.err = c.w.Error()
	}
	return c.err
}

// Close flushes and closes the underlying file, if CreateCSV opened one.
func (c *CSVWriter) Close() error {
	err := c.Flush()
	if c.closer != nil {
		if cerr := c.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
