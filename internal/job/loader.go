// Package job loads batches of sample processes into a scheduler.
//
// The input is line oriented, one process per line:
//
//	# name,priority,totalTime
//	editor,5,10
//	compiler,3,8
//
// Blank lines and lines starting with '#' are skipped.
package job

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"ticksched/internal/sched"
)

// Creator is the part of the scheduler the loader needs.
type Creator interface {
	CreateProcess(name string, priority, totalTime int) (sched.Process, error)
}

// Entry is one parsed line of a load file.
type Entry struct {
	Line      int
	Name      string
	Priority  int
	TotalTime int
}

// LineError reports a line that could not be parsed or was rejected.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

var errFieldCount = errors.New("want name,priority,totalTime")

// Parse reads every line of r. Bad lines do not stop parsing; they are
// returned together as a joined error of *LineError values.
func Parse(r io.Reader) ([]Entry, error) {
	var (
		entries []Entry
		errs    []error
	)

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		e, err := parseLine(text)
		if err != nil {
			errs = append(errs, &LineError{Line: n, Text: text, Err: err})
			continue
		}
		e.Line = n
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, err)
	}

	return entries, errors.Join(errs...)
}

func parseLine(text string) (Entry, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return Entry{}, errFieldCount
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Entry{}, errors.New("empty name")
	}
	priority, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Entry{}, fmt.Errorf("priority: %w", err)
	}
	total, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Entry{}, fmt.Errorf("total time: %w", err)
	}

	return Entry{Name: name, Priority: priority, TotalTime: total}, nil
}

// Load parses r and creates one process per valid line, in file order.
// It returns the processes created; the error lists every line that was
// skipped, including lines the scheduler rejected.
func Load(r io.Reader, c Creator, logger *slog.Logger) ([]sched.Process, error) {
	entries, parseErr := Parse(r)
	errs := []error{parseErr}

	created := make([]sched.Process, 0, len(entries))
	for _, e := range entries {
		p, err := c.CreateProcess(e.Name, e.Priority, e.TotalTime)
		if err != nil {
			errs = append(errs, &LineError{
				Line: e.Line,
				Text: fmt.Sprintf("%s,%d,%d", e.Name, e.Priority, e.TotalTime),
				Err:  err,
			})
			continue
		}
		created = append(created, p)
	}

	err := errors.Join(errs...)
	if logger != nil {
		logger.Info("processes loaded", "created", len(created), "failed", err != nil)
	}
	return created, err
}

// LoadFile is Load on the named file.
func LoadFile(path string, c Creator, logger *slog.Logger) ([]sched.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f, c, logger)
}
