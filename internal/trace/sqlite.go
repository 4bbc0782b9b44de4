package trace

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rs/xid"

	"ticksched/internal/sched"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS events (
	run_id  TEXT    NOT NULL,
	tick    INTEGER NOT NULL,
	kind    TEXT    NOT NULL,
	pid     INTEGER NOT NULL,
	name    TEXT    NOT NULL,
	elapsed INTEGER NOT NULL,
	total   INTEGER NOT NULL,
	policy  TEXT    NOT NULL
)`

const insertEvent = `INSERT INTO events (run_id, tick, kind, pid, name, elapsed, total, policy)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteWriter buffers non-tick events and writes them to an events table
// in batches. Every writer tags its rows with its own run id, so several
// runs can share one database file.
type SQLiteWriter struct {
	db        *sql.DB
	runID     string
	batchSize int
	pending   []sched.StatusEvent
	err       error
	logger    *slog.Logger
}

// OpenSQLite opens (or creates) the database at path. An empty path picks
// a fresh "ticksched_trace_<xid>.sqlite3" in the working directory.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteWriter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	runID := xid.New().String()
	if path == "" {
		path = "ticksched_trace_" + runID + ".sqlite3"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one connection, so ":memory:" databases are not split per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}

	logger.Debug("trace database opened", "component", "trace", "path", path, "run_id", runID)
	return &SQLiteWriter{
		db:        db,
		runID:     runID,
		batchSize: 1000,
		logger:    logger.With("component", "trace"),
	}, nil
}

// RunID identifies the rows written by this writer.
func (w *SQLiteWriter) RunID() string { return w.runID }

// Hook is a sched.Hook.
func (w *SQLiteWriter) Hook(ev sched.StatusEvent) {
	if ev.Kind == sched.StatusTick {
		return
	}

	w.pending = append(w.pending, ev)
	if len(w.pending) >= w.batchSize {
		w.Flush()
	}
}

// Flush writes pending events in one transaction and returns the first
// error seen so far.
func (w *SQLiteWriter) Flush() error {
	if w.err != nil || len(w.pending) == 0 {
		return w.err
	}

	w.err = w.insert(context.Background(), w.pending)
	if w.err != nil {
		w.logger.Error("trace flush failed", "err", w.err)
	}
	w.pending = w.pending[:0]
	return w.err
}

func (w *SQLiteWriter) insert(ctx context.Context, events []sched.StatusEvent) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertEvent)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx,
			w.runID, ev.Tick, ev.Kind.String(), int64(ev.ProcessID),
			ev.Name, ev.Elapsed, ev.Total, ev.Policy,
		); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return tx.Commit()
}

// Close flushes and closes the database.
func (w *SQLiteWriter) Close() error {
	err := w.Flush()
	if cerr := w.db.Close(); err == nil {
		err = cerr
	}
	return err
}
