// Package trace turns scheduler events into logs and trace files.
package trace

import (
	"context"
	"log/slog"

	"ticksched/internal/sched"
)

// LogHook logs every scheduler event. Ticks are periodic and only shown at
// debug level.
func LogHook(logger *slog.Logger) sched.Hook {
	logger = logger.With("component", "trace")

	return func(ev sched.StatusEvent) {
		level := slog.LevelInfo
		if ev.Kind == sched.StatusTick {
			level = slog.LevelDebug
		}
		if !logger.Enabled(context.Background(), level) {
			return
		}

		attrs := []any{"tick", ev.Tick, "policy", ev.Policy}
		if ev.ProcessID != 0 {
			attrs = append(attrs,
				"pid", ev.ProcessID,
				"name", ev.Name,
				"elapsed", ev.Elapsed,
				"total", ev.Total,
			)
		}
		logger.Log(context.Background(), level, ev.Kind.String(), attrs...)
	}
}
