// internal/sched/tickclock.go

package sched

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Driver owns a Scheduler and advances it once per tick. Every access to
// the scheduler goes through the driver's mutex, so a Driver may be shared
// between goroutines even though the Scheduler itself may not.
type Driver struct {
	// StopWhenIdle ends Run as soon as nothing is running or ready.
	StopWhenIdle bool

	mu       sync.Mutex
	s        *Scheduler
	interval time.Duration
	count    atomic.Int64
}

// NewDriver creates a driver ticking every interval. Zero means ticks are
// advanced back to back, which is what tests and batch runs want.
func NewDriver(s *Scheduler, interval time.Duration) *Driver {
	return &Driver{
		StopWhenIdle: true,
		s:            s,
		interval:     interval,
	}
}

// Do runs fn against the scheduler under the driver's lock.
func (d *Driver) Do(fn func(*Scheduler)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.s)
}

// Count returns the number of ticks this driver has advanced.
func (d *Driver) Count() int64 {
	return d.count.Load()
}

// Run advances the scheduler until ctx is done, maxTicks ticks have been
// advanced by this call (0 = no limit), or the scheduler is idle when
// StopWhenIdle is set. It returns the ticks advanced and ctx.Err() if the
// context ended the run.
func (d *Driver) Run(ctx context.Context, maxTicks int64) (int64, error) {
	var ticker *time.Ticker
	if d.interval > 0 {
		ticker = time.NewTicker(d.interval)
		defer ticker.Stop()
	}

	var ran int64
	for {
		// 1) check shutdown
		if err := ctx.Err(); err != nil {
			return ran, err
		}
		if maxTicks > 0 && ran >= maxTicks {
			return ran, nil
		}
		if d.StopWhenIdle && d.idle() {
			return ran, nil
		}

		// 2) wait for the next period
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ran, ctx.Err()
			case <-ticker.C:
			}
		}

		// 3) advance
		d.Do(func(s *Scheduler) { s.AdvanceOneTick() })
		d.count.Add(1)
		ran++
	}
}

func (d *Driver) idle() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s.Idle()
}
