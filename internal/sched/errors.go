package sched

import "errors"

var (
	// ErrNotFound is returned for an ID the scheduler does not know.
	ErrNotFound = errors.New("no such process")

	// ErrOutOfRange is returned for a priority, total time or queue
	// position outside its valid bounds.
	ErrOutOfRange = errors.New("value out of range")

	// ErrNotReady is returned when a manual queue edit targets a process
	// that is not READY.
	ErrNotReady = errors.New("process is not ready")

	// ErrTerminated is returned when changing the total time of a process
	// that has already terminated.
	ErrTerminated = errors.New("process has terminated")

	ErrUnknownPolicy = errors.New("unknown scheduling policy")
)
