package sched

import "fmt"

// ProcessID uniquely identifies a process within one scheduler instance.
// Zero is never assigned.
type ProcessID uint64

const (
	MinPriority      = 1  // least urgent
	MaxPriority      = 10 // most urgent
	DefaultTimeSlice = 2  // round-robin quantum in ticks
)

// State is the run-state of a process descriptor.
type State int

const (
	StateNew State = iota
	StateReady
	StateRunning
	StateWaiting // reserved for I/O waits, never entered
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateWaiting:
		return "WAITING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

// Process is the descriptor (PCB) of one simulated process.
// Values handed out by the Scheduler are copies.
type Process struct {
	ID          ProcessID
	Name        string
	Priority    int // MinPriority - MaxPriority, higher runs first under PRIORITY
	TotalTime   int // ticks needed to complete
	ElapsedTime int // ticks already consumed
	TimeSlice   int
	State       State

	ArrivalTick int64 // clock value at creation
	StartTick   int64 // clock value at first dispatch, -1 before that
	FinishTick  int64 // clock value at completion, -1 before that
}

func newProcess(id ProcessID, name string, priority, totalTime, slice int, now int64) *Process {
	return &Process{
		ID:          id,
		Name:        name,
		Priority:    priority,
		TotalTime:   totalTime,
		TimeSlice:   slice,
		State:       StateNew,
		ArrivalTick: now,
		StartTick:   -1,
		FinishTick:  -1,
	}
}

// Remaining returns the ticks still needed to complete.
func (p Process) Remaining() int {
	return p.TotalTime - p.ElapsedTime
}

// advance consumes one tick and marks the process terminated once it has
// consumed all of its time.
func (p *Process) advance() {
	if p.ElapsedTime >= p.TotalTime {
		return
	}

	p.ElapsedTime++
	if p.ElapsedTime == p.TotalTime {
		p.State = StateTerminated
	}
}

func (p Process) String() string {
	return fmt.Sprintf("pid=%d name=%s state=%s priority=%d elapsed=%d/%d",
		p.ID, p.Name, p.State, p.Priority, p.ElapsedTime, p.TotalTime)
}

func validPriority(v int) bool {
	return v >= MinPriority && v <= MaxPriority
}
