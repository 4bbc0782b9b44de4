// internal/sched/schedulerEvent.go

package sched

import (
	"time"
)

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusTick StatusKind = iota
	StatusEnqueue
	StatusDispatch
	StatusPreempt
	StatusFinish
	StatusDestroy
	StatusPolicyChange
	StatusPriorityUpdate
	StatusTotalTimeUpdate
	StatusRequeue
)

// StatusEvent is emitted every tick and on every state change.
// Process fields are zero for Tick and PolicyChange events.
type StatusEvent struct {
	Time      time.Time
	Tick      int64
	Kind      StatusKind
	ProcessID ProcessID
	Name      string
	Elapsed   int
	Total     int
	Policy    string
}

// Hook receives scheduler events synchronously. A hook must not call back
// into the scheduler that invoked it.
type Hook func(StatusEvent)

func (sk StatusKind) String() string {
	switch sk {
	case StatusTick:
		return "Tick"
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusPreempt:
		return "Preempt"
	case StatusFinish:
		return "Finish"
	case StatusDestroy:
		return "Destroy"
	case StatusPolicyChange:
		return "PolicyChange"
	case StatusPriorityUpdate:
		return "PriorityUpdate"
	case StatusTotalTimeUpdate:
		return "TotalTimeUpdate"
	case StatusRequeue:
		return "Requeue"
	default:
		return "Unknown"
	}
}
