// internal/sched/policy.go

package sched

import (
	"fmt"
	"slices"
	"strings"
)

// Policy is one of the four ordering disciplines: FCFS, SJF, Priority and
// RoundRobin. The set is closed; the unexported methods keep other packages
// from adding variants.
type Policy interface {
	fmt.Stringer

	// Reorder returns the ready processes in dispatch order. The input is
	// left untouched and ties keep their relative order.
	Reorder(ready []*Process) []*Process

	reorderOnCreate() bool
	reorderOnTick() bool
	requeueOnQuantum() bool
}

var (
	FCFS       Policy = fcfs{}
	SJF        Policy = sjf{}
	Priority   Policy = priorityOrder{}
	RoundRobin Policy = roundRobin{}
)

// Policies lists every policy in a fixed order.
func Policies() []Policy {
	return []Policy{FCFS, SJF, Priority, RoundRobin}
}

// ParsePolicy resolves a policy by name, ignoring case. "RR" and
// "round-robin" are accepted for RoundRobin.
func ParsePolicy(name string) (Policy, error) {
	key := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), "-", "_")
	switch key {
	case "FCFS":
		return FCFS, nil
	case "SJF":
		return SJF, nil
	case "PRIORITY":
		return Priority, nil
	case "ROUND_ROBIN", "RR":
		return RoundRobin, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

type fcfs struct{}

func (fcfs) String() string { return "FCFS" }
func (fcfs) Reorder(ready []*Process) []*Process { return slices.Clone(ready) }
func (fcfs) reorderOnCreate() bool { return false }
func (fcfs) reorderOnTick() bool { return false }
func (fcfs) requeueOnQuantum() bool { return false }

// sjf ranks by remaining time, so a process at the head can be overtaken as
// soon as another one has less left. Re-sorting is the only preemption.
type sjf struct{}

func (sjf) String() string { return "SJF" }

func (sjf) Reorder(ready []*Process) []*Process {
	out := slices.Clone(ready)
	slices.SortStableFunc(out, func(a, b *Process) int {
		return a.Remaining() - b.Remaining()
	})
	return out
}

func (sjf) reorderOnCreate() bool { return true }
func (sjf) reorderOnTick() bool { return true }
func (sjf) requeueOnQuantum() bool { return false }

type priorityOrder struct{}

func (priorityOrder) String() string { return "PRIORITY" }

func (priorityOrder) Reorder(ready []*Process) []*Process {
	out := slices.Clone(ready)
	slices.SortStableFunc(out, func(a, b *Process) int {
		return b.Priority - a.Priority
	})
	return out
}

func (priorityOrder) reorderOnCreate() bool { return true }
func (priorityOrder) reorderOnTick() bool { return true }
func (priorityOrder) requeueOnQuantum() bool { return false }

// roundRobin orders like FCFS; the difference is the quantum requeue done by
// the tick step.
type roundRobin struct{}

func (roundRobin) String() string { return "ROUND_ROBIN" }
func (roundRobin) Reorder(ready []*Process) []*Process { return slices.Clone(ready) }
func (roundRobin) reorderOnCreate() bool { return false }
func (roundRobin) reorderOnTick() bool { return false }
func (roundRobin) requeueOnQuantum() bool { return true }
