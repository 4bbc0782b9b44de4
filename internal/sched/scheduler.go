// internal/sched/scheduler.go

package sched

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/treemap"
)

// Scheduler is a single-threaded, tick-driven process scheduler. It is not
// safe for concurrent use; share it through a Driver.
type Scheduler struct {
	procs   *treemap.Map    // ProcessID -> *Process, the only owner of descriptors
	ready   *arraylist.List // ProcessIDs in dispatch order
	running ProcessID       // 0 when the CPU is idle
	nextID  ProcessID       // last assigned id
	clock   int64           // ticks advanced so far
	policy  Policy          // active ordering discipline
	slice   int             // quantum given to new processes
	hooks   []Hook          // event consumers
	logger  *slog.Logger    // debug output for rejected operations
}

// Option customizes a Scheduler at construction.
type Option func(*Scheduler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithHook registers an event hook.
func WithHook(h Hook) Option {
	return func(s *Scheduler) { s.hooks = append(s.hooks, h) }
}

// New creates a new Scheduler from the given configuration. An unknown
// policy name falls back to round robin and a non-positive slice to
// DefaultTimeSlice; use Load to get those reported as errors.
func New(cfg Config, opts ...Option) *Scheduler {
	policy, err := ParsePolicy(cfg.Policy)
	if err != nil {
		policy = RoundRobin
	}
	slice := cfg.SliceTicks
	if slice <= 0 {
		slice = DefaultTimeSlice
	}

	s := &Scheduler{
		procs:  treemap.NewWith(cmp),
		ready:  arraylist.New(),
		policy: policy,
		slice:  slice,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "sched")
	return s
}

// AcceptHook registers an event hook after construction.
func (s *Scheduler) AcceptHook(h Hook) {
	s.hooks = append(s.hooks, h)
}

// Now returns the number of ticks advanced so far.
func (s *Scheduler) Now() int64 { return s.clock }

// Policy returns the active policy.
func (s *Scheduler) Policy() Policy { return s.policy }

// SetPolicy switches the discipline and immediately reorders whatever is
// waiting.
func (s *Scheduler) SetPolicy(p Policy) {
	s.policy = p
	s.reorganize()
	s.emit(StatusPolicyChange, nil)
}

// CreateProcess registers a new READY process at the tail of the ready
// collection. Priority must be within [MinPriority, MaxPriority] and
// totalTime positive; a rejected call assigns no id. Creation never
// dispatches.
func (s *Scheduler) CreateProcess(name string, priority, totalTime int) (Process, error) {
	if !validPriority(priority) {
		s.logger.Debug("create rejected", "name", name, "priority", priority)
		return Process{}, fmt.Errorf("%w: priority %d not in [%d,%d]",
			ErrOutOfRange, priority, MinPriority, MaxPriority)
	}
	if totalTime <= 0 {
		s.logger.Debug("create rejected", "name", name, "total_time", totalTime)
		return Process{}, fmt.Errorf("%w: total time %d must be positive", ErrOutOfRange, totalTime)
	}

	s.nextID++
	p := newProcess(s.nextID, name, priority, totalTime, s.slice, s.clock)
	s.procs.Put(p.ID, p)
	s.ready.Add(p.ID)
	p.State = StateReady

	if s.policy.reorderOnCreate() {
		s.reorganize()
	}

	s.emit(StatusEnqueue, p)
	return *p, nil
}

// AdvanceOneTick moves the simulation forward by one tick.
func (s *Scheduler) AdvanceOneTick() {
	s.clock++
	s.emit(StatusTick, nil)

	if p := s.current(); p != nil {
		p.advance()

		if p.State == StateTerminated {
			p.FinishTick = s.clock
			s.running = 0
			s.emit(StatusFinish, p)
			// the freed CPU is refilled before any re-ranking
			s.dispatch()
			return
		}

		if s.policy.requeueOnQuantum() && p.ElapsedTime%p.TimeSlice == 0 {
			p.State = StateReady
			s.ready.Add(p.ID)
			s.running = 0
			s.emit(StatusPreempt, p)
		}
	}

	if s.policy.reorderOnTick() {
		s.reorganize()
	}

	s.dispatch()
}

// dispatch promotes the head of the ready collection when the CPU is free.
func (s *Scheduler) dispatch() {
	if s.running != 0 || s.ready.Empty() {
		return
	}

	head, _ := s.ready.Get(0)
	s.ready.Remove(0)
	p := s.lookup(head.(ProcessID))

	p.State = StateRunning
	if p.StartTick < 0 {
		p.StartTick = s.clock
	}
	s.running = p.ID
	s.emit(StatusDispatch, p)
}

// reorganize re-sorts the ready collection with the active policy.
func (s *Scheduler) reorganize() {
	ordered := s.policy.Reorder(s.readyProcs())

	s.ready.Clear()
	for _, p := range ordered {
		s.ready.Add(p.ID)
	}
}

// DestroyProcess removes a process from every collection, whatever its
// state. It fails with ErrNotFound for an unknown or already destroyed id.
func (s *Scheduler) DestroyProcess(id ProcessID) error {
	p := s.lookup(id)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	if s.running == id {
		s.running = 0
	}
	s.removeReady(id)
	p.State = StateTerminated
	s.procs.Remove(id)

	s.emit(StatusDestroy, p)
	return nil
}

// UpdatePriority changes a process priority in place. The ready collection
// is not re-sorted here; the next reorganization picks the change up.
func (s *Scheduler) UpdatePriority(id ProcessID, value int) error {
	if !validPriority(value) {
		return fmt.Errorf("%w: priority %d not in [%d,%d]",
			ErrOutOfRange, value, MinPriority, MaxPriority)
	}
	p := s.lookup(id)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	p.Priority = value
	s.emit(StatusPriorityUpdate, p)
	return nil
}

// UpdateTotalTime changes a process total time in place. The new value may
// not be below what the process has already consumed, and a terminated
// process cannot be changed. Setting it equal to the elapsed time completes
// the process immediately.
func (s *Scheduler) UpdateTotalTime(id ProcessID, value int) error {
	if value <= 0 {
		return fmt.Errorf("%w: total time %d must be positive", ErrOutOfRange, value)
	}
	p := s.lookup(id)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if p.State == StateTerminated {
		return fmt.Errorf("%w: %d", ErrTerminated, id)
	}
	if value < p.ElapsedTime {
		return fmt.Errorf("%w: total time %d below elapsed %d", ErrOutOfRange, value, p.ElapsedTime)
	}

	p.TotalTime = value
	s.emit(StatusTotalTimeUpdate, p)

	if p.ElapsedTime == p.TotalTime {
		if s.running == id {
			s.running = 0
		}
		s.removeReady(id)
		p.State = StateTerminated
		p.FinishTick = s.clock
		s.emit(StatusFinish, p)
	}
	return nil
}

// MoveToFront puts a READY process at the head of the ready collection.
func (s *Scheduler) MoveToFront(id ProcessID) error {
	return s.InsertAt(id, 1)
}

// InsertAt moves a READY process to the 1-based position in the ready
// collection. Valid positions are 1 through ReadyQueueSize()+1; the last
// one means the tail.
func (s *Scheduler) InsertAt(id ProcessID, position int) error {
	if position < 1 || position > s.ready.Size()+1 {
		return fmt.Errorf("%w: position %d not in [1,%d]", ErrOutOfRange, position, s.ready.Size()+1)
	}
	p := s.lookup(id)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if p.State != StateReady {
		return fmt.Errorf("%w: %d is %s", ErrNotReady, id, p.State)
	}

	s.removeReady(id)
	idx := min(position-1, s.ready.Size())
	s.ready.Insert(idx, id)

	s.emit(StatusRequeue, p)
	return nil
}

// FindByID returns a copy of the process with the given id.
func (s *Scheduler) FindByID(id ProcessID) (Process, bool) {
	p := s.lookup(id)
	if p == nil {
		return Process{}, false
	}
	return *p, true
}

// FindAllByName returns copies of every process with that exact name, in
// id order.
func (s *Scheduler) FindAllByName(name string) []Process {
	var out []Process
	s.procs.Each(func(_, v interface{}) {
		if p := v.(*Process); p.Name == name {
			out = append(out, *p)
		}
	})
	return out
}

// AllProcesses returns copies of every registered process in id order.
// Terminated processes stay registered until destroyed.
func (s *Scheduler) AllProcesses() []Process {
	out := make([]Process, 0, s.procs.Size())
	for _, v := range s.procs.Values() {
		out = append(out, *v.(*Process))
	}
	return out
}

// ReadyQueue returns copies of the ready processes in dispatch order.
func (s *Scheduler) ReadyQueue() []Process {
	ready := s.readyProcs()
	out := make([]Process, len(ready))
	for i, p := range ready {
		out[i] = *p
	}
	return out
}

func (s *Scheduler) ReadyQueueSize() int { return s.ready.Size() }

// ReadyQueueSummary renders the ready collection as "id(name) ..." or
// "empty".
func (s *Scheduler) ReadyQueueSummary() string {
	if s.ready.Empty() {
		return "empty"
	}

	parts := make([]string, 0, s.ready.Size())
	for _, p := range s.readyProcs() {
		parts = append(parts, fmt.Sprintf("%d(%s)", p.ID, p.Name))
	}
	return strings.Join(parts, " ")
}

// Running returns a copy of the running process, if any.
func (s *Scheduler) Running() (Process, bool) {
	if p := s.current(); p != nil {
		return *p, true
	}
	return Process{}, false
}

// Idle reports whether nothing is running and nothing is waiting to run.
func (s *Scheduler) Idle() bool {
	return s.running == 0 && s.ready.Empty()
}

func (s *Scheduler) lookup(id ProcessID) *Process {
	v, ok := s.procs.Get(id)
	if !ok {
		return nil
	}
	return v.(*Process)
}

func (s *Scheduler) current() *Process {
	if s.running == 0 {
		return nil
	}
	return s.lookup(s.running)
}

func (s *Scheduler) readyProcs() []*Process {
	out := make([]*Process, 0, s.ready.Size())
	for _, v := range s.ready.Values() {
		out = append(out, s.lookup(v.(ProcessID)))
	}
	return out
}

func (s *Scheduler) removeReady(id ProcessID) {
	if i := s.ready.IndexOf(id); i >= 0 {
		s.ready.Remove(i)
	}
}

func (s *Scheduler) emit(kind StatusKind, p *Process) {
	if len(s.hooks) == 0 {
		return
	}

	ev := StatusEvent{
		Time:   time.Now(),
		Tick:   s.clock,
		Kind:   kind,
		Policy: s.policy.String(),
	}
	if p != nil {
		ev.ProcessID = p.ID
		ev.Name = p.Name
		ev.Elapsed = p.ElapsedTime
		ev.Total = p.TotalTime
	}
	for _, h := range s.hooks {
		h(ev)
	}
}

// cmp orders the process arena by id.
func cmp(a, b any) int {
	ia, ib := a.(ProcessID), b.(ProcessID)
	switch {
	case ia < ib:
		return -1
	case ia > ib:
		return 1
	default:
		return 0
	}
}
