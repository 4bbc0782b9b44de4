package sched

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Scheduler", func() {
	var (
		s          *Scheduler
		dispatched []ProcessID
	)

	newScheduler := func(p Policy) {
		dispatched = nil
		cfg := DefaultConfig()
		cfg.Policy = p.String()
		s = New(cfg, WithHook(func(ev StatusEvent) {
			if ev.Kind == StatusDispatch {
				dispatched = append(dispatched, ev.ProcessID)
			}
		}))
	}

	create := func(name string, priority, total int) ProcessID {
		p, err := s.CreateProcess(name, priority, total)
		Expect(err).NotTo(HaveOccurred())
		return p.ID
	}

	stateOf := func(id ProcessID) State {
		p, ok := s.FindByID(id)
		Expect(ok).To(BeTrue())
		return p.State
	}

	ticks := func(n int) {
		for i := 0; i < n; i++ {
			s.AdvanceOneTick()
		}
	}

	checkInvariants := func() {
		running := 0
		for _, p := range s.AllProcesses() {
			if p.State == StateRunning {
				running++
			}
			Expect(p.ElapsedTime).To(BeNumerically(">=", 0))
			Expect(p.ElapsedTime).To(BeNumerically("<=", p.TotalTime))
			if p.State == StateTerminated {
				Expect(p.ElapsedTime).To(Equal(p.TotalTime))
			}
		}
		Expect(running).To(BeNumerically("<=", 1))
	}

	DescribeTable("keeps its invariants on every tick",
		func(p Policy) {
			newScheduler(p)
			create("a", 3, 7)
			create("b", 9, 2)
			create("c", 1, 5)
			for i := 0; i < 30; i++ {
				if i == 4 {
					create("late", 10, 3)
				}
				if i == 9 {
					Expect(s.DestroyProcess(2)).To(Succeed())
				}
				s.AdvanceOneTick()
				checkInvariants()
			}
			Expect(s.Idle()).To(BeTrue())
		},
		Entry("FCFS", FCFS),
		Entry("SJF", SJF),
		Entry("PRIORITY", Priority),
		Entry("ROUND_ROBIN", RoundRobin),
	)

	Context("FCFS", func() {
		BeforeEach(func() { newScheduler(FCFS) })

		It("should dispatch in creation order", func() {
			p1 := create("Process1", 1, 3)
			p2 := create("Process2", 5, 2)
			p3 := create("Process3", 3, 1)

			ticks(20)

			Expect(dispatched).To(Equal([]ProcessID{p1, p2, p3}))
		})

		It("should run P2 after P1 with processes arriving between ticks", func() {
			p1 := create("Process1", 1, 5)
			s.AdvanceOneTick()
			Expect(stateOf(p1)).To(Equal(StateRunning))

			p2 := create("Process2", 4, 5)
			s.AdvanceOneTick()
			create("Process3", 2, 1)
			s.AdvanceOneTick()
			create("Process4", 5, 4)
			ticks(3)

			Expect(stateOf(p1)).To(Equal(StateTerminated))

			s.AdvanceOneTick()
			Expect(stateOf(p2)).To(Equal(StateRunning))
		})
	})

	Context("SJF", func() {
		BeforeEach(func() { newScheduler(SJF) })

		It("should dispatch the shortest job first", func() {
			create("Process1", 1, 5)
			create("Process2", 4, 5)
			p3 := create("Process3", 2, 1)
			p4 := create("Process4", 5, 4)

			s.AdvanceOneTick()
			Expect(stateOf(p3)).To(Equal(StateRunning))

			s.AdvanceOneTick()
			Expect(stateOf(p3)).To(Equal(StateTerminated))

			s.AdvanceOneTick()
			Expect(stateOf(p4)).To(Equal(StateRunning))
		})

		It("should re-rank waiting processes as remaining time changes", func() {
			long := create("long", 1, 6)
			s.AdvanceOneTick()
			Expect(stateOf(long)).To(Equal(StateRunning))

			create("mid", 1, 4)
			short := create("short", 1, 2)
			Expect(s.ReadyQueueSummary()).To(Equal("3(short) 2(mid)"))

			Expect(s.UpdateTotalTime(short, 9)).To(Succeed())
			Expect(s.ReadyQueueSummary()).To(Equal("3(short) 2(mid)"))

			s.AdvanceOneTick()
			Expect(s.ReadyQueueSummary()).To(Equal("2(mid) 3(short)"))
		})
	})

	Context("PRIORITY", func() {
		BeforeEach(func() { newScheduler(Priority) })

		It("should dispatch by descending priority", func() {
			create("Process1", 1, 5)
			p2 := create("Process2", 4, 5)
			create("Process3", 2, 1)
			p4 := create("Process4", 5, 4)

			s.AdvanceOneTick()
			Expect(stateOf(p4)).To(Equal(StateRunning))

			ticks(4)
			Expect(stateOf(p4)).To(Equal(StateTerminated))

			s.AdvanceOneTick()
			Expect(stateOf(p2)).To(Equal(StateRunning))
		})

		It("should pick up priority changes on the next tick only", func() {
			a := create("A", 1, 5)
			create("B", 2, 5)
			create("C", 3, 5)
			s.AdvanceOneTick()
			Expect(s.ReadyQueueSummary()).To(Equal("2(B) 1(A)"))

			Expect(s.UpdatePriority(a, 9)).To(Succeed())
			Expect(s.ReadyQueueSummary()).To(Equal("2(B) 1(A)"))

			s.AdvanceOneTick()
			Expect(s.ReadyQueueSummary()).To(Equal("1(A) 2(B)"))
		})
	})

	Context("ROUND_ROBIN", func() {
		BeforeEach(func() { newScheduler(RoundRobin) })

		It("should requeue after one time slice", func() {
			p1 := create("Process1", 1, 4)
			p2 := create("Process2", 1, 4)
			create("Process3", 1, 4)

			s.AdvanceOneTick()
			Expect(stateOf(p1)).To(Equal(StateRunning))

			s.AdvanceOneTick()
			Expect(stateOf(p1)).To(Equal(StateRunning))

			s.AdvanceOneTick()
			p, _ := s.FindByID(p1)
			Expect(p.ElapsedTime).To(Equal(DefaultTimeSlice))
			Expect(p.State).To(Equal(StateReady))
			Expect(stateOf(p2)).To(Equal(StateRunning))
			Expect(s.ReadyQueueSummary()).To(Equal("3(Process3) 1(Process1)"))
		})

		It("should cycle through every process", func() {
			create("A", 1, 4)
			create("B", 1, 4)
			create("C", 1, 2)

			ticks(20)

			Expect(dispatched).To(Equal([]ProcessID{1, 2, 3, 1, 2}))
			Expect(s.Idle()).To(BeTrue())
		})
	})

	Context("switching policy", func() {
		It("should reorder what is already waiting", func() {
			newScheduler(RoundRobin)
			create("five", 1, 5)
			create("one", 7, 1)
			create("three", 4, 3)

			s.SetPolicy(SJF)
			Expect(s.ReadyQueueSummary()).To(Equal("2(one) 3(three) 1(five)"))

			s.SetPolicy(Priority)
			Expect(s.ReadyQueueSummary()).To(Equal("2(one) 3(three) 1(five)"))

			s.SetPolicy(FCFS)
			Expect(s.ReadyQueueSummary()).To(Equal("2(one) 3(three) 1(five)"))
		})
	})

	It("should refuse to destroy a process twice", func() {
		newScheduler(FCFS)
		id := create("P", 1, 3)
		s.AdvanceOneTick()

		Expect(s.DestroyProcess(id)).To(Succeed())
		before := s.AllProcesses()
		Expect(s.DestroyProcess(id)).To(MatchError(ErrNotFound))
		Expect(s.AllProcesses()).To(Equal(before))
	})
})
