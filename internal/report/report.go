// Package report renders scheduler state for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"ticksched/internal/sched"
)

// Summary aggregates the completed processes of a run.
type Summary struct {
	Completed     int
	AvgTurnaround float64 // finish tick - arrival tick
	AvgWaiting    float64 // turnaround - total time
	Throughput    float64 // completed processes per tick
}

// Summarize computes a Summary over procs at clock value now. Processes
// that have not finished are ignored.
func Summarize(procs []sched.Process, now int64) Summary {
	var sum Summary
	var turnaround, waiting int64

	for _, p := range procs {
		if p.State != sched.StateTerminated || p.FinishTick < 0 {
			continue
		}
		sum.Completed++
		t := p.FinishTick - p.ArrivalTick
		turnaround += t
		waiting += t - int64(p.TotalTime)
	}

	if sum.Completed > 0 {
		sum.AvgTurnaround = float64(turnaround) / float64(sum.Completed)
		sum.AvgWaiting = float64(waiting) / float64(sum.Completed)
	}
	if now > 0 {
		sum.Throughput = float64(sum.Completed) / float64(now)
	}
	return sum
}

// WriteTable writes one row per process followed by the averages.
func WriteTable(w io.Writer, procs []sched.Process, now int64) {
	rows := make([][]string, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			p.State.String(),
			strconv.Itoa(p.Priority),
			fmt.Sprintf("%d/%d", p.ElapsedTime, p.TotalTime),
			strconv.FormatInt(p.ArrivalTick, 10),
			tick(p.StartTick),
			tick(p.FinishTick),
		})
	}

	sum := Summarize(procs, now)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Name", "State", "Priority", "Elapsed", "Arrival", "Start", "Finish"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Done %d", sum.Completed),
		fmt.Sprintf("Turnaround %.2f", sum.AvgTurnaround),
		fmt.Sprintf("Waiting %.2f", sum.AvgWaiting),
		fmt.Sprintf("Throughput %.2f/t", sum.Throughput),
	})
	table.Render()
}

func tick(v int64) string {
	if v < 0 {
		return "-"
	}
	return strconv.FormatInt(v, 10)
}
