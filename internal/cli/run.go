package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ticksched/internal/job"
	"ticksched/internal/report"
	"ticksched/internal/sched"
	"ticksched/internal/trace"
)

func newRunCmd() *cobra.Command {
	var (
		policy     string
		loadPath   string
		procs      []string
		maxTicks   int64
		realtime   bool
		csvPath    string
		sqlitePath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation until every process has finished",
		Example: `  ticksched run --policy SJF -p editor,5,10 -p compiler,3,4
  ticksched run --load sample_processes.txt --csv trace.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCfg := cfg
			if policy != "" {
				if _, err := sched.ParsePolicy(policy); err != nil {
					return err
				}
				runCfg.Policy = policy
			}

			opts := []sched.Option{
				sched.WithLogger(logger),
				sched.WithHook(trace.LogHook(logger)),
			}

			var closers []func() error
			defer func() {
				for _, c := range closers {
					if err := c(); err != nil {
						logger.Error("closing trace", "err", err)
					}
				}
			}()

			if csvPath != "" {
				w, err := trace.CreateCSV(csvPath)
				if err != nil {
					return fmt.Errorf("csv trace: %w", err)
				}
				opts = append(opts, sched.WithHook(w.Hook))
				closers = append(closers, w.Close)
			}
			if cmd.Flags().Changed("sqlite") {
				w, err := trace.OpenSQLite(sqlitePath, logger)
				if err != nil {
					return fmt.Errorf("sqlite trace: %w", err)
				}
				opts = append(opts, sched.WithHook(w.Hook))
				closers = append(closers, w.Close)
			}

			s := sched.New(runCfg, opts...)

			if loadPath != "" {
				if _, err := job.LoadFile(loadPath, s, logger); err != nil {
					if len(s.AllProcesses()) == 0 {
						return err
					}
					logger.Warn("some processes were not loaded", "file", loadPath, "err", err)
				}
			}
			for _, p := range procs {
				if _, err := job.Load(strings.NewReader(p), s, nil); err != nil {
					return fmt.Errorf("process %q: %w", p, err)
				}
			}
			if len(s.AllProcesses()) == 0 {
				return errors.New("no processes given; use --load or -p name,priority,totalTime")
			}

			var interval time.Duration
			if realtime {
				interval = time.Duration(runCfg.TickMS) * time.Millisecond
			}
			d := sched.NewDriver(s, interval)
			ran, err := d.Run(cmd.Context(), maxTicks)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if err != nil {
				logger.Warn("simulation interrupted", "ticks", ran)
			}

			out := cmd.OutOrStdout()
			d.Do(func(s *sched.Scheduler) {
				fmt.Fprintf(out, "policy=%s ticks=%d ready=%s\n", s.Policy(), s.Now(), s.ReadyQueueSummary())
				report.WriteTable(out, s.AllProcesses(), s.Now())
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "Scheduling policy (overrides config)")
	cmd.Flags().StringVar(&loadPath, "load", "", "File with one name,priority,totalTime per line")
	cmd.Flags().StringArrayVarP(&procs, "process", "p", nil, "Process as name,priority,totalTime (repeatable)")
	cmd.Flags().Int64Var(&maxTicks, "ticks", 0, "Stop after this many ticks (0 = until idle)")
	cmd.Flags().BoolVar(&realtime, "realtime", false, "Advance one tick every tick_ms instead of back to back")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write an event trace to this CSV file")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Write an event trace to this SQLite file (empty value = generated name)")

	return cmd
}
