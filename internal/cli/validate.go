package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ticksched/internal/job"
	"ticksched/internal/sched"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a process file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// a scratch scheduler applies the same range checks as a real run
			created, err := job.LoadFile(args[0], sched.New(cfg), nil)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d processes\n", args[0], len(created))
			return err
		},
	}
}

func newPoliciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policies",
		Short: "List the scheduling policies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range sched.Policies() {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
		},
	}
}
