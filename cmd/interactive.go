package cmd

import (
	"github.com/spf13/cobra"

	"cpu-scheduling-simulator/config"
	"cpu-scheduling-simulator/internal/session"
)

var interactiveGantt bool

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"menu"},
	Short:   "Start the interactive menu",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.New(cmd.InOrStdin(), cmd.OutOrStdout(), config.GetSchedulerConfig().SchedulerOptions()).
			WithGantt(interactiveGantt).
			Run()
	},
}

func init() {
	interactiveCmd.Flags().BoolVar(&interactiveGantt, "gantt", false, "print a Gantt chart after each run")
}
