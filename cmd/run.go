package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cpu-scheduling-simulator/config"
	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/report"
	"cpu-scheduling-simulator/internal/schedulers"
	"cpu-scheduling-simulator/internal/workload"
)

var (
	workloadFile string
	timeQuantum  int
	levels       []int
	showGantt    bool
)

var runCmd = &cobra.Command{
	Use:   "run <algorithm>",
	Short: "Run one scheduling algorithm",
	Long: `Run one scheduling algorithm over a workload file (YAML, JSON or CSV) or
the built-in sample workload.

Algorithms: fcfs, sjf, srtf, priority, priority-preemptive, rr, mlfq`,
	Example: `  schedsim run rr --quantum 3
  schedsim run srtf -f workload.csv --gantt
  schedsim run mlfq --levels 2,4,8 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runSchedule,
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every algorithm on the same workload",
	Args:  cobra.NoArgs,
	RunE:  runCompare,
}

func init() {
	for _, c := range []*cobra.Command{runCmd, compareCmd} {
		c.Flags().StringVarP(&workloadFile, "file", "f", "", "workload file (.yaml, .json or .csv); sample workload when empty")
		c.Flags().IntVar(&timeQuantum, "quantum", 0, "round robin time quantum (default from workload or config)")
		c.Flags().IntSliceVar(&levels, "levels", nil, "multilevel feedback queue quanta, e.g. 2,4")
	}
	runCmd.Flags().BoolVar(&showGantt, "gantt", false, "print a Gantt chart after the table")
}

// loadRun resolves the workload and options from the file, flags and config.
func loadRun(cmd *cobra.Command) (core.Workload, schedulers.Options, error) {
	cfg := config.GetSchedulerConfig()
	w, req, err := workload.Load(workloadFile)
	if err != nil {
		return nil, schedulers.Options{}, err
	}
	if len(w) > cfg.MaxProcesses {
		return nil, schedulers.Options{}, fmt.Errorf("%w: workload has %d processes, limit is %d",
			core.ErrTooManyProcesses, len(w), cfg.MaxProcesses)
	}
	if cmd.Flags().Changed("quantum") {
		if timeQuantum <= 0 {
			return nil, schedulers.Options{}, fmt.Errorf("--quantum: %w", schedulers.ErrInvalidTimeQuantum)
		}
		req.TimeQuantum = timeQuantum
	}
	if cmd.Flags().Changed("levels") {
		req.LevelsTimeQuantum = levels
	}
	opts, err := req.Options(cfg.SchedulerOptions())
	if err != nil {
		return nil, schedulers.Options{}, err
	}
	return w, opts, nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	alg, err := schedulers.ParseAlgorithm(args[0])
	if err != nil {
		return err
	}
	w, opts, err := loadRun(cmd)
	if err != nil {
		return err
	}

	result, err := schedulers.Schedule(alg, w, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.Encode(out, format(), result); err != nil {
		return err
	}
	if showGantt && format() == report.FormatTable {
		return report.WriteGantt(out, result.Timeline)
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	w, opts, err := loadRun(cmd)
	if err != nil {
		return err
	}
	results, err := schedulers.ScheduleAll(w, opts)
	if err != nil {
		return err
	}
	return report.Encode(cmd.OutOrStdout(), format(), results)
}
