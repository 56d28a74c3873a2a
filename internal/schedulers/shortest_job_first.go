package schedulers

import (
	"cpu-scheduling-simulator/internal/core"
)

// ScheduleShortestJobFirst is non-preemptive: at every decision point the
// arrived process with the smallest total burst runs to completion.
func ScheduleShortestJobFirst(w core.Workload) Result {
	logger().Debug("running sjf algorithm")

	procs := w.Clone()
	cpu := core.NewCPU()
	completed := runToCompletion(procs, cpu, byBurst)

	return generateResult(ShortestJobFirst, procs, cpu, completed)
}
