package schedulers

import (
	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/logging"
)

// SchedulePriority is non-preemptive priority scheduling. A lower priority
// value means a more urgent process.
func SchedulePriority(w core.Workload) Result {
	logger().Debug("running priority algorithm")

	procs := w.Clone()
	cpu := core.NewCPU()
	completed := runToCompletion(procs, cpu, byPriority)

	return generateResult(Priority, procs, cpu, completed)
}

// SchedulePriorityPreemptive re-decides every time unit, giving the cpu to the
// most urgent arrived process.
func SchedulePriorityPreemptive(w core.Workload, opts Options) Result {
	limit := safetyLimit(w, opts)
	logger().Debug("running preemptive priority algorithm", logging.Fields{"time_limit": limit})

	procs := w.Clone()
	cpu := core.NewCPU()
	completed := runPerTick(procs, cpu, byPriority, limit)

	result := generateResult(PriorityPreemptive, procs, cpu, completed)
	result.TimeLimit = limit
	return result
}
