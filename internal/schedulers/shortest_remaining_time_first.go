package schedulers

import (
	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/logging"
)

// ScheduleShortestRemainingTimeFirst re-decides every time unit, giving the
// cpu to the arrived process with the least remaining time.
func ScheduleShortestRemainingTimeFirst(w core.Workload, opts Options) Result {
	limit := safetyLimit(w, opts)
	logger().Debug("running srtf algorithm", logging.Fields{"time_limit": limit})

	procs := w.Clone()
	cpu := core.NewCPU()
	completed := runPerTick(procs, cpu, byRemaining, limit)

	result := generateResult(ShortestRemainingTimeFirst, procs, cpu, completed)
	result.TimeLimit = limit
	return result
}
