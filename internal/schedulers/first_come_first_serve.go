package schedulers

import (
	"cpu-scheduling-simulator/internal/core"
)

// ScheduleFirstComeFirstServe runs processes strictly in arrival order, ties
// broken by id. The cpu idles until the next arrival when it runs ahead of
// the workload. Response time equals waiting time.
func ScheduleFirstComeFirstServe(w core.Workload) Result {
	logger().Debug("running fcfs algorithm")

	procs := w.Clone()
	cpu := core.NewCPU()

	for _, i := range arrivalOrder(procs) {
		p := &procs[i]
		cpu.AdvanceTo(p.ArrivalTime)
		cpu.Execute(p, p.RemainingTime)
	}

	return generateResult(FirstComeFirstServe, procs, cpu, len(procs))
}
