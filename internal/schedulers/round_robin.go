package schedulers

import (
	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/logging"
)

// ScheduleRoundRobin serves a FIFO ready queue, granting each dispatch at most
// timeQuantum units. Processes that arrive during a slice are queued ahead of
// the process whose slice just ended.
func ScheduleRoundRobin(w core.Workload, timeQuantum int, opts Options) Result {
	limit := safetyLimit(w, opts)
	logger().Debug("running roundRobin algorithm", logging.Fields{"time_quantum": timeQuantum, "time_limit": limit})

	procs := w.Clone()
	cpu := core.NewCPU()
	order := arrivalOrder(procs)

	readyQueue := make([]int, 0, len(procs))
	inQueue := make([]bool, len(procs))

	// enqueue appends every eligible process that is not queued yet, in
	// arrival order, skipping exclude.
	enqueue := func(exclude int) {
		for _, i := range order {
			p := &procs[i]
			if i == exclude || inQueue[i] || p.IsCompleted() || !p.HasArrived(cpu.Now()) {
				continue
			}
			p.MarkReady()
			readyQueue = append(readyQueue, i)
			inQueue[i] = true
		}
	}

	enqueue(-1)
	completed := 0
	for completed < len(procs) && cpu.Now() < limit {
		if len(readyQueue) == 0 {
			next, ok := nextArrival(procs, cpu.Now())
			if !ok {
				break
			}
			cpu.AdvanceTo(next)
			enqueue(-1)
			continue
		}

		idx := readyQueue[0]
		readyQueue = readyQueue[1:]
		inQueue[idx] = false

		p := &procs[idx]
		cpu.Execute(p, min(timeQuantum, p.RemainingTime))

		enqueue(idx)
		if p.IsCompleted() {
			completed++
			continue
		}
		readyQueue = append(readyQueue, idx)
		inQueue[idx] = true
	}

	result := generateResult(RoundRobin, procs, cpu, completed)
	result.TimeQuantum = timeQuantum
	result.TimeLimit = limit
	return result
}
