package schedulers

import (
	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/logging"
)

// ScheduleMultilevelFeedbackQueue runs one round-robin level per entry of
// timeQuantumList followed by a final first-come-first-served level. New
// arrivals enter the top level; a process that exhausts its quantum drops one
// level. The highest non-empty level is always served and a slice is never
// interrupted.
func ScheduleMultilevelFeedbackQueue(w core.Workload, timeQuantumList []int, opts Options) Result {
	limit := safetyLimit(w, opts)
	logger().Debug("running mlfq algorithm", logging.Fields{"levels": timeQuantumList, "time_limit": limit})

	procs := w.Clone()
	cpu := core.NewCPU()
	order := arrivalOrder(procs)

	fcfsLevel := len(timeQuantumList)
	queues := make([][]int, fcfsLevel+1)
	level := make([]int, len(procs))
	queued := make([]bool, len(procs))

	enqueue := func(exclude int) {
		for _, i := range order {
			p := &procs[i]
			if i == exclude || queued[i] || p.IsCompleted() || !p.HasArrived(cpu.Now()) {
				continue
			}
			p.MarkReady()
			queues[level[i]] = append(queues[level[i]], i)
			queued[i] = true
		}
	}

	highest := func() int {
		for l := range queues {
			if len(queues[l]) > 0 {
				return l
			}
		}
		return -1
	}

	enqueue(-1)
	completed := 0
	for completed < len(procs) && cpu.Now() < limit {
		lvl := highest()
		if lvl == -1 {
			next, ok := nextArrival(procs, cpu.Now())
			if !ok {
				break
			}
			cpu.AdvanceTo(next)
			enqueue(-1)
			continue
		}

		idx := queues[lvl][0]
		queues[lvl] = queues[lvl][1:]
		queued[idx] = false

		p := &procs[idx]
		slice := p.RemainingTime
		if lvl < fcfsLevel {
			slice = min(timeQuantumList[lvl], p.RemainingTime)
		}
		cpu.Execute(p, slice)

		enqueue(idx)
		if p.IsCompleted() {
			completed++
			continue
		}
		if level[idx] < fcfsLevel {
			level[idx]++
		}
		queues[level[idx]] = append(queues[level[idx]], idx)
		queued[idx] = true
	}

	result := generateResult(MultilevelFeedbackQueue, procs, cpu, completed)
	result.LevelsTimeQuantum = append([]int(nil), timeQuantumList...)
	result.TimeLimit = limit
	return result
}
