package schedulers

import (
	"sort"

	"cpu-scheduling-simulator/internal/core"
)

// keyFunc extracts the selection criterion; the smallest key wins.
type keyFunc func(p *core.Process) int

func byBurst(p *core.Process) int     { return p.BurstTime }
func byRemaining(p *core.Process) int { return p.RemainingTime }
func byPriority(p *core.Process) int  { return p.Priority }

// before orders two candidates by key, then earlier arrival, then lower id.
func before(a, b *core.Process, key keyFunc) bool {
	if ka, kb := key(a), key(b); ka != kb {
		return ka < kb
	}
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.ID < b.ID
}

// admit marks every process that has arrived by now as ready.
func admit(procs core.Workload, now int) {
	for i := range procs {
		if !procs[i].IsCompleted() && procs[i].HasArrived(now) {
			procs[i].MarkReady()
		}
	}
}

// pickNext returns the index of the best eligible process, or -1 when none
// has arrived.
func pickNext(procs core.Workload, now int, key keyFunc) int {
	best := -1
	for i := range procs {
		p := &procs[i]
		if p.IsCompleted() || !p.HasArrived(now) {
			continue
		}
		if best == -1 || before(p, &procs[best], key) {
			best = i
		}
	}
	return best
}

// nextArrival returns the earliest arrival after now among incomplete
// processes.
func nextArrival(procs core.Workload, now int) (int, bool) {
	next, found := 0, false
	for i := range procs {
		p := &procs[i]
		if p.IsCompleted() || p.ArrivalTime <= now {
			continue
		}
		if !found || p.ArrivalTime < next {
			next, found = p.ArrivalTime, true
		}
	}
	return next, found
}

// arrivalOrder returns process indices sorted by arrival time, ties by id.
func arrivalOrder(procs core.Workload) []int {
	order := make([]int, len(procs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := &procs[order[i]], &procs[order[j]]
		if a.ArrivalTime != b.ArrivalTime {
			return a.ArrivalTime < b.ArrivalTime
		}
		return a.ID < b.ID
	})
	return order
}

// runToCompletion drives the non-preemptive selection loop: pick, run the
// whole burst, decide again.
func runToCompletion(procs core.Workload, cpu *core.CPU, key keyFunc) int {
	completed := 0
	for completed < len(procs) {
		admit(procs, cpu.Now())
		i := pickNext(procs, cpu.Now(), key)
		if i == -1 {
			next, ok := nextArrival(procs, cpu.Now())
			if !ok {
				break
			}
			cpu.AdvanceTo(next)
			continue
		}
		cpu.Execute(&procs[i], procs[i].RemainingTime)
		completed++
	}
	return completed
}

// runPerTick drives the preemptive selection loop one time unit at a time
// until every process completes or the clock reaches limit.
func runPerTick(procs core.Workload, cpu *core.CPU, key keyFunc, limit int) int {
	completed := 0
	for completed < len(procs) && cpu.Now() < limit {
		admit(procs, cpu.Now())
		i := pickNext(procs, cpu.Now(), key)
		if i == -1 {
			cpu.Idle(1)
			continue
		}
		cpu.Execute(&procs[i], 1)
		if procs[i].IsCompleted() {
			completed++
		}
	}
	return completed
}
