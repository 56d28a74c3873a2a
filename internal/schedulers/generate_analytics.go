package schedulers

import (
	"fmt"

	"github.com/google/uuid"

	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/logging"
	"cpu-scheduling-simulator/internal/util"
)

// Summary aggregates the metrics of one run. Averages cover completed
// processes only.
type Summary struct {
	AverageWaitingTime    float64 `json:"average_waiting_time" yaml:"average_waiting_time"`
	AverageTurnaroundTime float64 `json:"average_turnaround_time" yaml:"average_turnaround_time"`
	AverageResponseTime   float64 `json:"average_response_time" yaml:"average_response_time"`
	CpuUtilization        float64 `json:"cpu_utilization" yaml:"cpu_utilization"`
	Throughput            float64 `json:"throughput" yaml:"throughput"`
	TotalTime             int     `json:"total_time" yaml:"total_time"`
	BusyTime              int     `json:"busy_time" yaml:"busy_time"`
	IdleTime              int     `json:"idle_time" yaml:"idle_time"`
}

// Result is the annotated copy of a workload after one algorithm run.
type Result struct {
	RunID             string           `json:"run_id" yaml:"run_id"`
	Algorithm         Algorithm        `json:"algorithm" yaml:"algorithm"`
	TimeQuantum       int              `json:"time_quantum,omitempty" yaml:"time_quantum,omitempty"`
	LevelsTimeQuantum []int            `json:"levels_time_quantum,omitempty" yaml:"levels_time_quantum,omitempty"`
	Processes         core.Workload    `json:"processes" yaml:"processes"`
	Timeline          []core.TimeSlice `json:"timeline" yaml:"timeline"`
	// Complete is false when the safety bound stopped the run early.
	Complete  bool    `json:"complete" yaml:"complete"`
	Completed int     `json:"completed" yaml:"completed"`
	TimeLimit int     `json:"time_limit,omitempty" yaml:"time_limit,omitempty"`
	Summary   Summary `json:"summary" yaml:"summary"`
}

// Title is the algorithm name plus its parameters.
func (r Result) Title() string {
	switch r.Algorithm {
	case RoundRobin:
		return fmt.Sprintf("%s (Time Quantum = %d)", r.Algorithm.Title(), r.TimeQuantum)
	case MultilevelFeedbackQueue:
		return fmt.Sprintf("%s (Levels = %v + FCFS)", r.Algorithm.Title(), r.LevelsTimeQuantum)
	}
	return r.Algorithm.Title()
}

func generateSummary(procs core.Workload, metric core.CpuMetric) Summary {
	details := make([]util.Times, 0, len(procs))
	for i := range procs {
		if procs[i].IsCompleted() {
			details = append(details, procs[i].Times())
		}
	}
	averageWaitingTime, averageResponseTime, averageTurnAroundTime := util.CalculateAverage(details)

	summary := Summary{
		AverageWaitingTime:    averageWaitingTime,
		AverageTurnaroundTime: averageTurnAroundTime,
		AverageResponseTime:   averageResponseTime,
		TotalTime:             metric.TotalTime,
		BusyTime:              metric.UtilizationTime,
		IdleTime:              metric.IdleTime,
	}
	if len(details) > 0 {
		summary.CpuUtilization = util.CalculateUtilization(metric.UtilizationTime, metric.TotalTime)
		summary.Throughput = util.CalculateThroughput(len(details), metric.TotalTime)
	}
	return summary
}

func generateResult(alg Algorithm, procs core.Workload, cpu *core.CPU, completed int) Result {
	result := Result{
		RunID:     uuid.New().String(),
		Algorithm: alg,
		Processes: procs,
		Timeline:  cpu.Timeline(),
		Complete:  completed == len(procs),
		Completed: completed,
		Summary:   generateSummary(procs, cpu.Metric()),
	}

	log := logger().WithFields(logging.Fields{
		"run_id":    result.RunID,
		"algorithm": string(alg),
	})
	if !result.Complete {
		log.Warn("not all processes could be completed, time bound reached", logging.Fields{
			"completed": completed,
			"total":     len(procs),
			"clock":     cpu.Now(),
		})
	}
	log.Debug("run finished", logging.Fields{
		"avg_waiting":    result.Summary.AverageWaitingTime,
		"avg_turnaround": result.Summary.AverageTurnaroundTime,
		"utilization":    result.Summary.CpuUtilization,
	})
	return result
}
