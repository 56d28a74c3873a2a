package responses

import (
	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/schedulers"
)

type ProcessResponse struct {
	ProcessId      int    `json:"process_id" yaml:"process_id"`
	Name           string `json:"name" yaml:"name"`
	ArrivalTime    int    `json:"arrival_time" yaml:"arrival_time"`
	BurstTime      int    `json:"burst_time" yaml:"burst_time"`
	Priority       int    `json:"priority" yaml:"priority"`
	Completed      bool   `json:"completed" yaml:"completed"`
	CompletionTime int    `json:"completion_time" yaml:"completion_time"`
	TurnAroundTime int    `json:"turn_around_time" yaml:"turn_around_time"`
	WaitingTime    int    `json:"waiting_time" yaml:"waiting_time"`
	// ResponseTime is omitted for processes that never got the cpu.
	ResponseTime *int `json:"response_time,omitempty" yaml:"response_time,omitempty"`
}

type ScheduleResponse struct {
	RunID                 string            `json:"run_id" yaml:"run_id"`
	Algorithm             string            `json:"algorithm" yaml:"algorithm"`
	Title                 string            `json:"title" yaml:"title"`
	TimeQuantum           int               `json:"time_quantum,omitempty" yaml:"time_quantum,omitempty"`
	LevelsTimeQuantum     []int             `json:"levels_time_quantum,omitempty" yaml:"levels_time_quantum,omitempty"`
	Complete              bool              `json:"complete" yaml:"complete"`
	CompletedCount        int               `json:"completed_count" yaml:"completed_count"`
	TotalTime             float64           `json:"total_time" yaml:"total_time"`
	IdleTime              float64           `json:"idle_time" yaml:"idle_time"`
	AverageWaitingTime    float64           `json:"average_waiting_time" yaml:"average_waiting_time"`
	AverageResponseTime   float64           `json:"average_response_time" yaml:"average_response_time"`
	AverageTurnAroundTime float64           `json:"average_turn_around_time" yaml:"average_turn_around_time"`
	CpuUtilization        float64           `json:"cpu_utilization" yaml:"cpu_utilization"`
	CpuThroughput         float64           `json:"cpu_throughput" yaml:"cpu_throughput"`
	Details               []ProcessResponse `json:"details" yaml:"details"`
	Timeline              []core.TimeSlice  `json:"timeline" yaml:"timeline"`
}

type ComparisonResponse struct {
	Results []ScheduleResponse `json:"results" yaml:"results"`
}

func NewScheduleResponse(result schedulers.Result) ScheduleResponse {
	details := make([]ProcessResponse, 0, len(result.Processes))
	for _, p := range result.Processes {
		details = append(details, ProcessResponse{
			ProcessId:      p.ID,
			Name:           p.Name,
			ArrivalTime:    p.ArrivalTime,
			BurstTime:      p.BurstTime,
			Priority:       p.Priority,
			Completed:      p.IsCompleted(),
			CompletionTime: p.CompletionTime,
			TurnAroundTime: p.TurnaroundTime,
			WaitingTime:    p.WaitingTime,
			ResponseTime:   p.ResponseTime,
		})
	}

	s := result.Summary
	return ScheduleResponse{
		RunID:                 result.RunID,
		Algorithm:             string(result.Algorithm),
		Title:                 result.Title(),
		TimeQuantum:           result.TimeQuantum,
		LevelsTimeQuantum:     result.LevelsTimeQuantum,
		Complete:              result.Complete,
		CompletedCount:        result.Completed,
		TotalTime:             float64(s.TotalTime),
		IdleTime:              float64(s.IdleTime),
		AverageWaitingTime:    s.AverageWaitingTime,
		AverageResponseTime:   s.AverageResponseTime,
		AverageTurnAroundTime: s.AverageTurnaroundTime,
		CpuUtilization:        s.CpuUtilization,
		CpuThroughput:         s.Throughput,
		Details:               details,
		Timeline:              result.Timeline,
	}
}

func NewComparisonResponse(results []schedulers.Result) ComparisonResponse {
	out := ComparisonResponse{Results: make([]ScheduleResponse, 0, len(results))}
	for _, r := range results {
		out.Results = append(out.Results, NewScheduleResponse(r))
	}
	return out
}
