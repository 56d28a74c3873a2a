package requests

import (
	"errors"
	"fmt"

	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/schedulers"
)

var ErrInvalidRequest = errors.New("invalid request")

type ProcessRequest struct {
	Name        string `json:"name" yaml:"name"`
	ArrivalTime int    `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int    `json:"burst_time" yaml:"burst_time"`
	Priority    int    `json:"priority" yaml:"priority"`
}

type ScheduleRequest struct {
	Processes         []ProcessRequest `json:"processes" yaml:"processes"`
	TimeQuantum       int              `json:"time_quantum,omitempty" yaml:"time_quantum,omitempty"`
	LevelsTimeQuantum []int            `json:"levels_time_quantum,omitempty" yaml:"levels_time_quantum,omitempty"`
}

// Workload validates the request and builds a workload with ids assigned in
// request order.
func (r *ScheduleRequest) Workload() (core.Workload, error) {
	if len(r.Processes) == 0 {
		return nil, schedulers.ErrEmptyWorkload
	}
	if len(r.Processes) > core.MaxProcesses {
		return nil, fmt.Errorf("%w: %d exceeds limit of %d", core.ErrTooManyProcesses, len(r.Processes), core.MaxProcesses)
	}

	w := make(core.Workload, 0, len(r.Processes))
	for i, pr := range r.Processes {
		p := core.NewProcess(i+1, pr.Name, pr.ArrivalTime, pr.BurstTime, pr.Priority)
		if err := core.ValidateProcess(p); err != nil {
			return nil, fmt.Errorf("process %d: %w", i+1, err)
		}
		w = append(w, p)
	}
	return w, nil
}

// Options merges the request parameters over the configured defaults.
func (r *ScheduleRequest) Options(defaults schedulers.Options) (schedulers.Options, error) {
	opts := defaults
	if r.TimeQuantum < 0 {
		return opts, fmt.Errorf("%w: %w", ErrInvalidRequest, schedulers.ErrInvalidTimeQuantum)
	}
	if r.TimeQuantum > 0 {
		opts.TimeQuantum = r.TimeQuantum
	}
	if len(r.LevelsTimeQuantum) > 0 {
		for _, q := range r.LevelsTimeQuantum {
			if q <= 0 {
				return opts, fmt.Errorf("%w: %w", ErrInvalidRequest, schedulers.ErrInvalidTimeQuantum)
			}
		}
		opts.LevelsTimeQuantum = append([]int(nil), r.LevelsTimeQuantum...)
	}
	return opts, nil
}

// FromWorkload is the inverse of Workload, used to echo or persist a workload.
func FromWorkload(w core.Workload) ScheduleRequest {
	req := ScheduleRequest{Processes: make([]ProcessRequest, 0, len(w))}
	for _, p := range w {
		req.Processes = append(req.Processes, ProcessRequest{
			Name:        p.Name,
			ArrivalTime: p.ArrivalTime,
			BurstTime:   p.BurstTime,
			Priority:    p.Priority,
		})
	}
	return req
}
