package core

import (
	"errors"
	"fmt"

	"cpu-scheduling-simulator/internal/util"
)

// MaxProcesses caps the size of a single workload.
const MaxProcesses = 100

const (
	MaxNameLength = 20
	MinPriority   = 0
	MaxPriority   = 99
)

var (
	ErrInvalidProcess   = errors.New("invalid process")
	ErrTooManyProcesses = errors.New("too many processes")
)

// Process is one workload item. The static fields describe the workload; the
// rest is written by exactly one simulation run on its private copy.
type Process struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	ArrivalTime int    `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int    `json:"burst_time" yaml:"burst_time"`
	Priority    int    `json:"priority" yaml:"priority"`

	RemainingTime  int   `json:"remaining_time" yaml:"remaining_time"`
	Started        bool  `json:"started" yaml:"started"`
	State          State `json:"state" yaml:"state"`
	CompletionTime int   `json:"completion_time" yaml:"completion_time"`
	TurnaroundTime int   `json:"turnaround_time" yaml:"turnaround_time"`
	WaitingTime    int   `json:"waiting_time" yaml:"waiting_time"`
	// ResponseTime is nil until the process is dispatched for the first time.
	ResponseTime *int `json:"response_time,omitempty" yaml:"response_time,omitempty"`
}

// NewProcess creates a process carrying only its static workload description.
func NewProcess(id int, name string, arrival, burst, priority int) Process {
	p := Process{
		ID:          id,
		Name:        name,
		ArrivalTime: arrival,
		BurstTime:   burst,
		Priority:    priority,
	}
	p.Reset()
	return p
}

// Reset clears all simulation output.
func (p *Process) Reset() {
	p.RemainingTime = p.BurstTime
	p.Started = false
	p.State = StatePending
	p.CompletionTime = 0
	p.TurnaroundTime = 0
	p.WaitingTime = 0
	p.ResponseTime = nil
}

func (p *Process) IsCompleted() bool {
	return p.State == StateCompleted
}

// HasArrived reports whether the process is eligible at time t.
func (p *Process) HasArrived(t int) bool {
	return p.ArrivalTime <= t
}

func (p *Process) transition(to State) {
	if err := ValidateTransition(p.State, to); err != nil {
		panic(fmt.Sprintf("process %d (%s): %v", p.ID, p.Name, err))
	}
	p.State = to
}

// MarkReady moves a pending process into the ready state. Ready processes are
// left untouched.
func (p *Process) MarkReady() {
	if p.State == StatePending {
		p.transition(StateReady)
	}
}

// dispatch hands the cpu to p at time t and records the response time on the
// first dispatch.
func (p *Process) dispatch(t int) {
	p.MarkReady()
	p.transition(StateRunning)
	if !p.Started {
		p.Started = true
		response := t - p.ArrivalTime
		p.ResponseTime = &response
	}
}

// release gives the cpu back at time t, completing the process when nothing
// remains.
func (p *Process) release(t int) {
	if p.RemainingTime > 0 {
		p.transition(StateReady)
		return
	}
	p.transition(StateCompleted)
	p.CompletionTime = t
	times := util.CalculateTimes(p.ArrivalTime, p.BurstTime, p.CompletionTime, p.ArrivalTime+*p.ResponseTime)
	p.TurnaroundTime = times.Turnaround
	p.WaitingTime = times.Waiting
	p.ResponseTime = &times.Response
}

// Times returns the derived metrics of a completed process.
func (p *Process) Times() util.Times {
	t := util.Times{
		Turnaround: p.TurnaroundTime,
		Waiting:    p.WaitingTime,
	}
	if p.ResponseTime != nil {
		t.Response = *p.ResponseTime
	}
	return t
}

// ValidateProcess checks the static fields against the workload bounds.
func ValidateProcess(p Process) error {
	switch {
	case p.Name == "" || len(p.Name) > MaxNameLength:
		return fmt.Errorf("%w: name %q must be 1-%d characters", ErrInvalidProcess, p.Name, MaxNameLength)
	case p.ArrivalTime < 0:
		return fmt.Errorf("%w: %s arrival time %d is negative", ErrInvalidProcess, p.Name, p.ArrivalTime)
	case p.BurstTime <= 0:
		return fmt.Errorf("%w: %s burst time %d must be positive", ErrInvalidProcess, p.Name, p.BurstTime)
	case p.Priority < MinPriority || p.Priority > MaxPriority:
		return fmt.Errorf("%w: %s priority %d outside %d-%d", ErrInvalidProcess, p.Name, p.Priority, MinPriority, MaxPriority)
	}
	return nil
}

// Workload is an ordered set of processes; insertion order is id order.
type Workload []Process

// Clone returns a private copy with simulation state reset.
func (w Workload) Clone() Workload {
	c := make(Workload, len(w))
	copy(c, w)
	for i := range c {
		c[i].Reset()
	}
	return c
}

func (w Workload) TotalBurst() int {
	total := 0
	for _, p := range w {
		total += p.BurstTime
	}
	return total
}

func (w Workload) MaxArrival() int {
	latest := 0
	for _, p := range w {
		if p.ArrivalTime > latest {
			latest = p.ArrivalTime
		}
	}
	return latest
}

// HasName reports whether a process with the given name already exists.
func (w Workload) HasName(name string) bool {
	for _, p := range w {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Validate checks the capacity guard and every process.
func (w Workload) Validate() error {
	if len(w) > MaxProcesses {
		return fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyProcesses, len(w), MaxProcesses)
	}
	for _, p := range w {
		if err := ValidateProcess(p); err != nil {
			return err
		}
	}
	return nil
}
