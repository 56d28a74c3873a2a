package core

import "fmt"

// TimeSlice is one uninterrupted stretch of cpu time given to a process.
type TimeSlice struct {
	ProcessID int    `json:"process_id" yaml:"process_id"`
	Name      string `json:"name" yaml:"name"`
	Start     int    `json:"start" yaml:"start"`
	End       int    `json:"end" yaml:"end"`
}

func (s TimeSlice) Duration() int {
	return s.End - s.Start
}

type CpuMetric struct {
	TotalTime       int `json:"total_time"`
	UtilizationTime int `json:"utilization_time"`
	IdleTime        int `json:"idle_time"`
}

// CPU is the simulated single core. It owns the clock and records every
// execution slice, so two processes can never run at the same instant.
type CPU struct {
	clock    int
	busy     int
	timeline []TimeSlice
}

func NewCPU() *CPU {
	return &CPU{timeline: make([]TimeSlice, 0)}
}

func (c *CPU) Now() int {
	return c.clock
}

// AdvanceTo moves the clock forward to t while the cpu sits idle. Earlier
// times are ignored.
func (c *CPU) AdvanceTo(t int) {
	if t > c.clock {
		c.clock = t
	}
}

// Idle lets the given number of time units pass without running anything.
func (c *CPU) Idle(units int) {
	if units > 0 {
		c.clock += units
	}
}

// Execute runs p for units time units starting now. The process is
// completed when its remaining time reaches zero, otherwise it goes back to
// ready.
func (c *CPU) Execute(p *Process, units int) {
	if !p.HasArrived(c.clock) {
		panic(fmt.Sprintf("process %d (%s) dispatched at %d before arrival %d", p.ID, p.Name, c.clock, p.ArrivalTime))
	}
	if units <= 0 || units > p.RemainingTime {
		panic(fmt.Sprintf("process %d (%s): cannot run %d of %d remaining units", p.ID, p.Name, units, p.RemainingTime))
	}

	p.dispatch(c.clock)
	start := c.clock
	p.RemainingTime -= units
	c.clock += units
	c.busy += units
	c.record(p, start, c.clock)
	p.release(c.clock)
}

func (c *CPU) record(p *Process, start, end int) {
	if n := len(c.timeline); n > 0 {
		last := &c.timeline[n-1]
		if last.ProcessID == p.ID && last.End == start {
			last.End = end
			return
		}
	}
	c.timeline = append(c.timeline, TimeSlice{ProcessID: p.ID, Name: p.Name, Start: start, End: end})
}

// Timeline returns a copy of the recorded execution slices in time order.
func (c *CPU) Timeline() []TimeSlice {
	out := make([]TimeSlice, len(c.timeline))
	copy(out, c.timeline)
	return out
}

func (c *CPU) Metric() CpuMetric {
	return CpuMetric{
		TotalTime:       c.clock,
		UtilizationTime: c.busy,
		IdleTime:        c.clock - c.busy,
	}
}
