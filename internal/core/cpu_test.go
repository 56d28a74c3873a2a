package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPU_ExecuteDerivesMetrics(t *testing.T) {
	cpu := NewCPU()
	p := NewProcess(1, "P1", 2, 4, 0)

	cpu.AdvanceTo(3)
	cpu.Execute(&p, 1)

	require.NotNil(t, p.ResponseTime)
	assert.Equal(t, 1, *p.ResponseTime)
	assert.Equal(t, StateReady, p.State)
	assert.Equal(t, 3, p.RemainingTime)

	cpu.Idle(2)
	cpu.Execute(&p, 3)

	assert.Equal(t, StateCompleted, p.State)
	assert.Equal(t, 9, p.CompletionTime)
	assert.Equal(t, 7, p.TurnaroundTime)
	assert.Equal(t, 3, p.WaitingTime)
	assert.Equal(t, 1, *p.ResponseTime, "response is fixed at the first dispatch")

	assert.Equal(t, CpuMetric{TotalTime: 9, UtilizationTime: 4, IdleTime: 5}, cpu.Metric())
	assert.Equal(t, []TimeSlice{
		{ProcessID: 1, Name: "P1", Start: 3, End: 4},
		{ProcessID: 1, Name: "P1", Start: 6, End: 9},
	}, cpu.Timeline())
}

func TestCPU_AdvanceToNeverGoesBack(t *testing.T) {
	cpu := NewCPU()
	cpu.AdvanceTo(5)
	cpu.AdvanceTo(2)
	assert.Equal(t, 5, cpu.Now())
}

func TestCPU_CoalescesAdjacentSlices(t *testing.T) {
	cpu := NewCPU()
	a := NewProcess(1, "A", 0, 3, 0)
	b := NewProcess(2, "B", 0, 1, 0)

	cpu.Execute(&a, 1)
	cpu.Execute(&a, 1)
	cpu.Execute(&b, 1)
	cpu.Execute(&a, 1)

	timeline := cpu.Timeline()
	require.Len(t, timeline, 3)
	assert.Equal(t, 2, timeline[0].Duration())
	assert.Equal(t, 2, timeline[1].ProcessID)
	assert.Equal(t, 4, a.CompletionTime)
}

func TestCPU_RejectsDispatchBeforeArrival(t *testing.T) {
	cpu := NewCPU()
	p := NewProcess(1, "late", 5, 1, 0)
	assert.Panics(t, func() { cpu.Execute(&p, 1) })
}

func TestCPU_RejectsOverrun(t *testing.T) {
	cpu := NewCPU()
	p := NewProcess(1, "P", 0, 2, 0)
	assert.Panics(t, func() { cpu.Execute(&p, 3) })
	assert.Panics(t, func() { cpu.Execute(&p, 0) })
}
