package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/schedulers"
	"cpu-scheduling-simulator/internal/workload"
)

func run(t *testing.T, script ...string) (*Session, string) {
	t.Helper()
	var out bytes.Buffer
	s := New(strings.NewReader(strings.Join(script, "\n")+"\n"), &out,
		schedulers.Options{TimeQuantum: 2, LevelsTimeQuantum: []int{2, 4}})
	require.NoError(t, s.Run())
	return s, out.String()
}

func TestSession_ExitImmediately(t *testing.T) {
	_, out := run(t, "0")
	assert.Contains(t, out, "CPU SCHEDULING ALGORITHMS SIMULATOR")
	assert.Contains(t, out, "12. Compare All Algorithms")
	assert.Contains(t, out, "Thank you for using the CPU Scheduling Simulator!")
}

func TestSession_EOFEndsCleanly(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("1\nP1\n"), &out, schedulers.Options{})
	assert.NoError(t, s.Run())
	assert.Empty(t, s.Processes())
}

func TestSession_AddProcess(t *testing.T) {
	s, out := run(t,
		"1", "A", "abc", "2000", "3", "0", "5", "7",
		"1", "A", "1", "2", "3",
		"1", strings.Repeat("x", 21), "B", "0", "1", "0",
		"0",
	)
	assert.Contains(t, out, "Error: Invalid input. Please enter a valid integer.")
	assert.Contains(t, out, "Error: Value must be between 0 and 1000")
	assert.Contains(t, out, "Error: Value must be between 1 and 100")
	assert.Contains(t, out, "Warning: A process with this name already exists.")
	assert.Contains(t, out, "Error: Name must be 1-20 characters long.")

	w := s.Processes()
	require.Len(t, w, 3)
	assert.Equal(t, core.NewProcess(1, "A", 3, 5, 7), w[0])
	assert.Equal(t, core.NewProcess(2, "A", 1, 2, 3), w[1])
	assert.Equal(t, 3, w[2].ID)
}

func TestSession_ProcessCap(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("1\n0\n"), &out, schedulers.Options{})
	for i := 0; i < core.MaxProcesses; i++ {
		s.processes = append(s.processes, core.NewProcess(i+1, "P", 0, 1, 0))
	}
	require.NoError(t, s.Run())
	assert.Contains(t, out.String(), "Error: Maximum process limit (100) reached!")
	assert.Len(t, s.Processes(), core.MaxProcesses)
}

func TestSession_EmptyWorkload(t *testing.T) {
	for _, choice := range []string{"2", "5", "6", "7", "8", "9", "10", "11", "12"} {
		t.Run(choice, func(t *testing.T) {
			_, out := run(t, choice, "0")
			assert.Contains(t, out, "No processes available")
			assert.NotContains(t, out, "Enter Time Quantum")
		})
	}
}

func TestSession_SampleAndRun(t *testing.T) {
	s, out := run(t, "3", "5", "10", "0", "2", "11", "0")
	assert.Equal(t, workload.Sample(), s.Processes(), "runs never mutate the session workload")
	assert.Contains(t, out, "Sample processes loaded successfully!")
	assert.Contains(t, out, "FCFS (First Come First Served)")
	assert.Contains(t, out, "Error: Value must be between 1 and 100")
	assert.Contains(t, out, "Round Robin (Time Quantum = 2)")
	assert.Contains(t, out, "Multilevel Feedback Queue (Levels = [2 4] + FCFS)")
}

func TestSession_PriorityNote(t *testing.T) {
	_, out := run(t, "3", "8", "0")
	assert.Contains(t, out, "Note: Lower priority number = Higher priority")
	assert.Contains(t, out, "Priority Scheduling (Non-Preemptive)")
}

func TestSession_Compare(t *testing.T) {
	_, out := run(t, "3", "12", "0")
	assert.Contains(t, out, "SRTF (Shortest Remaining Time First - Preemptive)")
	assert.Contains(t, out, "4/4")
}

func TestSession_Gantt(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("3\n5\n0\n"), &out, schedulers.Options{}).WithGantt(true)
	require.NoError(t, s.Run())
	assert.Contains(t, out.String(), "Gantt chart")
}

func TestSession_Clear(t *testing.T) {
	s, out := run(t, "4", "3", "4", "n", "4", "Y", "0")
	assert.Contains(t, out, "No processes to clear.")
	assert.Contains(t, out, "Operation cancelled.")
	assert.Contains(t, out, "All processes cleared successfully!")
	assert.Empty(t, s.Processes())
}

func TestSession_InvalidChoice(t *testing.T) {
	_, out := run(t, "13", "x", "0")
	assert.Contains(t, out, "Error: Value must be between 0 and 12")
	assert.Contains(t, out, "Error: Invalid input. Please enter a valid integer.")
}
