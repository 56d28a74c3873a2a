package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/schedulers"
)

func scrape(t *testing.T, r *Recorder) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()
	w := core.Workload{
		core.NewProcess(1, "P1", 0, 4, 0),
		core.NewProcess(2, "P2", 0, 2, 0),
	}
	r.Observe(schedulers.ScheduleFirstComeFirstServe(w))
	r.Observe(schedulers.ScheduleFirstComeFirstServe(w))
	r.Reject("rr")

	out := scrape(t, r)
	assert.Contains(t, out, `schedsim_runs_total{algorithm="fcfs",outcome="complete"} 2`)
	assert.Contains(t, out, `schedsim_runs_total{algorithm="rr",outcome="rejected"} 1`)
	assert.Contains(t, out, `schedsim_processes_simulated_total{algorithm="fcfs"} 4`)
	assert.Contains(t, out, `schedsim_cpu_utilization_percent{algorithm="fcfs"} 100`)
	assert.Contains(t, out, `schedsim_average_waiting_time_count{algorithm="fcfs"} 2`)
}

func TestRecorder_IncompleteRunSkipsAverages(t *testing.T) {
	r := NewRecorder()
	w := core.Workload{core.NewProcess(1, "P1", 0, 10, 0)}
	r.Observe(schedulers.ScheduleShortestRemainingTimeFirst(w, schedulers.Options{TimeLimit: 2}))

	out := scrape(t, r)
	assert.Contains(t, out, `schedsim_runs_total{algorithm="srtf",outcome="incomplete"} 1`)
	assert.NotContains(t, out, `schedsim_cpu_utilization_percent{algorithm="srtf"}`)
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRecorder()
		NewRecorder()
	})
}
