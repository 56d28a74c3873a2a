package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cpu-scheduling-simulator/internal/schedulers"
)

const (
	OutcomeComplete   = "complete"
	OutcomeIncomplete = "incomplete"
	OutcomeRejected   = "rejected"
)

// Recorder tracks simulation runs
type Recorder struct {
	registry *prometheus.Registry

	runs               *prometheus.CounterVec
	processesSimulated *prometheus.CounterVec
	averageWaitingTime *prometheus.HistogramVec
	cpuUtilization     *prometheus.GaugeVec
}

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedsim_runs_total",
				Help: "Total number of scheduling runs by algorithm and outcome",
			},
			[]string{"algorithm", "outcome"},
		),
		processesSimulated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedsim_processes_simulated_total",
				Help: "Total number of processes fed into simulations",
			},
			[]string{"algorithm"},
		),
		averageWaitingTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "schedsim_average_waiting_time",
				Help:    "Average waiting time per run in time units",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"algorithm"},
		),
		cpuUtilization: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "schedsim_cpu_utilization_percent",
				Help: "CPU utilization of the latest run",
			},
			[]string{"algorithm"},
		),
	}

	r.registry.MustRegister(r.runs)
	r.registry.MustRegister(r.processesSimulated)
	r.registry.MustRegister(r.averageWaitingTime)
	r.registry.MustRegister(r.cpuUtilization)

	return r
}

// Observe records the outcome of one run.
func (r *Recorder) Observe(result schedulers.Result) {
	alg := string(result.Algorithm)
	outcome := OutcomeComplete
	if !result.Complete {
		outcome = OutcomeIncomplete
	}

	r.runs.WithLabelValues(alg, outcome).Inc()
	r.processesSimulated.WithLabelValues(alg).Add(float64(len(result.Processes)))
	if result.Completed > 0 {
		r.averageWaitingTime.WithLabelValues(alg).Observe(result.Summary.AverageWaitingTime)
		r.cpuUtilization.WithLabelValues(alg).Set(result.Summary.CpuUtilization)
	}
}

// Reject counts a run refused before simulation, e.g. on invalid input.
func (r *Recorder) Reject(alg string) {
	r.runs.WithLabelValues(alg, OutcomeRejected).Inc()
}

// Handler returns HTTP handler for Prometheus metrics
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
