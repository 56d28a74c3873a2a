package schedulers

import (
	"errors"
	"fmt"
	"strings"

	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/logging"
)

// Algorithm names a scheduling discipline.
type Algorithm string

const (
	FirstComeFirstServe        Algorithm = "fcfs"
	ShortestJobFirst           Algorithm = "sjf"
	ShortestRemainingTimeFirst Algorithm = "srtf"
	Priority                   Algorithm = "priority"
	PriorityPreemptive         Algorithm = "priority-preemptive"
	RoundRobin                 Algorithm = "rr"
	MultilevelFeedbackQueue    Algorithm = "mlfq"
)

// DefaultSafetyBuffer is added to the total burst and latest arrival to bound
// the preemptive simulations.
const DefaultSafetyBuffer = 1000

var DefaultLevelsTimeQuantum = []int{2, 4}

var (
	ErrEmptyWorkload      = errors.New("no processes available")
	ErrUnknownAlgorithm   = errors.New("unknown algorithm")
	ErrInvalidTimeQuantum = errors.New("time quantum must be positive")
)

var titles = map[Algorithm]string{
	FirstComeFirstServe:        "FCFS (First Come First Served)",
	ShortestJobFirst:           "SJF (Shortest Job First - Non-Preemptive)",
	ShortestRemainingTimeFirst: "SRTF (Shortest Remaining Time First - Preemptive)",
	Priority:                   "Priority Scheduling (Non-Preemptive)",
	PriorityPreemptive:         "Priority Scheduling (Preemptive)",
	RoundRobin:                 "Round Robin",
	MultilevelFeedbackQueue:    "Multilevel Feedback Queue",
}

var aliases = map[string]Algorithm{
	"fcfs":                    FirstComeFirstServe,
	"first-come-first-serve":  FirstComeFirstServe,
	"first-come-first-served": FirstComeFirstServe,
	"sjf":                     ShortestJobFirst,
	"shortest-job-first":      ShortestJobFirst,
	"srtf":                    ShortestRemainingTimeFirst,
	"shortest-remaining-time": ShortestRemainingTimeFirst,
	"preemptive-sjf":          ShortestRemainingTimeFirst,
	"priority":                Priority,
	"priority-np":             Priority,
	"priority-non-preemptive": Priority,
	"priority-preemptive":     PriorityPreemptive,
	"priority-p":              PriorityPreemptive,
	"rr":                      RoundRobin,
	"round-robin":             RoundRobin,
	"mlfq":                    MultilevelFeedbackQueue,
	"multilevel-feedback":     MultilevelFeedbackQueue,
}

// Title is the human readable name of the algorithm.
func (a Algorithm) Title() string {
	if t, ok := titles[a]; ok {
		return t
	}
	return string(a)
}

// Preemptive reports whether the algorithm can take the cpu away from a
// running process.
func (a Algorithm) Preemptive() bool {
	switch a {
	case ShortestRemainingTimeFirst, PriorityPreemptive, RoundRobin, MultilevelFeedbackQueue:
		return true
	}
	return false
}

// Algorithms lists every supported discipline in menu order.
func Algorithms() []Algorithm {
	return []Algorithm{
		FirstComeFirstServe,
		ShortestJobFirst,
		ShortestRemainingTimeFirst,
		Priority,
		PriorityPreemptive,
		RoundRobin,
		MultilevelFeedbackQueue,
	}
}

// ParseAlgorithm resolves an algorithm name or alias.
func ParseAlgorithm(name string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	if a, ok := aliases[key]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Options tunes a simulation run.
type Options struct {
	TimeQuantum       int
	LevelsTimeQuantum []int
	// SafetyBuffer is added to the computed time bound; non-positive values
	// use DefaultSafetyBuffer.
	SafetyBuffer int
	// TimeLimit replaces the computed time bound when positive.
	TimeLimit int
}

func (o Options) levels() []int {
	if len(o.LevelsTimeQuantum) == 0 {
		return DefaultLevelsTimeQuantum
	}
	return o.LevelsTimeQuantum
}

// safetyLimit is the clock value at which a preemptive run gives up.
func safetyLimit(w core.Workload, opts Options) int {
	if opts.TimeLimit > 0 {
		return opts.TimeLimit
	}
	buffer := opts.SafetyBuffer
	if buffer <= 0 {
		buffer = DefaultSafetyBuffer
	}
	return w.TotalBurst() + w.MaxArrival() + buffer
}

func logger() *logging.Logger {
	return logging.Default().WithComponent("scheduler")
}

// Schedule validates the workload and parameters, then runs one algorithm on
// a private copy of the workload.
func Schedule(alg Algorithm, w core.Workload, opts Options) (Result, error) {
	if len(w) == 0 {
		return Result{}, ErrEmptyWorkload
	}
	if err := w.Validate(); err != nil {
		return Result{}, err
	}

	switch alg {
	case FirstComeFirstServe:
		return ScheduleFirstComeFirstServe(w), nil
	case ShortestJobFirst:
		return ScheduleShortestJobFirst(w), nil
	case ShortestRemainingTimeFirst:
		return ScheduleShortestRemainingTimeFirst(w, opts), nil
	case Priority:
		return SchedulePriority(w), nil
	case PriorityPreemptive:
		return SchedulePriorityPreemptive(w, opts), nil
	case RoundRobin:
		if opts.TimeQuantum <= 0 {
			return Result{}, fmt.Errorf("%w: got %d", ErrInvalidTimeQuantum, opts.TimeQuantum)
		}
		return ScheduleRoundRobin(w, opts.TimeQuantum, opts), nil
	case MultilevelFeedbackQueue:
		levels := opts.levels()
		for _, q := range levels {
			if q <= 0 {
				return Result{}, fmt.Errorf("%w: level quantum %d", ErrInvalidTimeQuantum, q)
			}
		}
		return ScheduleMultilevelFeedbackQueue(w, levels, opts), nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
	}
}

// ScheduleAll runs every algorithm against the same workload. Each run gets
// its own copy, so results never observe each other.
func ScheduleAll(w core.Workload, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(Algorithms()))
	for _, alg := range Algorithms() {
		r, err := Schedule(alg, w, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", alg, err)
		}
		results = append(results, r)
	}
	return results, nil
}
