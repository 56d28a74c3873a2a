// Package session implements the interactive menu of the simulator.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/logging"
	"cpu-scheduling-simulator/internal/report"
	"cpu-scheduling-simulator/internal/schedulers"
	"cpu-scheduling-simulator/internal/workload"
)

const (
	MaxArrivalInput = 1000
	MaxBurstInput   = 100
	MaxQuantumInput = 100
)

const banner = "========================================================"

type menuEntry struct {
	label string
	run   func(*Session) error
}

var menu = []menuEntry{
	{"Exit", nil},
	{"Add Process", (*Session).addProcess},
	{"Display All Processes", (*Session).displayProcesses},
	{"Load Sample Data", (*Session).loadSample},
	{"Clear All Processes", (*Session).clearProcesses},
	{"Run FCFS", runAlgorithm(schedulers.FirstComeFirstServe)},
	{"Run SJF (Non-Preemptive)", runAlgorithm(schedulers.ShortestJobFirst)},
	{"Run SRTF (Preemptive SJF)", runAlgorithm(schedulers.ShortestRemainingTimeFirst)},
	{"Run Priority (Non-Preemptive)", runAlgorithm(schedulers.Priority)},
	{"Run Priority (Preemptive)", runAlgorithm(schedulers.PriorityPreemptive)},
	{"Run Round Robin", (*Session).roundRobin},
	{"Run Multilevel Feedback Queue", runAlgorithm(schedulers.MultilevelFeedbackQueue)},
	{"Compare All Algorithms", (*Session).compare},
}

// Session owns the authoritative workload and dispatches menu choices to the
// schedulers.
type Session struct {
	in        *bufio.Scanner
	out       io.Writer
	opts      schedulers.Options
	processes core.Workload
	gantt     bool
	log       *logging.Logger
}

func New(in io.Reader, out io.Writer, opts schedulers.Options) *Session {
	return &Session{
		in:   bufio.NewScanner(in),
		out:  out,
		opts: opts,
		log:  logging.Default().WithComponent("session"),
	}
}

// WithGantt toggles the Gantt chart after each run.
func (s *Session) WithGantt(enabled bool) *Session {
	s.gantt = enabled
	return s
}

func (s *Session) Processes() core.Workload {
	return s.processes
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// Run drives the menu until the user exits or input ends.
func (s *Session) Run() error {
	s.printf("\n%s\n       CPU SCHEDULING ALGORITHMS SIMULATOR\n%s\n", banner, banner)

	for {
		s.printf("\n============ MENU ============\n")
		for i := 1; i < len(menu); i++ {
			s.printf("%-4s%s\n", strconv.Itoa(i)+".", menu[i].label)
		}
		s.printf("%-4s%s\n", "0.", menu[0].label)
		s.printf("==============================\n")

		choice, err := s.readInt("Enter choice: ", 0, len(menu)-1)
		if err == nil && choice != 0 {
			err = menu[choice].run(s)
		}
		if errors.Is(err, io.EOF) {
			s.log.Debug("input closed, leaving session")
			return nil
		}
		if err != nil {
			return err
		}
		if choice == 0 {
			s.printf("\n%s\n   Thank you for using the CPU Scheduling Simulator!\n%s\n\n", banner, banner)
			return nil
		}
	}
}

func (s *Session) readToken(prompt string) (string, error) {
	s.printf("%s", prompt)
	for s.in.Scan() {
		if fields := strings.Fields(s.in.Text()); len(fields) > 0 {
			return fields[0], nil
		}
		s.printf("%s", prompt)
	}
	if err := s.in.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// readInt re-prompts until a number within [lo, hi] is entered.
func (s *Session) readInt(prompt string, lo, hi int) (int, error) {
	for {
		token, err := s.readToken(prompt)
		if err != nil {
			return 0, err
		}
		value, err := strconv.Atoi(token)
		if err != nil {
			s.printf("Error: Invalid input. Please enter a valid integer.\n")
			continue
		}
		if value < lo || value > hi {
			s.printf("Error: Value must be between %d and %d\n", lo, hi)
			continue
		}
		return value, nil
	}
}

func (s *Session) readName(prompt string) (string, error) {
	for {
		name, err := s.readToken(prompt)
		if err != nil {
			return "", err
		}
		if len(name) <= core.MaxNameLength {
			return name, nil
		}
		s.printf("Error: Name must be 1-%d characters long.\n", core.MaxNameLength)
	}
}

func (s *Session) requireProcesses() bool {
	if len(s.processes) == 0 {
		s.printf("\nError: %s! Please add processes first.\n", report.NoProcessesMessage)
		return false
	}
	return true
}

func (s *Session) addProcess() error {
	if len(s.processes) >= core.MaxProcesses {
		s.printf("\nError: Maximum process limit (%d) reached!\n", core.MaxProcesses)
		return nil
	}

	s.printf("\n--- Add New Process ---\n")
	name, err := s.readName(fmt.Sprintf("Enter Process Name (1-%d chars): ", core.MaxNameLength))
	if err != nil {
		return err
	}
	if s.processes.HasName(name) {
		s.printf("Warning: A process with this name already exists.\n")
	}
	arrival, err := s.readInt(fmt.Sprintf("Enter Arrival Time (0-%d): ", MaxArrivalInput), 0, MaxArrivalInput)
	if err != nil {
		return err
	}
	burst, err := s.readInt(fmt.Sprintf("Enter Burst Time (1-%d): ", MaxBurstInput), 1, MaxBurstInput)
	if err != nil {
		return err
	}
	priority, err := s.readInt(fmt.Sprintf("Enter Priority (%d-%d, lower = higher priority): ", core.MinPriority, core.MaxPriority),
		core.MinPriority, core.MaxPriority)
	if err != nil {
		return err
	}

	s.processes = append(s.processes, core.NewProcess(len(s.processes)+1, name, arrival, burst, priority))
	s.printf("\nProcess '%s' added successfully!\n", name)
	return nil
}

func (s *Session) displayProcesses() error {
	if !s.requireProcesses() {
		return nil
	}
	s.printf("\nCURRENT PROCESSES\n")
	return report.WriteProcesses(s.out, s.processes)
}

func (s *Session) loadSample() error {
	s.processes = workload.Sample()
	s.printf("\nSample processes loaded successfully!\n")
	return s.displayProcesses()
}

func (s *Session) clearProcesses() error {
	if len(s.processes) == 0 {
		s.printf("\nNo processes to clear.\n")
		return nil
	}
	confirm, err := s.readToken("\nAre you sure you want to clear all processes? (y/n): ")
	if err != nil {
		return err
	}
	if strings.EqualFold(confirm[:1], "y") {
		s.processes = nil
		s.printf("\nAll processes cleared successfully!\n")
	} else {
		s.printf("\nOperation cancelled.\n")
	}
	return nil
}

func runAlgorithm(alg schedulers.Algorithm) func(*Session) error {
	return func(s *Session) error {
		return s.run(alg, s.opts)
	}
}

func (s *Session) roundRobin() error {
	if !s.requireProcesses() {
		return nil
	}
	quantum, err := s.readInt(fmt.Sprintf("Enter Time Quantum (1-%d): ", MaxQuantumInput), 1, MaxQuantumInput)
	if err != nil {
		return err
	}
	opts := s.opts
	opts.TimeQuantum = quantum
	return s.run(schedulers.RoundRobin, opts)
}

func (s *Session) run(alg schedulers.Algorithm, opts schedulers.Options) error {
	if !s.requireProcesses() {
		return nil
	}
	result, err := schedulers.Schedule(alg, s.processes, opts)
	if err != nil {
		s.printf("\nError: %v\n", err)
		return nil
	}

	s.printf("\n")
	if alg == schedulers.Priority || alg == schedulers.PriorityPreemptive {
		s.printf("Note: Lower priority number = Higher priority\n")
	}
	if err := report.WriteResult(s.out, result); err != nil {
		return err
	}
	if s.gantt {
		return report.WriteGantt(s.out, result.Timeline)
	}
	return nil
}

func (s *Session) compare() error {
	if !s.requireProcesses() {
		return nil
	}
	results, err := schedulers.ScheduleAll(s.processes, s.opts)
	if err != nil {
		s.printf("\nError: %v\n", err)
		return nil
	}
	s.printf("\n")
	return report.WriteComparison(s.out, results)
}
