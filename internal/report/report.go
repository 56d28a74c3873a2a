// Package report renders workloads and simulation results for the console.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/requests"
	"cpu-scheduling-simulator/internal/responses"
	"cpu-scheduling-simulator/internal/schedulers"
)

const NoProcessesMessage = "No processes available"

var ErrUnknownFormat = errors.New("unknown output format")

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)+4))
	_, _ = fmt.Fprintln(w, " ", title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)+4))
}

func fmtAvg(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteProcesses prints the static description of a workload.
func WriteProcesses(w io.Writer, workload core.Workload) error {
	if len(workload) == 0 {
		_, err := fmt.Fprintln(w, NoProcessesMessage)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Process", "Arrival", "Burst", "Priority")
	for _, p := range workload {
		if err := table.Append(p.Name, strconv.Itoa(p.ArrivalTime), strconv.Itoa(p.BurstTime), strconv.Itoa(p.Priority)); err != nil {
			return err
		}
	}
	table.Footer("Total", strconv.Itoa(len(workload)), "", "")
	return table.Render()
}

// WriteResult prints the per-process outcome of a run with the averages in
// the footer.
func WriteResult(w io.Writer, result schedulers.Result) error {
	outputTitle(w, result.Title())
	if !result.Complete {
		_, _ = fmt.Fprintf(w, "Warning: simulation stopped at the time bound, %d of %d processes completed\n",
			result.Completed, len(result.Processes))
	}

	table := tablewriter.NewWriter(w)
	table.Header("Process", "Arrival", "Burst", "Completion", "Turnaround", "Waiting", "Response")
	for _, p := range result.Processes {
		completion, turnaround, waiting := "-", "-", "-"
		if p.IsCompleted() {
			completion = strconv.Itoa(p.CompletionTime)
			turnaround = strconv.Itoa(p.TurnaroundTime)
			waiting = strconv.Itoa(p.WaitingTime)
		}
		response := "-"
		if p.ResponseTime != nil {
			response = strconv.Itoa(*p.ResponseTime)
		}
		err := table.Append(p.Name, strconv.Itoa(p.ArrivalTime), strconv.Itoa(p.BurstTime),
			completion, turnaround, waiting, response)
		if err != nil {
			return err
		}
	}
	s := result.Summary
	table.Footer("", "", "", "Average",
		fmtAvg(s.AverageTurnaroundTime), fmtAvg(s.AverageWaitingTime), fmtAvg(s.AverageResponseTime))
	if err := table.Render(); err != nil {
		return err
	}

	if result.Completed > 0 {
		_, _ = fmt.Fprintf(w, "CPU Utilization: %s%%\n", fmtAvg(s.CpuUtilization))
		_, _ = fmt.Fprintf(w, "Throughput: %s/t\n", strconv.FormatFloat(s.Throughput, 'f', 3, 64))
	}
	return nil
}

// WriteGantt prints the execution timeline. Gaps between slices are shown as
// idle.
func WriteGantt(w io.Writer, timeline []core.TimeSlice) error {
	if len(timeline) == 0 {
		_, err := fmt.Fprintln(w, "Gantt chart: (empty)")
		return err
	}

	type cell struct {
		label      string
		start, end int
	}
	cells := make([]cell, 0, len(timeline))
	clock := 0
	for _, s := range timeline {
		if s.Start > clock {
			cells = append(cells, cell{"idle", clock, s.Start})
		}
		cells = append(cells, cell{s.Name, s.Start, s.End})
		clock = s.End
	}

	var bar, ticks strings.Builder
	bar.WriteString("|")
	for _, c := range cells {
		width := len(c.label) + 4
		if minWidth := len(strconv.Itoa(c.start)) + 2; minWidth > width {
			width = minWidth
		}
		pad := width - len(c.label)
		bar.WriteString(strings.Repeat(" ", pad/2) + c.label + strings.Repeat(" ", pad-pad/2) + "|")

		start := strconv.Itoa(c.start)
		ticks.WriteString(start + strings.Repeat(" ", width+1-len(start)))
	}
	ticks.WriteString(strconv.Itoa(cells[len(cells)-1].end))

	_, _ = fmt.Fprintln(w, "Gantt chart")
	_, _ = fmt.Fprintln(w, bar.String())
	_, err := fmt.Fprintln(w, ticks.String())
	return err
}

// WriteComparison prints one row per algorithm run.
func WriteComparison(w io.Writer, results []schedulers.Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("Algorithm", "Avg Waiting", "Avg Turnaround", "Avg Response", "CPU Util %", "Completed")
	for _, r := range results {
		s := r.Summary
		util := "-"
		if r.Completed > 0 {
			util = fmtAvg(s.CpuUtilization)
		}
		err := table.Append(r.Title(), fmtAvg(s.AverageWaitingTime), fmtAvg(s.AverageTurnaroundTime),
			fmtAvg(s.AverageResponseTime), util, fmt.Sprintf("%d/%d", r.Completed, len(r.Processes)))
		if err != nil {
			return err
		}
	}
	return table.Render()
}

// Encode writes v in the requested format. Tables support workloads, single
// results and result lists.
func Encode(w io.Writer, format Format, v any) error {
	if format == FormatTable {
		switch t := v.(type) {
		case core.Workload:
			return WriteProcesses(w, t)
		case schedulers.Result:
			return WriteResult(w, t)
		case []schedulers.Result:
			return WriteComparison(w, t)
		default:
			return fmt.Errorf("%w: cannot render %T as a table", ErrUnknownFormat, v)
		}
	}

	switch t := v.(type) {
	case core.Workload:
		v = requests.FromWorkload(t)
	case schedulers.Result:
		v = responses.NewScheduleResponse(t)
	case []schedulers.Result:
		v = responses.NewComparisonResponse(t)
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
