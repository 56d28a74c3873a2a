// Package workload reads process sets from YAML, JSON and CSV files.
package workload

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/requests"
)

var ErrUnsupportedFormat = errors.New("unsupported workload format")

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatOf picks the decoder from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// LoadFile reads a workload file. The returned request may carry scheduling
// parameters next to the processes.
func LoadFile(path string) (requests.ScheduleRequest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return requests.ScheduleRequest{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return requests.ScheduleRequest{}, fmt.Errorf("failed to open workload: %w", err)
	}
	defer f.Close()
	return Decode(f, format)
}

func Decode(r io.Reader, format Format) (requests.ScheduleRequest, error) {
	var req requests.ScheduleRequest
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, fmt.Errorf("failed to parse yaml workload: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&req); err != nil {
			return req, fmt.Errorf("failed to parse json workload: %w", err)
		}
	case FormatCSV:
		procs, err := decodeCSV(r)
		if err != nil {
			return req, err
		}
		req.Processes = procs
	default:
		return req, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return req, nil
}

// decodeCSV reads name,arrival,burst[,priority] rows. A first row whose
// arrival column is not a number is treated as a header.
func decodeCSV(r io.Reader) ([]requests.ProcessRequest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV", err)
	}

	procs := make([]requests.ProcessRequest, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 1 {
			if _, err := strconv.Atoi(strings.TrimSpace(row[1])); err != nil {
				continue
			}
		}
		if len(row) < 3 || len(row) > 4 {
			return nil, fmt.Errorf("%w: line %d has %d fields, want 3 or 4", core.ErrInvalidProcess, i+1, len(row))
		}
		p := requests.ProcessRequest{Name: strings.TrimSpace(row[0])}
		fields := []*int{&p.ArrivalTime, &p.BurstTime, &p.Priority}
		for j, raw := range row[1:] {
			v, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q is not a number", core.ErrInvalidProcess, i+1, raw)
			}
			*fields[j] = v
		}
		procs = append(procs, p)
	}
	return procs, nil
}

// Sample is the canned four process workload.
func Sample() core.Workload {
	return core.Workload{
		core.NewProcess(1, "P1", 0, 5, 2),
		core.NewProcess(2, "P2", 1, 3, 1),
		core.NewProcess(3, "P3", 2, 8, 3),
		core.NewProcess(4, "P4", 3, 6, 2),
	}
}

// Load returns the workload and request from path, or the sample workload
// when path is empty.
func Load(path string) (core.Workload, requests.ScheduleRequest, error) {
	if path == "" {
		w := Sample()
		return w, requests.FromWorkload(w), nil
	}
	req, err := LoadFile(path)
	if err != nil {
		return nil, req, err
	}
	w, err := req.Workload()
	if err != nil {
		return nil, req, fmt.Errorf("%s: %w", path, err)
	}
	return w, req, nil
}
