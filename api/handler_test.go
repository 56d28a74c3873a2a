package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpu-scheduling-simulator/config"
	"cpu-scheduling-simulator/internal/metrics"
	"cpu-scheduling-simulator/internal/ratelimit"
	"cpu-scheduling-simulator/internal/responses"
)

const sampleBody = `{"processes":[
	{"name":"P1","arrival_time":0,"burst_time":5,"priority":2},
	{"name":"P2","arrival_time":1,"burst_time":3,"priority":1},
	{"name":"P3","arrival_time":2,"burst_time":8,"priority":3},
	{"name":"P4","arrival_time":3,"burst_time":6,"priority":2}]}`

func testConfig() *config.SchedulerConfig {
	return &config.SchedulerConfig{
		Port:                                     9095,
		RoundRobinTimeQuantum:                    2,
		MultilevelFeedbackQueueLevelsTimeQuantum: []int{2, 4},
		SafetyBuffer:                             1000,
		MaxProcesses:                             100,
		RateLimit:                                config.RateLimitConfig{RPS: 100, Burst: 100},
	}
}

func newTestApp(t *testing.T, limiter *ratelimit.Limiter) (*fiber.App, *metrics.Recorder) {
	t.Helper()
	recorder := metrics.NewRecorder()
	handler := NewSchedulerHandlerImpl(testConfig(), recorder, nil)
	return NewApp(handler, limiter), recorder
}

func post(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func completions(resp responses.ScheduleResponse) []int {
	out := make([]int, 0, len(resp.Details))
	for _, d := range resp.Details {
		out = append(out, d.CompletionTime)
	}
	return out
}

func TestSchedule_Algorithms(t *testing.T) {
	app, _ := newTestApp(t, nil)

	tests := []struct {
		path string
		want []int
	}{
		{"/api/v1/fcfs", []int{5, 8, 16, 22}},
		{"/api/v1/sjf", []int{5, 8, 22, 14}},
		{"/api/v1/srtf", []int{8, 4, 22, 14}},
		{"/api/v1/priority", []int{5, 8, 22, 14}},
		{"/api/v1/priority-preemptive", []int{8, 4, 22, 14}},
		{"/api/v1/rr", []int{14, 11, 22, 20}},
		{"/api/v1/mlfq", []int{11, 12, 22, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := post(t, app, tt.path, sampleBody)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			body := decode[responses.ScheduleResponse](t, resp)
			assert.Equal(t, tt.want, completions(body))
			assert.True(t, body.Complete)
			assert.NotEmpty(t, body.RunID)
		})
	}
}

func TestSchedule_RoundRobinQuantumFromBody(t *testing.T) {
	app, _ := newTestApp(t, nil)
	body := strings.Replace(sampleBody, `"processes"`, `"time_quantum":100,"processes"`, 1)

	resp := post(t, app, "/api/v1/rr", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[responses.ScheduleResponse](t, resp)
	assert.Equal(t, 100, out.TimeQuantum)
	assert.Equal(t, []int{5, 8, 16, 22}, completions(out))
}

func TestSchedule_BadRequests(t *testing.T) {
	app, recorder := newTestApp(t, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"processes":`, "invalid request format"},
		{"empty", `{"processes":[]}`, "no processes available"},
		{"zero burst", `{"processes":[{"name":"A","arrival_time":0,"burst_time":0}]}`, "burst"},
		{"negative quantum", `{"processes":[{"name":"A","burst_time":1}],"time_quantum":-2}`, "time quantum"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, app, "/api/v1/rr", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			body := decode[map[string]string](t, resp)
			assert.Contains(t, body["error"], tt.want)
		})
	}

	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `schedsim_runs_total{algorithm="rr",outcome="rejected"} 4`)
}

func TestSchedule_TooManyProcesses(t *testing.T) {
	cfg := testConfig()
	cfg.MaxProcesses = 1
	app := NewApp(NewSchedulerHandlerImpl(cfg, nil, nil), nil)

	body := `{"processes":[{"name":"A","burst_time":1},{"name":"B","burst_time":1}]}`
	resp := post(t, app, "/api/v1/fcfs", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAllAlgorithms(t *testing.T) {
	app, recorder := newTestApp(t, nil)

	resp := post(t, app, "/api/v1/all", sampleBody)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[responses.ComparisonResponse](t, resp)
	require.Len(t, out.Results, 7)
	assert.Equal(t, "fcfs", out.Results[0].Algorithm)
	assert.Equal(t, "mlfq", out.Results[6].Algorithm)

	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `schedsim_runs_total{algorithm="sjf",outcome="complete"} 1`)
}

func TestReadOnlyEndpoints(t *testing.T) {
	app, _ := newTestApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/algorithms", nil))
	require.NoError(t, err)
	algs := decode[map[string][]map[string]any](t, resp)
	require.Len(t, algs["algorithms"], 7)
	assert.Equal(t, "srtf", algs["algorithms"][2]["name"])
	assert.Equal(t, true, algs["algorithms"][2]["preemptive"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sample", nil))
	require.NoError(t, err)
	sample := decode[map[string][]map[string]any](t, resp)
	assert.Len(t, sample["processes"], 4)
}

func TestRateLimit(t *testing.T) {
	app, _ := newTestApp(t, ratelimit.NewLimiter(0.001, 1))

	resp := post(t, app, "/api/v1/fcfs", sampleBody)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = post(t, app, "/api/v1/fcfs", sampleBody)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "health is not rate limited")
}
