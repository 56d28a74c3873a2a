package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	"cpu-scheduling-simulator/config"
	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/logging"
	"cpu-scheduling-simulator/internal/metrics"
	"cpu-scheduling-simulator/internal/requests"
	"cpu-scheduling-simulator/internal/responses"
	"cpu-scheduling-simulator/internal/schedulers"
	"cpu-scheduling-simulator/internal/tracing"
	"cpu-scheduling-simulator/internal/workload"
)

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	ShortestRemainingTimeFirst(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	PriorityPreemptive(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	MultilevelFeedbackQueue(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	ListAlgorithms(ctx *fiber.Ctx) error
	Sample(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config   *config.SchedulerConfig
	recorder *metrics.Recorder
	tracer   *tracing.Provider
	log      *logging.Logger
}

// NewSchedulerHandlerImpl wires the handlers. recorder may be nil; a nil
// tracer is replaced by a disabled one.
func NewSchedulerHandlerImpl(config *config.SchedulerConfig, recorder *metrics.Recorder, tracer *tracing.Provider) *SchedulerHandlerImpl {
	if tracer == nil {
		tracer, _ = tracing.InitTracer(tracing.Config{ServiceName: "schedsim"})
	}
	return &SchedulerHandlerImpl{
		config:   config,
		recorder: recorder,
		tracer:   tracer,
		log:      logging.Default().WithComponent("api"),
	}
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) ShortestRemainingTimeFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestRemainingTimeFirst)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.Priority)
}

func (s *SchedulerHandlerImpl) PriorityPreemptive(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.PriorityPreemptive)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) MultilevelFeedbackQueue(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.MultilevelFeedbackQueue)
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	w, opts, err := s.parse(ctx)
	if err != nil {
		return s.fail(ctx, "all", err)
	}

	spanCtx, span := s.tracer.StartSpan(ctx.UserContext(), "schedule.all",
		attribute.Int("schedsim.processes", len(w)))
	defer span.End()
	ctx.SetUserContext(spanCtx)

	results, err := schedulers.ScheduleAll(w, opts)
	if err != nil {
		tracing.RecordError(span, err)
		return s.fail(ctx, "all", err)
	}
	for _, r := range results {
		s.observe(r)
	}
	return ctx.JSON(responses.NewComparisonResponse(results))
}

func (s *SchedulerHandlerImpl) ListAlgorithms(ctx *fiber.Ctx) error {
	type algorithm struct {
		Name       string `json:"name"`
		Title      string `json:"title"`
		Preemptive bool   `json:"preemptive"`
	}
	out := make([]algorithm, 0, len(schedulers.Algorithms()))
	for _, a := range schedulers.Algorithms() {
		out = append(out, algorithm{Name: string(a), Title: a.Title(), Preemptive: a.Preemptive()})
	}
	return ctx.JSON(fiber.Map{"algorithms": out})
}

func (s *SchedulerHandlerImpl) Sample(ctx *fiber.Ctx) error {
	return ctx.JSON(requests.FromWorkload(workload.Sample()))
}

func (s *SchedulerHandlerImpl) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "healthy"})
}

func (s *SchedulerHandlerImpl) parse(ctx *fiber.Ctx) (core.Workload, schedulers.Options, error) {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return nil, schedulers.Options{}, errInvalidFormat
	}
	if len(request.Processes) > s.config.MaxProcesses {
		return nil, schedulers.Options{}, core.ErrTooManyProcesses
	}
	w, err := request.Workload()
	if err != nil {
		return nil, schedulers.Options{}, err
	}
	opts, err := request.Options(s.config.SchedulerOptions())
	if err != nil {
		return nil, schedulers.Options{}, err
	}
	return w, opts, nil
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, alg schedulers.Algorithm) error {
	w, opts, err := s.parse(ctx)
	if err != nil {
		return s.fail(ctx, string(alg), err)
	}

	spanCtx, span := s.tracer.StartSpan(ctx.UserContext(), "schedule."+string(alg))
	defer span.End()
	ctx.SetUserContext(spanCtx)

	result, err := schedulers.Schedule(alg, w, opts)
	if err != nil {
		tracing.RecordError(span, err)
		return s.fail(ctx, string(alg), err)
	}
	span.SetAttributes(tracing.RunAttributes(string(alg), len(w), result.Complete)...)
	s.observe(result)

	return ctx.JSON(responses.NewScheduleResponse(result))
}

func (s *SchedulerHandlerImpl) observe(result schedulers.Result) {
	if s.recorder != nil {
		s.recorder.Observe(result)
	}
	s.log.Debug("run served", logging.Fields{
		"run_id":    result.RunID,
		"algorithm": string(result.Algorithm),
		"complete":  result.Complete,
	})
}

var errInvalidFormat = errors.New("invalid request format")

func (s *SchedulerHandlerImpl) fail(ctx *fiber.Ctx, alg string, err error) error {
	if s.recorder != nil {
		s.recorder.Reject(alg)
	}
	status := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		s.log.Error("can not process request", logging.Fields{"algorithm": alg, "error": err.Error()})
		return ctx.Status(status).JSON(fiber.Map{"error": "can not process request"})
	}
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, errInvalidFormat),
		errors.Is(err, schedulers.ErrEmptyWorkload),
		errors.Is(err, schedulers.ErrInvalidTimeQuantum),
		errors.Is(err, core.ErrInvalidProcess),
		errors.Is(err, core.ErrTooManyProcesses),
		errors.Is(err, requests.ErrInvalidRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, schedulers.ErrUnknownAlgorithm):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}
