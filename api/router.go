package api

import (
	"github.com/gofiber/fiber/v2"

	"cpu-scheduling-simulator/internal/ratelimit"
)

func NewApp(handler SchedulerHandler, limiter *ratelimit.Limiter) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "schedsim",
		DisableStartupMessage: true,
	})
	app.Get("/health", handler.Health)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	if limiter != nil {
		v1.Use(limiter.Middleware(ratelimit.IPKeyFunc))
	}
	{
		v1.Get("/algorithms", handler.ListAlgorithms)
		v1.Get("/sample", handler.Sample)
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/srtf", handler.ShortestRemainingTimeFirst)
		v1.Post("/priority", handler.Priority)
		v1.Post("/priority-preemptive", handler.PriorityPreemptive)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/mlfq", handler.MultilevelFeedbackQueue)
		v1.Post("/all", handler.AllAlgorithms)
	}
	return app
}
