package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cpu-scheduling-simulator/api"
	"cpu-scheduling-simulator/config"
	"cpu-scheduling-simulator/internal/logging"
	"cpu-scheduling-simulator/internal/metrics"
	"cpu-scheduling-simulator/internal/ratelimit"
	"cpu-scheduling-simulator/internal/tracing"
)

const (
	shutdownTimeout      = 30 * time.Second
	limiterCleanupPeriod = 5 * time.Minute
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scheduling HTTP API",
	Long: `Serve the scheduling HTTP API.

API endpoints:
  POST /api/v1/{fcfs,sjf,srtf,priority,priority-preemptive,rr,mlfq,all}
  GET  /api/v1/algorithms
  GET  /api/v1/sample
  GET  /health

When metrics are enabled a second listener serves GET /metrics and GET /health.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "API port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.Default().WithComponent("server")
	cfg := config.GetSchedulerConfig()
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	tracer, err := tracing.InitTracer(tracing.Config{
		ServiceName:    "schedsim",
		ServiceVersion: "1.0.0",
		OTLPEndpoint:   cfg.Tracing.Endpoint,
		Enabled:        cfg.Tracing.Enabled,
	})
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	limiter := ratelimit.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	app := api.NewApp(api.NewSchedulerHandlerImpl(cfg, recorder, tracer), limiter)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metricsSrv = recorder.NewServer(cfg.Metrics.Port)
		go func() {
			log.Info("metrics server listening", logging.Fields{"addr": metricsSrv.Addr})
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server error", logging.Fields{"error": err.Error()})
			}
		}()
	}

	go func() {
		ticker := time.NewTicker(limiterCleanupPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := limiter.CleanupOldLimiters(limiterCleanupPeriod); n > 0 {
					log.Debug("dropped idle rate limiters", logging.Fields{"count": n})
				}
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + strconv.Itoa(cfg.Port)
		log.Info("scheduler api listening", logging.Fields{"addr": addr})
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("api shutdown error", logging.Fields{"error": err.Error()})
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics server shutdown error", logging.Fields{"error": err.Error()})
		}
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer shutdown error", logging.Fields{"error": err.Error()})
	}
	log.Info("server stopped")
	return nil
}
